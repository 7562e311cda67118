package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_contact_store.go -package=mocks portfolio/internal/storage ContactStore

import (
	"context"
	"fmt"
	"time"
)

// ContactStore defines the interface for contact message storage.
type ContactStore interface {
	Create(ctx context.Context, msg *ContactMessage) error
	List(ctx context.Context) ([]ContactMessage, error)
}

// ContactRepo implements ContactStore.
type ContactRepo struct {
	db *DB
}

// NewContactRepo creates a new ContactRepo.
func NewContactRepo(db *DB) *ContactRepo {
	return &ContactRepo{db: db}
}

// Create inserts msg and sets its ID and CreatedAt.
func (r *ContactRepo) Create(ctx context.Context, msg *ContactMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	msg.CreatedAt = msg.CreatedAt.UTC()
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind("INSERT INTO contact_messages (name, email, message, created_at) VALUES (?, ?, ?, ?) RETURNING id"),
		msg.Name, msg.Email, msg.Message, msg.CreatedAt,
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}

// List returns all messages ordered by creation time.
func (r *ContactRepo) List(ctx context.Context) ([]ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, email, message, created_at FROM contact_messages ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	messages := []ContactMessage{}
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
