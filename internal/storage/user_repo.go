package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UserStore defines the interface for user storage operations.
type UserStore interface {
	Upsert(ctx context.Context, user *User) error
	Get(ctx context.Context, id string) (*User, error)
}

// UserRepo implements UserStore.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert inserts the user or updates the display name and last login of an
// existing one.
func (r *UserRepo) Upsert(ctx context.Context, user *User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	var lastLogin any
	if !user.LastLoginAt.IsZero() {
		lastLogin = user.LastLoginAt
	}

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO users (id, display_name, last_login_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			display_name = excluded.display_name,
			last_login_at = excluded.last_login_at,
			updated_at = excluded.updated_at`),
		user.ID, user.DisplayName, lastLogin, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// Get returns the user or ErrNotFound.
func (r *UserRepo) Get(ctx context.Context, id string) (*User, error) {
	var u User
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT id, display_name, last_login_at, created_at, updated_at FROM users WHERE id = ?"), id,
	).Scan(&u.ID, &u.DisplayName, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if lastLogin.Valid {
		u.LastLoginAt = lastLogin.Time
	}
	return &u, nil
}
