package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SessionStore defines the interface for session storage operations.
type SessionStore interface {
	// Get returns ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionRepo implements SessionStore.
type SessionRepo struct {
	db  *DB
	now func() time.Time
}

// NewSessionRepo creates a new SessionRepo.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db, now: time.Now}
}

// Get returns a live session.
func (r *SessionRepo) Get(ctx context.Context, id string) (*Session, error) {
	var s Session
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT sid, user_id, is_authenticated, expires_at FROM sessions WHERE sid = ?"), id,
	).Scan(&s.ID, &s.UserID, &s.IsAuthenticated, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	if !s.ExpiresAt.After(r.now()) {
		return nil, ErrNotFound
	}
	return &s, nil
}

// Save inserts or replaces a session.
func (r *SessionRepo) Save(ctx context.Context, s *Session) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO sessions (sid, user_id, is_authenticated, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (sid) DO UPDATE SET
			user_id = excluded.user_id,
			is_authenticated = excluded.is_authenticated,
			expires_at = excluded.expires_at`),
		s.ID, s.UserID, s.IsAuthenticated, s.ExpiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes a session. Unknown ids are ignored.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM sessions WHERE sid = ?"), id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session that expired at or before now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM sessions WHERE expires_at <= ?"), now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}
