// Package auth implements the admin session gate: password login, server-side
// sessions in the relational store and a middleware guarding admin routes.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"portfolio/internal/contextutil"
	"portfolio/internal/storage"
)

const (
	// AdminUserID is the identity recorded for an authenticated session.
	AdminUserID = "admin"
	// DefaultCookieName is used when Options.CookieName is empty.
	DefaultCookieName = "portfolio_session"
	// DefaultTTL is the session lifetime when Options.TTL is zero.
	DefaultTTL = 7 * 24 * time.Hour
)

var (
	// ErrInvalidPassword is returned by Login on a password mismatch.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrNoPassword is returned when neither a password nor a hash is configured.
	ErrNoPassword = errors.New("admin password is not configured")
)

// Options controls the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Status is the authentication state of a request.
//
// swagger:model AuthStatus
type Status struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	UserID          string `json:"userId,omitempty"`
}

// Manager issues and checks admin sessions.
type Manager struct {
	sessions storage.SessionStore
	users    storage.UserStore
	hash     []byte
	opts     Options
	now      func() time.Time
}

// NewPasswordHash returns the bcrypt hash of plain.
func NewPasswordHash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// ResolveHash picks the configured hash, or hashes the plain password when
// only that is set.
func ResolveHash(password, hash string) (string, error) {
	if hash != "" {
		return hash, nil
	}
	if password == "" {
		return "", ErrNoPassword
	}
	return NewPasswordHash(password)
}

// NewManager creates a Manager. passwordHash must be a bcrypt hash.
func NewManager(sessions storage.SessionStore, users storage.UserStore, passwordHash string, opts Options) (*Manager, error) {
	if passwordHash == "" {
		return nil, ErrNoPassword
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &Manager{
		sessions: sessions,
		users:    users,
		hash:     []byte(passwordHash),
		opts:     opts,
		now:      time.Now,
	}, nil
}

// Login checks password and starts an authenticated session, replacing any
// session the request already carried.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, password string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := bcrypt.CompareHashAndPassword(m.hash, []byte(password)); err != nil {
		logger.WarnContext(ctx, "admin login failed")
		return ErrInvalidPassword
	}

	now := m.now()
	if n, err := m.sessions.DeleteExpired(ctx, now); err != nil {
		logger.WarnContext(ctx, "failed to prune expired sessions", "error", err)
	} else if n > 0 {
		logger.DebugContext(ctx, "pruned expired sessions", "count", n)
	}

	if c, err := r.Cookie(m.opts.CookieName); err == nil && c.Value != "" {
		if err := m.sessions.Delete(ctx, c.Value); err != nil {
			logger.WarnContext(ctx, "failed to drop previous session", "error", err)
		}
	}

	sess := &storage.Session{
		ID:              uuid.NewString(),
		UserID:          AdminUserID,
		IsAuthenticated: true,
		ExpiresAt:       now.Add(m.opts.TTL),
	}
	if err := m.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if err := m.users.Upsert(ctx, &storage.User{ID: AdminUserID, DisplayName: "Admin", LastLoginAt: now}); err != nil {
		logger.WarnContext(ctx, "failed to record admin login", "error", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(m.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	logger.InfoContext(ctx, "admin logged in")
	return nil
}

// Logout ends the request's session, if any, and expires the cookie.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if c, err := r.Cookie(m.opts.CookieName); err == nil && c.Value != "" {
		if err := m.sessions.Delete(ctx, c.Value); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Status reports whether r carries an authenticated session.
func (m *Manager) Status(r *http.Request) Status {
	c, err := r.Cookie(m.opts.CookieName)
	if err != nil || c.Value == "" {
		return Status{}
	}
	sess, err := m.sessions.Get(r.Context(), c.Value)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			contextutil.LoggerFromContext(r.Context()).ErrorContext(r.Context(), "failed to load session", "error", err)
		}
		return Status{}
	}
	if !sess.IsAuthenticated {
		return Status{}
	}
	return Status{IsAuthenticated: true, UserID: sess.UserID}
}

// RequireAdmin rejects requests without an authenticated session before next
// runs.
func (m *Manager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Status(r).IsAuthenticated {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   "unauthorized",
				"message": "Unauthorized",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
