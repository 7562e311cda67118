package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_photo_store.go -package=mocks portfolio/internal/storage PhotoStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/gallery"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// PhotoStore defines the interface for uploaded photo storage operations.
type PhotoStore interface {
	// List returns every uploaded photo, oldest first.
	List(ctx context.Context) ([]gallery.Photo, error)
	// Get returns ErrNotFound if no photo has the id.
	Get(ctx context.Context, id int64) (*gallery.Photo, error)
	// Create inserts the photo and sets its ID and CreatedAt.
	Create(ctx context.Context, photo *gallery.Photo) error
	// Delete returns ErrNotFound if no photo has the id.
	Delete(ctx context.Context, id int64) error
}

// PhotoRepo provides methods for photo operations.
// It implements the PhotoStore interface.
type PhotoRepo struct {
	db *DB
}

// NewPhotoRepo creates a new PhotoRepo.
func NewPhotoRepo(db *DB) *PhotoRepo {
	return &PhotoRepo{db: db}
}

const photoColumns = "id, title, category, event, description, tags, src, full_src, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(row rowScanner) (*gallery.Photo, error) {
	var p gallery.Photo
	var tags string
	if err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Event, &p.Description, &tags, &p.Src, &p.FullSrc, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Tags = []string{}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for photo %d: %w", p.ID, err)
		}
	}
	p.Tags = gallery.NormalizeTags(p.Tags)
	return &p, nil
}

// List returns every uploaded photo ordered by creation time.
func (r *PhotoRepo) List(ctx context.Context) ([]gallery.Photo, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+photoColumns+" FROM photos ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	photos := []gallery.Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return photos, nil
}

// Get returns a photo by id.
func (r *PhotoRepo) Get(ctx context.Context, id int64) (*gallery.Photo, error) {
	p, err := scanPhoto(r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT "+photoColumns+" FROM photos WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query photo: %w", err)
	}
	return p, nil
}

// Create inserts a photo. Empty tags are dropped before storing.
func (r *PhotoRepo) Create(ctx context.Context, photo *gallery.Photo) error {
	photo.Tags = gallery.NormalizeTags(photo.Tags)
	tags, err := json.Marshal(photo.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now()
	}
	photo.CreatedAt = photo.CreatedAt.UTC()

	err = r.db.QueryRowContext(ctx,
		r.db.Rebind(`INSERT INTO photos (title, category, event, description, tags, src, full_src, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		photo.Title, photo.Category, photo.Event, photo.Description, string(tags), photo.Src, photo.FullSrc, photo.CreatedAt,
	).Scan(&photo.ID)
	if err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}
	return nil
}

// Delete removes a photo by id.
func (r *PhotoRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM photos WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
