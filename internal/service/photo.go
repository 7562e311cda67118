package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_blob_store.go -package=mocks portfolio/internal/service BlobStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_notifier.go -package=mocks portfolio/internal/service Notifier
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_photo_service.go -package=mocks -mock_names=PhotoService=MockPhotoService portfolio/internal/service PhotoService

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"portfolio/internal/blob"
	"portfolio/internal/contextutil"
	"portfolio/internal/gallery"
	"portfolio/internal/media"
	"portfolio/internal/storage"
)

// BlobStore stores optimized photo bytes.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
}

// Notifier is told whenever the uploaded photo set changes.
type Notifier interface {
	PhotosChanged(ctx context.Context, action string, photoID int64)
}

// Photo change actions passed to Notifier.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// UploadRequest is a photo upload in the domain layer.
type UploadRequest struct {
	Title       string `form:"title" validate:"required,max=200"`
	Category    string `form:"category" validate:"required,max=100"`
	Event       string `form:"event" validate:"max=200"`
	Description string `form:"description" validate:"max=2000"`
	Tags        string `form:"tags" validate:"max=1000"`

	// File is the uploaded image. Size and ContentType are as declared by
	// the client.
	File        io.Reader `validate:"-"`
	Size        int64     `validate:"-"`
	ContentType string    `validate:"-"`
}

// PhotoService manages uploaded photos and the merged catalog.
type PhotoService interface {
	// List returns the uploaded photos.
	List(ctx context.Context) ([]gallery.Photo, error)
	// Catalog returns the static photos followed by the uploaded ones. It
	// falls back to the static photos when the database can't be read.
	Catalog(ctx context.Context) ([]gallery.Photo, error)
	// Upload validates, optimizes and stores a new photo.
	Upload(ctx context.Context, req UploadRequest) (*gallery.Photo, error)
	// Delete removes an uploaded photo and its file.
	Delete(ctx context.Context, id int64) error
}

// maxNameAttempts bounds how many later milliseconds Upload tries when the
// generated file name is already taken.
const maxNameAttempts = 20

// photoService implements PhotoService.
type photoService struct {
	photos   storage.PhotoStore
	blobs    BlobStore
	notifier Notifier
	now      func() time.Time
}

// NewPhotoService creates a new PhotoService. notifier may be nil.
func NewPhotoService(photos storage.PhotoStore, blobs BlobStore, notifier Notifier) PhotoService {
	return &photoService{
		photos:   photos,
		blobs:    blobs,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *photoService) List(ctx context.Context) ([]gallery.Photo, error) {
	photos, err := s.photos.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list photos")
	}
	return photos, nil
}

func (s *photoService) Catalog(ctx context.Context) ([]gallery.Photo, error) {
	dynamic, err := s.photos.List(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to load uploaded photos, serving static catalog", "error", err)
		dynamic = nil
	}
	return gallery.Merge(gallery.StaticPhotos(), dynamic), nil
}

func (s *photoService) Upload(ctx context.Context, req UploadRequest) (*gallery.Photo, error) {
	logger := contextutil.LoggerFromContext(ctx)

	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	req.Event = strings.TrimSpace(req.Event)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateStruct(req); err != nil {
		logger.WarnContext(ctx, "invalid upload request", "error", err)
		return nil, err
	}
	if req.File == nil {
		return nil, &ValidationError{Field: "photo", Message: "no file uploaded"}
	}

	data, err := io.ReadAll(io.LimitReader(req.File, media.MaxUploadSize+1))
	if err != nil {
		return nil, WrapError(err, "failed to read upload")
	}
	size := max(req.Size, int64(len(data)))
	if err := media.Validate(size, req.ContentType, data[:min(len(data), media.SniffLen)]); err != nil {
		logger.WarnContext(ctx, "rejected upload", "error", err, "size", size, "content_type", req.ContentType)
		return nil, &ValidationError{Field: "photo", Message: err.Error()}
	}

	optimized, err := media.Optimize(bytes.NewReader(data))
	if err != nil {
		logger.WarnContext(ctx, "failed to optimize upload", "error", err)
		return nil, &ValidationError{Field: "photo", Message: media.ErrDecode.Error()}
	}

	name, src, err := s.store(ctx, optimized.Data)
	if err != nil {
		logger.ErrorContext(ctx, "failed to store photo", "error", err, "name", name)
		return nil, WrapError(err, "failed to store photo")
	}

	photo := &gallery.Photo{
		Title:       req.Title,
		Category:    req.Category,
		Event:       req.Event,
		Description: req.Description,
		Tags:        gallery.ParseTags(req.Tags),
		Src:         src,
		FullSrc:     src,
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		logger.ErrorContext(ctx, "failed to save photo", "error", err)
		if derr := s.blobs.Delete(ctx, name); derr != nil {
			logger.WarnContext(ctx, "failed to remove orphaned photo file", "error", derr, "name", name)
		}
		return nil, WrapError(err, "failed to save photo")
	}

	logger.InfoContext(ctx, "photo uploaded",
		"photo_id", photo.ID,
		"bytes_in", len(data),
		"bytes_out", len(optimized.Data),
		"width", optimized.Width,
		"height", optimized.Height,
	)
	if s.notifier != nil {
		s.notifier.PhotosChanged(ctx, ActionCreated, photo.ID)
	}
	return photo, nil
}

// store puts data under a fresh timestamp name. A name taken by an upload
// in the same millisecond is skipped by moving on to the next millisecond.
func (s *photoService) store(ctx context.Context, data []byte) (name, src string, err error) {
	t := s.now()
	for range maxNameAttempts {
		name = media.Filename(t)
		src, err = s.blobs.Put(ctx, name, data, media.ContentType)
		if !errors.Is(err, blob.ErrExists) {
			return name, src, err
		}
		t = t.Add(time.Millisecond)
	}
	return name, "", err
}

func (s *photoService) Delete(ctx context.Context, id int64) error {
	logger := contextutil.LoggerFromContext(ctx)

	photo, err := s.photos.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("photo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return WrapError(err, "failed to load photo")
	}

	if name := blob.NameFromURL(photo.Src); name != "" {
		if err := s.blobs.Delete(ctx, name); err != nil {
			logger.WarnContext(ctx, "failed to delete photo file", "error", err, "photo_id", id, "name", name)
		}
	}

	if err := s.photos.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("photo %d: %w", id, ErrNotFound)
		}
		return WrapError(err, "failed to delete photo")
	}

	logger.InfoContext(ctx, "photo deleted", "photo_id", id)
	if s.notifier != nil {
		s.notifier.PhotosChanged(ctx, ActionDeleted, id)
	}
	return nil
}
