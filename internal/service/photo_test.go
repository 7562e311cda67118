package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"portfolio/internal/blob"
	"portfolio/internal/gallery"
	"portfolio/internal/service"
	"portfolio/internal/service/mocks"
	"portfolio/internal/storage"
	storagemocks "portfolio/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

func init() {
	// Set default logger to discard output for cleaner test output
	// This suppresses logs from slog.Default() used in the service layer
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// testContext returns a context for testing.
// The default logger is already set to discard in init().
func testContext() context.Context {
	return context.Background()
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 6))); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

type photoMocks struct {
	store    *storagemocks.MockPhotoStore
	blobs    *mocks.MockBlobStore
	notifier *mocks.MockNotifier
	svc      service.PhotoService
}

func newPhotoMocks(t *testing.T) photoMocks {
	ctrl := gomock.NewController(t)
	m := photoMocks{
		store:    storagemocks.NewMockPhotoStore(ctrl),
		blobs:    mocks.NewMockBlobStore(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
	}
	m.svc = service.NewPhotoService(m.store, m.blobs, m.notifier)
	return m
}

func TestPhotoService_Upload(t *testing.T) {
	img := testPNG(t)

	validReq := func() service.UploadRequest {
		return service.UploadRequest{
			Title:       " Harbor ",
			Category:    "street",
			Tags:        "night, ,harbor,",
			File:        bytes.NewReader(img),
			Size:        int64(len(img)),
			ContentType: "image/png",
		}
	}

	tests := []struct {
		name         string
		req          func() service.UploadRequest
		mockSetup    func(m photoMocks)
		wantErr      bool
		checkErrType func(error) bool
		check        func(*testing.T, *gallery.Photo)
	}{
		{
			name: "successful upload",
			req:  validReq,
			mockSetup: func(m photoMocks) {
				m.blobs.EXPECT().
					Put(gomock.Any(), gomock.Any(), gomock.Any(), "image/jpeg").
					DoAndReturn(func(_ context.Context, name string, data []byte, _ string) (string, error) {
						if !strings.HasPrefix(name, "optimized_photo_") || !strings.HasSuffix(name, ".jpg") {
							t.Errorf("unexpected blob name %q", name)
						}
						if len(data) == 0 {
							t.Error("empty blob data")
						}
						return "/photos/" + name, nil
					})
				m.store.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *gallery.Photo) error {
						p.ID = 1001
						return nil
					})
				m.notifier.EXPECT().PhotosChanged(gomock.Any(), service.ActionCreated, int64(1001))
			},
			check: func(t *testing.T, p *gallery.Photo) {
				if p.ID != 1001 || p.Title != "Harbor" || p.Category != "street" {
					t.Errorf("Upload() = %+v", p)
				}
				if strings.Join(p.Tags, "|") != "night|harbor" {
					t.Errorf("Upload() tags = %v", p.Tags)
				}
				if p.Src == "" || p.Src != p.FullSrc {
					t.Errorf("Upload() src = %q fullSrc = %q", p.Src, p.FullSrc)
				}
			},
		},
		{
			name: "missing title",
			req: func() service.UploadRequest {
				r := validReq()
				r.Title = "  "
				return r
			},
			mockSetup: func(m photoMocks) {},
			wantErr:   true,
			checkErrType: func(err error) bool {
				var v *service.ValidationError
				return errors.As(err, &v) && v.Field == "title" && v.Message == "title is required"
			},
		},
		{
			name: "missing category",
			req: func() service.UploadRequest {
				r := validReq()
				r.Category = ""
				return r
			},
			mockSetup: func(m photoMocks) {},
			wantErr:   true,
			checkErrType: func(err error) bool {
				var v *service.ValidationError
				return errors.As(err, &v) && v.Field == "category" && v.Message == "category is required"
			},
		},
		{
			name: "missing file",
			req: func() service.UploadRequest {
				r := validReq()
				r.File = nil
				return r
			},
			mockSetup: func(m photoMocks) {},
			wantErr:   true,
			checkErrType: func(err error) bool {
				var v *service.ValidationError
				return errors.As(err, &v) && v.Field == "photo"
			},
		},
		{
			name: "not an image",
			req: func() service.UploadRequest {
				r := validReq()
				r.File = strings.NewReader("plain text")
				r.ContentType = "text/plain"
				return r
			},
			mockSetup: func(m photoMocks) {},
			wantErr:   true,
			checkErrType: func(err error) bool {
				var v *service.ValidationError
				return errors.As(err, &v) && v.Field == "photo"
			},
		},
		{
			name: "too large",
			req: func() service.UploadRequest {
				r := validReq()
				r.Size = 10<<20 + 1
				return r
			},
			mockSetup: func(m photoMocks) {},
			wantErr:   true,
			checkErrType: func(err error) bool {
				var v *service.ValidationError
				return errors.As(err, &v) && strings.Contains(v.Message, "too large")
			},
		},
		{
			name: "blob failure",
			req:  validReq,
			mockSetup: func(m photoMocks) {
				m.blobs.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("disk full"))
			},
			wantErr: true,
		},
		{
			name: "taken name moves to next millisecond",
			req:  validReq,
			mockSetup: func(m photoMocks) {
				m.blobs.EXPECT().
					Put(gomock.Any(), "optimized_photo_1700000000000.jpg", gomock.Any(), gomock.Any()).
					Return("", blob.ErrExists)
				m.blobs.EXPECT().
					Put(gomock.Any(), "optimized_photo_1700000000001.jpg", gomock.Any(), gomock.Any()).
					Return("/photos/optimized_photo_1700000000001.jpg", nil)
				m.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				m.notifier.EXPECT().PhotosChanged(gomock.Any(), service.ActionCreated, gomock.Any())
			},
			check: func(t *testing.T, p *gallery.Photo) {
				if p.Src != "/photos/optimized_photo_1700000000001.jpg" {
					t.Errorf("Upload() src = %q", p.Src)
				}
			},
		},
		{
			name: "name never frees up",
			req:  validReq,
			mockSetup: func(m photoMocks) {
				m.blobs.EXPECT().
					Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", blob.ErrExists).
					Times(20)
			},
			wantErr: true,
			checkErrType: func(err error) bool {
				return errors.Is(err, blob.ErrExists)
			},
		},
		{
			name: "db failure removes blob",
			req:  validReq,
			mockSetup: func(m photoMocks) {
				var stored string
				m.blobs.EXPECT().
					Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, name string, _ []byte, _ string) (string, error) {
						stored = name
						return "/photos/" + name, nil
					})
				m.store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
				m.blobs.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, name string) error {
						if name != stored {
							t.Errorf("Delete(%q), want %q", name, stored)
						}
						return nil
					})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newPhotoMocks(t)
			service.SetClock(m.svc, fixedClock)
			tt.mockSetup(m)

			photo, err := m.svc.Upload(testContext(), tt.req())

			if tt.wantErr {
				if err == nil {
					t.Fatal("Upload() expected error, got nil")
				}
				if tt.checkErrType != nil && !tt.checkErrType(err) {
					t.Errorf("Upload() error type check failed: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Upload() unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, photo)
			}
		})
	}
}

func fixedClock() time.Time {
	return time.UnixMilli(1700000000000)
}

// Two uploads inside one millisecond must end up with separate files, and
// deleting one must leave the other intact.
func TestPhotoService_UploadsInSameMillisecond(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()

	db, err := storage.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.Migrate(ctx, db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	photosDir := filepath.Join(dir, "photos")
	blobs, err := blob.NewLocalStore(photosDir, "/photos")
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}

	svc := service.NewPhotoService(storage.NewPhotoRepo(db), blobs, nil)
	service.SetClock(svc, fixedClock)

	img := testPNG(t)
	upload := func(title string) *gallery.Photo {
		t.Helper()
		p, err := svc.Upload(ctx, service.UploadRequest{
			Title:       title,
			Category:    "street",
			File:        bytes.NewReader(img),
			Size:        int64(len(img)),
			ContentType: "image/png",
		})
		if err != nil {
			t.Fatalf("Upload(%s) error = %v", title, err)
		}
		return p
	}
	a := upload("A")
	b := upload("B")

	if a.Src == b.Src {
		t.Fatalf("uploads share src %q", a.Src)
	}
	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete(A) error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(photosDir, blob.NameFromURL(b.Src))); err != nil {
		t.Errorf("photo B's file is gone after deleting A: %v", err)
	}
	if _, err := os.Stat(filepath.Join(photosDir, blob.NameFromURL(a.Src))); !os.IsNotExist(err) {
		t.Errorf("photo A's file still exists: %v", err)
	}
}

func TestPhotoService_Delete(t *testing.T) {
	stored := &gallery.Photo{ID: 1001, Src: "/photos/optimized_photo_1.jpg", FullSrc: "/photos/optimized_photo_1.jpg"}

	tests := []struct {
		name      string
		mockSetup func(m photoMocks)
		wantErr   error
	}{
		{
			name: "successful delete",
			mockSetup: func(m photoMocks) {
				m.store.EXPECT().Get(gomock.Any(), int64(1001)).Return(stored, nil)
				m.blobs.EXPECT().Delete(gomock.Any(), "optimized_photo_1.jpg").Return(nil)
				m.store.EXPECT().Delete(gomock.Any(), int64(1001)).Return(nil)
				m.notifier.EXPECT().PhotosChanged(gomock.Any(), service.ActionDeleted, int64(1001))
			},
		},
		{
			name: "file delete failure is not fatal",
			mockSetup: func(m photoMocks) {
				m.store.EXPECT().Get(gomock.Any(), int64(1001)).Return(stored, nil)
				m.blobs.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("permission denied"))
				m.store.EXPECT().Delete(gomock.Any(), int64(1001)).Return(nil)
				m.notifier.EXPECT().PhotosChanged(gomock.Any(), service.ActionDeleted, int64(1001))
			},
		},
		{
			name: "unknown photo",
			mockSetup: func(m photoMocks) {
				m.store.EXPECT().Get(gomock.Any(), int64(1001)).Return(nil, storage.ErrNotFound)
			},
			wantErr: service.ErrNotFound,
		},
		{
			name: "db delete failure",
			mockSetup: func(m photoMocks) {
				m.store.EXPECT().Get(gomock.Any(), int64(1001)).Return(stored, nil)
				m.blobs.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				m.store.EXPECT().Delete(gomock.Any(), int64(1001)).Return(errors.New("db down"))
			},
			wantErr: errors.New("any"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newPhotoMocks(t)
			tt.mockSetup(m)

			err := m.svc.Delete(testContext(), 1001)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Delete() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Delete() expected error, got nil")
			}
			if errors.Is(tt.wantErr, service.ErrNotFound) && !errors.Is(err, service.ErrNotFound) {
				t.Errorf("Delete() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestPhotoService_Catalog(t *testing.T) {
	static := gallery.StaticPhotos()

	t.Run("merges uploaded photos after static ones", func(t *testing.T) {
		m := newPhotoMocks(t)
		m.store.EXPECT().List(gomock.Any()).Return([]gallery.Photo{{ID: 1001, Title: "new"}}, nil)

		photos, err := m.svc.Catalog(testContext())
		if err != nil {
			t.Fatalf("Catalog() error = %v", err)
		}
		if len(photos) != len(static)+1 {
			t.Fatalf("Catalog() returned %d photos, want %d", len(photos), len(static)+1)
		}
		if photos[0].ID != static[0].ID || photos[len(photos)-1].ID != 1001 {
			t.Error("Catalog() order should be static then uploaded")
		}
	})

	t.Run("database failure falls back to static", func(t *testing.T) {
		m := newPhotoMocks(t)
		m.store.EXPECT().List(gomock.Any()).Return(nil, errors.New("db down"))

		photos, err := m.svc.Catalog(testContext())
		if err != nil {
			t.Fatalf("Catalog() error = %v", err)
		}
		if len(photos) != len(static) {
			t.Errorf("Catalog() returned %d photos, want %d", len(photos), len(static))
		}
	})
}

func TestPhotoService_List(t *testing.T) {
	m := newPhotoMocks(t)
	m.store.EXPECT().List(gomock.Any()).Return(nil, errors.New("db down"))

	if _, err := m.svc.List(testContext()); err == nil {
		t.Error("List() expected error, got nil")
	}
}
