package galleryclient

import (
	"context"
	"sync"

	"portfolio/internal/contextutil"
	"portfolio/internal/gallery"
)

// Catalog mirrors the merged gallery: the compiled-in photos followed by the
// uploaded ones. It starts with the static photos only and is never empty.
type Catalog struct {
	client *Client

	mu     sync.RWMutex
	photos []gallery.Photo
}

// NewCatalog creates a catalog backed by c. Call Refresh to load uploads.
func NewCatalog(c *Client) *Catalog {
	return &Catalog{client: c, photos: gallery.StaticPhotos()}
}

// Refresh refetches the uploaded photos. There is no cache: every call hits
// the server. On failure the last good list is kept and the error returned.
func (c *Catalog) Refresh(ctx context.Context) error {
	dynamic, err := c.client.Photos(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to refresh catalog, keeping last good list", "error", err)
		return err
	}

	merged := gallery.Merge(gallery.StaticPhotos(), dynamic)
	c.mu.Lock()
	c.photos = merged
	c.mu.Unlock()
	return nil
}

// Photos returns a copy of the current list.
func (c *Catalog) Photos() []gallery.Photo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]gallery.Photo(nil), c.photos...)
}

// Upload uploads a photo and refreshes the catalog.
func (c *Catalog) Upload(ctx context.Context, in UploadInput) (*gallery.Photo, error) {
	photo, err := c.client.Upload(ctx, in)
	if err != nil {
		return nil, err
	}
	c.refreshAfterChange(ctx)
	return photo, nil
}

// Delete deletes an uploaded photo and refreshes the catalog.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	if err := c.client.Delete(ctx, id); err != nil {
		return err
	}
	c.refreshAfterChange(ctx)
	return nil
}

// refreshAfterChange refetches after a successful write. The write already
// succeeded, so a failed refetch is only logged by Refresh.
func (c *Catalog) refreshAfterChange(ctx context.Context) {
	_ = c.Refresh(ctx)
}
