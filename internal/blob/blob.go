// Package blob stores optimized photo bytes under a single storage root,
// either a local directory or an S3 compatible bucket.
package blob

import (
	"context"
	"errors"
	"net/url"
	"path"
	"strings"
)

var (
	// ErrInvalidName is returned for object names that would escape the root.
	ErrInvalidName = errors.New("invalid blob name")
	// ErrExists is returned by Put when the name is already taken. Existing
	// objects are never overwritten.
	ErrExists = errors.New("blob already exists")
)

// Store persists photo bytes and returns the URL they are served from.
// Put fails with ErrExists instead of replacing an object. Deleting an
// object that doesn't exist is not an error.
type Store interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return ErrInvalidName
	}
	return nil
}

// NameFromURL returns the object name a stored photo's src points at.
func NameFromURL(src string) string {
	p := src
	if u, err := url.Parse(src); err == nil {
		p = u.Path
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}
