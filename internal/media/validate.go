// Package media validates uploaded images and re-encodes them for the web.
package media

import (
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadSize is the largest accepted upload in bytes.
const MaxUploadSize = 10 << 20

// SniffLen is how many leading bytes Validate needs to detect the type.
const SniffLen = 3072

var (
	ErrTooLarge = errors.New("file too large, maximum size is 10MB")
	ErrNotImage = errors.New("only image files are allowed")
	ErrDecode   = errors.New("image could not be decoded")
)

// Validate checks the upload size and that both the declared and the sniffed
// content types are images. head should hold the first SniffLen bytes of the
// file (or all of it when shorter).
func Validate(size int64, declaredType string, head []byte) error {
	if size > MaxUploadSize {
		return ErrTooLarge
	}
	if declaredType != "" && !isImage(declaredType) {
		return ErrNotImage
	}
	if !isImage(mimetype.Detect(head).String()) {
		return ErrNotImage
	}
	return nil
}

func isImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}
