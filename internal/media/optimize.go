package media

import (
	"bytes"
	"fmt"
	"io"
	"time"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension bounds both width and height of an optimized image.
	MaxDimension = 1920
	// JPEGQuality is the encoder quality used for every stored photo.
	JPEGQuality = 85
	// ContentType of every optimized image.
	ContentType = "image/jpeg"
)

// Result is an optimized image ready to store.
type Result struct {
	Data   []byte
	Width  int
	Height int
}

// Optimize decodes r, applies the EXIF orientation, shrinks the image to fit
// within MaxDimension on both axes and re-encodes it as JPEG. Images already
// inside the bounds are never enlarged.
func Optimize(r io.Reader) (Result, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	img := src
	b := src.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		img = imaging.Fit(src, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return Result{}, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	out := img.Bounds()
	return Result{Data: buf.Bytes(), Width: out.Dx(), Height: out.Dy()}, nil
}

// Filename returns the storage name for a photo optimized at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("optimized_photo_%d.jpg", t.UnixMilli())
}
