package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"portfolio/internal/contextutil"
)

// MaxPlaceholderSize bounds both placeholder dimensions.
const MaxPlaceholderSize = 4000

const placeholderSVG = `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%%" height="100%%" fill="#f3f4f6"/>
  <text x="50%%" y="50%%" text-anchor="middle" dominant-baseline="middle" font-family="Arial, sans-serif" font-size="14" fill="#6b7280">
    Image not found
  </text>
</svg>`

// Placeholder handles GET /api/placeholder/{width}/{height}.
//
// swagger:route GET /api/placeholder/{width}/{height} placeholderImage
//
// # Placeholder image
//
// Returns a grey SVG of the requested size.
//
// ---
// produces:
// - image/svg+xml
// parameters:
//   - in: path
//     name: width
//     type: integer
//     required: true
//   - in: path
//     name: height
//     type: integer
//     required: true
// responses:
//
//	'200':
//	  description: SVG image
//	'400':
//	  description: Invalid dimensions
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func Placeholder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	width, werr := parseDimension(chi.URLParam(r, "width"))
	height, herr := parseDimension(chi.URLParam(r, "height"))
	if werr != nil || herr != nil {
		writeError(ctx, w, http.StatusBadRequest, codeBadRequest,
			fmt.Sprintf("width and height must be integers between 1 and %d", MaxPlaceholderSize))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := fmt.Fprintf(w, placeholderSVG, width, height); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to write placeholder", "error", err)
	}
}

func parseDimension(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > MaxPlaceholderSize {
		return 0, fmt.Errorf("dimension %d out of range", n)
	}
	return n, nil
}
