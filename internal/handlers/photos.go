package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"portfolio/internal/contextutil"
	"portfolio/internal/gallery"
	"portfolio/internal/media"
	"portfolio/internal/service"
)

// uploadOverhead is the room left for multipart framing and the text fields
// on top of the file itself.
const uploadOverhead = 1 << 20

// PhotoHandler serves the uploaded photos and the merged gallery.
type PhotoHandler struct {
	photos service.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photos service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// DeleteResponse is returned after a photo was removed.
//
// swagger:model DeleteResponse
type DeleteResponse struct {
	Message string `json:"message"`
}

// List handles GET /api/photos.
//
// swagger:route GET /api/photos listPhotos
//
// # List uploaded photos
//
// Returns the uploaded photos, newest first.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Uploaded photos
//	  schema:
//	    type: array
//	    items:
//	      "$ref": "#/definitions/Photo"
//	'500':
//	  description: Database error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	photos, err := h.photos.List(ctx)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to fetch photos")
		return
	}
	if photos == nil {
		photos = []gallery.Photo{}
	}

	// Clients refetch after every change, so the list must never be cached.
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(ctx, w, http.StatusOK, photos)
}

// Gallery handles GET /api/gallery.
//
// swagger:route GET /api/gallery listGallery
//
// # List the merged gallery
//
// Returns the built-in photos followed by the uploaded ones.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Gallery photos
//	  schema:
//	    type: array
//	    items:
//	      "$ref": "#/definitions/Photo"
//	'500':
//	  description: Database error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *PhotoHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	photos, err := h.photos.Catalog(ctx)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to fetch gallery")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(ctx, w, http.StatusOK, photos)
}

// Upload handles POST /api/photos with a multipart body.
//
// swagger:route POST /api/photos uploadPhoto
//
// # Upload a photo
//
// Stores an optimized copy of the image and records its metadata.
// Requires an admin session.
//
// ---
// consumes:
// - multipart/form-data
// produces:
// - application/json
// parameters:
//   - in: formData
//     name: photo
//     type: file
//     required: true
//   - in: formData
//     name: title
//     type: string
//     required: true
//   - in: formData
//     name: category
//     type: string
//     required: true
//   - in: formData
//     name: event
//     type: string
//     required: false
//   - in: formData
//     name: description
//     type: string
//     required: false
//   - in: formData
//     name: tags
//     type: string
//     description: Comma separated tags
//     required: false
// responses:
//
//	'201':
//	  description: Photo created
//	  schema:
//	    "$ref": "#/definitions/Photo"
//	'400':
//	  description: Invalid form fields or file
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'401':
//	  description: Not authenticated
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'413':
//	  description: File too large
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadSize+uploadOverhead)
	if err := r.ParseMultipartForm(media.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.WarnContext(ctx, "upload body too large", "limit", tooLarge.Limit)
			writeError(ctx, w, http.StatusRequestEntityTooLarge, codeTooLarge, media.ErrTooLarge.Error())
			return
		}
		logger.WarnContext(ctx, "invalid multipart body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, codeBadRequest, "Invalid multipart body")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logger.WarnContext(ctx, "failed to remove multipart temp files", "error", err)
		}
	}()

	req := service.UploadRequest{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Event:       r.FormValue("event"),
		Description: r.FormValue("description"),
		Tags:        r.FormValue("tags"),
	}

	file, header, err := r.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// Upload reports the missing file as a validation error.
	case err != nil:
		logger.WarnContext(ctx, "failed to read uploaded file", "error", err)
		writeError(ctx, w, http.StatusBadRequest, codeBadRequest, "Invalid file upload")
		return
	default:
		defer file.Close()
		req.File = file
		req.Size = header.Size
		req.ContentType = header.Header.Get("Content-Type")
	}

	photo, err := h.photos.Upload(ctx, req)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to upload photo")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, photo)
}

// Delete handles DELETE /api/photos/{id}.
//
// swagger:route DELETE /api/photos/{id} deletePhoto
//
// # Delete an uploaded photo
//
// Removes the photo record and its stored file. Requires an admin session.
//
// ---
// produces:
// - application/json
// parameters:
//   - in: path
//     name: id
//     type: integer
//     required: true
// responses:
//
//	'200':
//	  description: Photo deleted
//	  schema:
//	    "$ref": "#/definitions/DeleteResponse"
//	'400':
//	  description: Invalid photo id
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'401':
//	  description: Not authenticated
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'404':
//	  description: Photo not found
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(ctx, w, http.StatusBadRequest, codeBadRequest, "Invalid photo id")
		return
	}

	if err := h.photos.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, codeNotFound, "Photo not found")
			return
		}
		writeServiceError(ctx, w, err, "Failed to delete photo")
		return
	}
	writeJSON(ctx, w, http.StatusOK, DeleteResponse{Message: "Photo deleted successfully"})
}
