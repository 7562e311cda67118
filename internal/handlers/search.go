package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"portfolio/internal/contextutil"
	"portfolio/internal/gallery"
	"portfolio/internal/service"
)

const fallbackMessage = "Using smart keyword search instead"

// SearchHandler serves query analysis and server-side gallery search.
type SearchHandler struct {
	search service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(search service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// AnalyzeRequest is the body of POST /api/search-analyze.
//
// swagger:model AnalyzeRequest
type AnalyzeRequest struct {
	Query string `json:"query"`
}

// AnalyzeResponse carries the remote analysis of a query.
//
// swagger:model AnalyzeResponse
type AnalyzeResponse struct {
	Keywords   []string `json:"keywords"`
	Intent     string   `json:"intent"`
	Categories []string `json:"categories"`
}

// SearchResponse is returned by GET /api/gallery/search.
//
// swagger:model SearchResponse
type SearchResponse struct {
	Query    string          `json:"query"`
	Keywords []string        `json:"keywords"`
	Intent   string          `json:"intent"`
	Photos   []gallery.Photo `json:"photos"`
	Count    int             `json:"count"`
}

// Analyze handles POST /api/search-analyze.
//
// Every failure other than a missing query tells the client to fall back to
// its local keyword expansion.
//
// swagger:route POST /api/search-analyze analyzeQuery
//
// # Analyze a search query
//
// Expands a free text query into gallery keywords and a short intent.
// Failures answer with fallback set so the client uses its local keywords.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// parameters:
//   - in: body
//     name: body
//     required: true
//     schema:
//     "$ref": "#/definitions/AnalyzeRequest"
// responses:
//
//	'200':
//	  description: Keywords and intent
//	  schema:
//	    "$ref": "#/definitions/AnalyzeResponse"
//	'400':
//	  description: Missing query
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'429':
//	  description: Analyzer quota exceeded
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'503':
//	  description: Analyzer not configured or unavailable
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *SearchHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: "Query is required"})
		return
	}

	analysis, err := h.search.Analyze(ctx, req.Query)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: "Query is required"})
		case errors.Is(err, service.ErrNotConfigured):
			logger.DebugContext(ctx, "analyzer not configured")
			writeFallback(w, r, http.StatusServiceUnavailable, "AI service not configured")
		case errors.Is(err, service.ErrRateLimited):
			logger.InfoContext(ctx, "analyzer quota exceeded", "error", err)
			writeFallback(w, r, http.StatusTooManyRequests, "AI quota exceeded")
		default:
			logger.WarnContext(ctx, "analyzer unavailable", "error", err)
			writeFallback(w, r, http.StatusServiceUnavailable, "AI service temporarily unavailable")
		}
		return
	}

	writeJSON(ctx, w, http.StatusOK, AnalyzeResponse{
		Keywords:   analysis.Keywords,
		Intent:     analysis.Intent,
		Categories: analysis.Categories,
	})
}

func writeFallback(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(r.Context(), w, status, ErrorResponse{Error: msg, Message: fallbackMessage, Fallback: true})
}

// Search handles GET /api/gallery/search?q=.
//
// swagger:route GET /api/gallery/search searchGallery
//
// # Search the gallery
//
// Expands the query and returns the matching photos.
//
// ---
// produces:
// - application/json
// parameters:
//   - in: query
//     name: q
//     type: string
//     required: false
// responses:
//
//	'200':
//	  description: Matching photos
//	  schema:
//	    "$ref": "#/definitions/SearchResponse"
//	'429':
//	  description: Search rate exceeded
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := h.search.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to search photos")
		return
	}

	photos := res.Photos
	if photos == nil {
		photos = []gallery.Photo{}
	}
	keywords := res.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	writeJSON(ctx, w, http.StatusOK, SearchResponse{
		Query:    res.Query,
		Keywords: keywords,
		Intent:   res.Intent,
		Photos:   photos,
		Count:    res.Count,
	})
}

// RateLimitExceeded answers analysis requests rejected by the local limiter.
func RateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	contextutil.LoggerFromContext(r.Context()).InfoContext(r.Context(), "analyze rate limit exceeded")
	writeFallback(w, r, http.StatusTooManyRequests, "AI quota exceeded")
}
