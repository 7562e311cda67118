package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"portfolio/internal/contextutil"
	"portfolio/internal/service"
)

// ErrorResponse is the body of every non-2xx JSON answer.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Short machine readable error
	Error string `json:"error"`

	// Human readable description
	Message string `json:"message,omitempty"`

	// Set when the client should fall back to local keyword search
	Fallback bool `json:"fallback,omitempty"`
}

// Error codes used in ErrorResponse.Error.
const (
	codeBadRequest       = "bad_request"
	codeNotFound         = "not_found"
	codeTooLarge         = "payload_too_large"
	codeRateLimited      = "rate_limited"
	codeUnavailable      = "service_unavailable"
	codeBadGateway       = "bad_gateway"
	codeInternal         = "internal_error"
	codeMethodNotAllowed = "method_not_allowed"
)

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, code, message string) {
	writeJSON(ctx, w, status, ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps service errors to HTTP status codes. Unknown errors
// become a 500 carrying defaultMsg so internals never leak to the client.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, "validation failed", "field", validationErr.Field, "error", err)
		writeError(ctx, w, http.StatusBadRequest, codeBadRequest, validationErr.Message)
	case errors.Is(err, service.ErrInvalidInput):
		logger.WarnContext(ctx, "invalid input", "error", err)
		writeError(ctx, w, http.StatusBadRequest, codeBadRequest, "Invalid input")
	case errors.Is(err, service.ErrNotFound):
		logger.WarnContext(ctx, "resource not found", "error", err)
		writeError(ctx, w, http.StatusNotFound, codeNotFound, "Resource not found")
	case errors.Is(err, service.ErrRateLimited):
		logger.WarnContext(ctx, "rate limited", "error", err)
		writeError(ctx, w, http.StatusTooManyRequests, codeRateLimited, "Too many requests")
	case errors.Is(err, service.ErrUnavailable), errors.Is(err, service.ErrNotConfigured):
		logger.WarnContext(ctx, "dependency unavailable", "error", err)
		writeError(ctx, w, http.StatusServiceUnavailable, codeUnavailable, "Service unavailable")
	case errors.Is(err, service.ErrExternalService):
		logger.ErrorContext(ctx, "external service error", "error", err)
		writeError(ctx, w, http.StatusBadGateway, codeBadGateway, "External service error")
	default:
		logger.ErrorContext(ctx, "service error", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, codeInternal, defaultMsg)
	}
}
