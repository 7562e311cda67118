package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_authenticator.go -package=mocks portfolio/internal/handlers Authenticator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"portfolio/internal/auth"
	"portfolio/internal/contextutil"
)

// Authenticator is the part of auth.Manager the handlers need.
type Authenticator interface {
	Login(ctx context.Context, w http.ResponseWriter, r *http.Request, password string) error
	Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error
	Status(r *http.Request) auth.Status
}

// AuthHandler serves login, logout and session status.
type AuthHandler struct {
	auth Authenticator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(a Authenticator) *AuthHandler {
	return &AuthHandler{auth: a}
}

// LoginRequest is the body of POST /api/login.
//
// swagger:model LoginRequest
type LoginRequest struct {
	Password string `json:"password"`
}

// AuthResponse answers login and logout.
//
// swagger:model AuthResponse
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Login handles POST /api/login.
//
// swagger:route POST /api/login login
//
// # Log in as admin
//
// Checks the admin password and sets the session cookie.
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
//     "$ref": "#/definitions/LoginRequest"
// responses:
//
//	'200':
//	  description: Logged in
//	  schema:
//	    "$ref": "#/definitions/AuthResponse"
//	'400':
//	  description: Invalid request body
//	  schema:
//	    "$ref": "#/definitions/AuthResponse"
//	'401':
//	  description: Invalid password
//	  schema:
//	    "$ref": "#/definitions/AuthResponse"
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeJSON(ctx, w, http.StatusBadRequest, AuthResponse{Message: "Invalid request body"})
		return
	}

	err := h.auth.Login(ctx, w, r, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidPassword):
		logger.WarnContext(ctx, "login rejected")
		writeJSON(ctx, w, http.StatusUnauthorized, AuthResponse{Message: "Invalid password"})
	case err != nil:
		logger.ErrorContext(ctx, "login failed", "error", err)
		writeJSON(ctx, w, http.StatusInternalServerError, AuthResponse{Message: "Login failed"})
	default:
		writeJSON(ctx, w, http.StatusOK, AuthResponse{Success: true, Message: "Login successful"})
	}
}

// Logout handles POST /api/logout.
//
// swagger:route POST /api/logout logout
//
// # Log out
//
// Ends the session and clears the cookie.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Logged out
//	  schema:
//	    "$ref": "#/definitions/AuthResponse"
//	'500':
//	  description: Logout failed
//	  schema:
//	    "$ref": "#/definitions/AuthResponse"
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.auth.Logout(ctx, w, r); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "logout failed", "error", err)
		writeJSON(ctx, w, http.StatusInternalServerError, AuthResponse{Message: "Logout failed"})
		return
	}
	writeJSON(ctx, w, http.StatusOK, AuthResponse{Success: true, Message: "Logout successful"})
}

// Status handles GET /api/auth/status.
//
// swagger:route GET /api/auth/status authStatus
//
// # Session status
//
// Reports whether the request carries a valid admin session.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Authentication state
//	  schema:
//	    "$ref": "#/definitions/AuthStatus"
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.auth.Status(r))
}
