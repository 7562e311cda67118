package handlers

import (
	"encoding/json"
	"net/http"

	"portfolio/internal/contextutil"
	"portfolio/internal/service"
	"portfolio/internal/storage"
)

// ContactHandler serves the contact form.
type ContactHandler struct {
	contacts service.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contacts service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// List handles GET /api/contact-messages.
//
// swagger:route GET /api/contact-messages listContactMessages
//
// # List contact messages
//
// Returns the stored contact messages, newest first. Requires an admin session.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Contact messages
//	  schema:
//	    type: array
//	    items:
//	      "$ref": "#/definitions/ContactMessage"
//	'401':
//	  description: Not authenticated
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	msgs, err := h.contacts.List(ctx)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to fetch contact messages")
		return
	}
	if msgs == nil {
		msgs = []storage.ContactMessage{}
	}
	writeJSON(ctx, w, http.StatusOK, msgs)
}

// Create handles POST /api/contact.
//
// swagger:route POST /api/contact createContactMessage
//
// # Send a contact message
//
// Validates and stores a contact form submission.
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
//     "$ref": "#/definitions/ContactRequest"
// responses:
//
//	'201':
//	  description: Message stored
//	  schema:
//	    "$ref": "#/definitions/ContactMessage"
//	'400':
//	  description: Invalid request body or fields
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, codeBadRequest, "Invalid request body")
		return
	}

	msg, err := h.contacts.Create(ctx, req)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to create contact message")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, msg)
}
