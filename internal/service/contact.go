package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_contact_service.go -package=mocks -mock_names=ContactService=MockContactService portfolio/internal/service ContactService

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"portfolio/internal/contextutil"
	"portfolio/internal/storage"
)

// ContactRequest is a contact form submission.
//
// swagger:model ContactRequest
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactService stores and lists contact messages.
type ContactService interface {
	Create(ctx context.Context, req ContactRequest) (*storage.ContactMessage, error)
	List(ctx context.Context) ([]storage.ContactMessage, error)
}

// contactService implements ContactService.
type contactService struct {
	messages storage.ContactStore
	policy   *bluemonday.Policy
}

// NewContactService creates a new ContactService.
func NewContactService(messages storage.ContactStore) ContactService {
	return &contactService{
		messages: messages,
		policy:   bluemonday.StrictPolicy(),
	}
}

// clean strips markup. StrictPolicy escapes what it keeps, so entities are
// decoded again before storing plain text.
func (s *contactService) clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

func (s *contactService) Create(ctx context.Context, req ContactRequest) (*storage.ContactMessage, error) {
	logger := contextutil.LoggerFromContext(ctx)

	req.Name = s.clean(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = s.clean(req.Message)
	if err := validateStruct(req); err != nil {
		logger.WarnContext(ctx, "invalid contact message", "error", err)
		return nil, err
	}

	msg := &storage.ContactMessage{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := s.messages.Create(ctx, msg); err != nil {
		logger.ErrorContext(ctx, "failed to save contact message", "error", err)
		return nil, WrapError(err, "failed to save contact message")
	}

	logger.InfoContext(ctx, "contact message received", "id", msg.ID)
	return msg, nil
}

func (s *contactService) List(ctx context.Context) ([]storage.ContactMessage, error) {
	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list contact messages")
	}
	return messages, nil
}
