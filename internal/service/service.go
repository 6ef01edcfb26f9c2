package service

import (
	"github.com/pkg/errors"

	"glamstore/internal/model"
	"glamstore/internal/ws"
	"glamstore/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
	ErrUploadsDisabled    = errors.New("image uploads are not configured")
)

// ValidationError carries a client-facing message for a rejected request.
type ValidationError struct {
	Message string
	Fields  []*validator.ErrorResponse
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// validate runs struct validation and wraps any failure in a ValidationError.
func validate(v interface{}) error {
	if errs := validator.ValidateStruct(v); len(errs) > 0 {
		return &ValidationError{Message: "Validation failed: " + validator.Summary(errs), Fields: errs}
	}
	return nil
}

// Principal is the authenticated caller. ID is the local user id when the
// caller has a local record, otherwise the identity provider's id.
type Principal struct {
	ID         string     `json:"id"`
	ExternalID string     `json:"external_id,omitempty"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       model.Role `json:"role"`
	Registered bool       `json:"registered"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == model.RoleAdmin
}

func (p *Principal) actor() *ws.Actor {
	if p == nil {
		return nil
	}
	return &ws.Actor{ID: p.ID, Name: p.Name, Email: p.Email}
}

func (p *Principal) id() string {
	if p == nil {
		return ""
	}
	return p.ID
}

// Broadcaster publishes live events to admin clients.
type Broadcaster interface {
	Publish(event ws.Event)
}

type nopBroadcaster struct{}

func (nopBroadcaster) Publish(ws.Event) {}

func broadcasterOrNop(b Broadcaster) Broadcaster {
	if b == nil {
		return nopBroadcaster{}
	}
	return b
}
