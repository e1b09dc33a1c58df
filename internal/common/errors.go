// Package common defines shared constants and sentinel errors used across
// client and server layers of LocalSwap. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Chat errors.
	ErrSelfConversation = errors.New("cannot start a conversation with yourself")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Storage errors.
	ErrUnsupportedImage = errors.New("unsupported image")
)

// ValidationError carries a user-facing message and matches ErrorValidation
// under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrorValidation
}

// NewValidationError returns a *ValidationError for field with the given message.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
