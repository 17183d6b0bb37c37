package models

import "errors"

// Error categories surfaced to callers. Wrapped errors keep their category,
// so callers classify with errors.Is.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicateName = errors.New("a project with this name already exists")
	ErrClosedProject = errors.New("a closed project cannot be edited")
	ErrInvalidAmount = errors.New("full amount cannot be less than the invested amount")
	ErrHasInvestment = errors.New("a project that received investments cannot be deleted")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("concurrent modification, try again")
)

// ValidationError describes a single malformed or missing field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match validation failures.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
