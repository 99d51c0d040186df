package models

import (
	"errors"
	"fmt"
)

// Errors that interrupt a user action. Storage anomalies never surface here.
var (
	ErrEmptyCart     = errors.New("cart has no items")
	ErrNoActiveEvent = errors.New("no active event")
	ErrEventNotFound = errors.New("event not found")
	ErrEventClosed   = errors.New("event is closed")
	ErrItemNotFound  = errors.New("item not found")
	ErrTotalMismatch = errors.New("transaction total does not match its line items")
	ErrInvalidImport = errors.New("invalid import format")
)

// ValidationError reports rejected user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
