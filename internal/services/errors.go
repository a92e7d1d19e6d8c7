package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no ship exists under the requested id.
	ErrNotFound = errors.New("ship not found")

	// ErrInvalidID is returned for ids that are zero or negative.
	ErrInvalidID = errors.New("ship id must be a positive number")
)

// FieldError reports a single field whose value violates its constraint.
// The service surfaces these untouched so handlers can map them to 400s.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

// IsValidationError reports whether err should be treated as a bad
// request rather than an internal failure.
func IsValidationError(err error) bool {
	var fieldErr *FieldError
	return errors.As(err, &fieldErr) || errors.Is(err, ErrInvalidID)
}
