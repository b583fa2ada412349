package models

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when an identifier does not resolve to an
// existing record.
var ErrNotFound = errors.New("record not found")

// ValidationError carries field-level messages back to the caller so a
// failed submission can be corrected and retried. A storage-level
// uniqueness violation is converted into one of these, never surfaced
// raw.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	var parts []string
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}
