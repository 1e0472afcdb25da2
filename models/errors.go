// ABOUTME: Error types shared by the data model
// ABOUTME: Defines ValidationError and the NotFound sentinel
package models

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookup misses (contact, phone, email, note). Callers
// wrap it with context and match with errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError reports a field-level contract violation. It is always
// recoverable: interactive flows surface the message and re-prompt.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q: %s", e.Field, e.Message)
}
