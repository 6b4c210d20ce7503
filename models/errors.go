package models

import (
	"errors"
	"fmt"
)

// ErrTournamentNotLoaded is returned by participation helpers that need the
// parent tournament association in memory.
var ErrTournamentNotLoaded = errors.New("tournament association not loaded")

// ValidationError carries a user-facing message for a single rejected field.
// Handlers surface the message verbatim in the response body.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a field validation
// failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
