package services

import (
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrNoFields rejects a reservation update that carries neither
	// status nor admin notes.
	ErrNoFields = errors.New("nothing to update")
)

// ValidationError carries field-level messages for a rejected write.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Errors, "; ") }

// AsValidation unwraps a *ValidationError if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
