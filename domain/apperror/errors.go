package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotAuthenticated indicates the request carries no usable session.
var ErrNotAuthenticated = errors.New("authentication required")

// ErrNotConnected indicates the session user has no stored Instagram access token.
var ErrNotConnected = errors.New("instagram account not connected properly")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ConfigurationError reports settings an operator must provide before the
// service can talk to the OAuth provider.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s", strings.Join(e.Missing, ", "))
}

// ValidationError is a malformed request body, reported per field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
