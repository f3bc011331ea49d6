package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared across services. Handlers map them to HTTP status
// codes with StatusCode; anything unrecognized is treated as internal and
// never leaks its detail to the client.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
	ErrStaleSession    = errors.New("session expired, re-authentication required")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("resource already exists")
)

// ValidationError reports malformed or incomplete input. Details is optional
// structured context, e.g. the ids of required questions left unanswered.
type ValidationError struct {
	Message string
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a plain validation error.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NewValidationDetails creates a validation error with structured context.
func NewValidationDetails(message string, details map[string]interface{}) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

// IsValidation reports whether err is a ValidationError, returning it if so.
func IsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// StatusCode maps a service error to an HTTP status code.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrStaleSession):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		if _, ok := IsValidation(err); ok {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}
