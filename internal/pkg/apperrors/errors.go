package apperrors

import (
	"errors"
	"net/http"
)

// Common errors
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenWrongType     = errors.New("wrong token type")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// RequestError is a domain failure that maps directly onto an HTTP response:
// a status code plus a client-facing message. Anything that is not a
// RequestError surfaces as a generic 500 with no detail leaked.
type RequestError struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return e.Message
}

// NewBadRequestError creates a 400 request error with a message
func NewBadRequestError(message string) error {
	return &RequestError{Status: http.StatusBadRequest, Message: message}
}

// NewUnauthorizedError creates a 401 request error with a message
func NewUnauthorizedError(message string) error {
	return &RequestError{Status: http.StatusUnauthorized, Message: message}
}

// NewForbiddenError creates a 403 request error with a message
func NewForbiddenError(message string) error {
	return &RequestError{Status: http.StatusForbidden, Message: message}
}

// NewNotFoundError creates a 404 request error with a message
func NewNotFoundError(message string) error {
	return &RequestError{Status: http.StatusNotFound, Message: message}
}

// AsRequestError extracts a RequestError from an error chain.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}
