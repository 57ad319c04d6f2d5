package shared

import (
	"fmt"
	"net/http"
)

// HTTPError is a fault that carries its own HTTP status. Handlers return it
// (or wrap it) to make the error handler answer with that status instead of
// a generic 500.
type HTTPError struct {
	Status  int
	Message string
	Cause   error
}

// NewHTTPError creates an HTTPError. An empty message defaults to the
// status text.
func NewHTTPError(status int, message string, cause error) *HTTPError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &HTTPError{Status: status, Message: message, Cause: cause}
}

func (e *HTTPError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("%d %s: %s: %v", e.Status, http.StatusText(e.Status), e.Message, e.Cause)
}

func (e *HTTPError) Unwrap() error { return e.Cause }

// Type maps the status to the matching error type.
func (e *HTTPError) Type() ErrorType {
	switch e.Status {
	case http.StatusBadRequest:
		return ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return ErrorTypeUnauthenticated
	case http.StatusForbidden:
		return ErrorTypeInsufficientPrivileges
	case http.StatusNotFound:
		return ErrorTypeResourceNotFound
	case http.StatusMethodNotAllowed:
		return ErrorTypeNotAllowed
	case http.StatusNotImplemented:
		return ErrorTypeNotImplemented
	default:
		return ErrorTypeServerError
	}
}

// BadRequest creates a 400 HTTPError.
func BadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, nil)
}

// Unauthorized creates a 401 HTTPError.
func Unauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, nil)
}

// Forbidden creates a 403 HTTPError.
func Forbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, nil)
}

// NotFound creates a 404 HTTPError.
func NotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, nil)
}

// MethodNotAllowed creates a 405 HTTPError.
func MethodNotAllowed(message string) *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, message, nil)
}

// NotImplemented creates a 501 HTTPError.
func NotImplemented(message string) *HTTPError {
	return NewHTTPError(http.StatusNotImplemented, message, nil)
}

// InternalServerError creates a 500 HTTPError.
func InternalServerError(message string, cause error) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, cause)
}
