package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPErrorType(t *testing.T) {
	tests := []struct {
		err      *HTTPError
		status   int
		expected ErrorType
	}{
		{BadRequest("x"), http.StatusBadRequest, ErrorTypeBadRequest},
		{Unauthorized("x"), http.StatusUnauthorized, ErrorTypeUnauthenticated},
		{Forbidden("x"), http.StatusForbidden, ErrorTypeInsufficientPrivileges},
		{NotFound("x"), http.StatusNotFound, ErrorTypeResourceNotFound},
		{MethodNotAllowed("x"), http.StatusMethodNotAllowed, ErrorTypeNotAllowed},
		{NotImplemented("x"), http.StatusNotImplemented, ErrorTypeNotImplemented},
		{InternalServerError("x", nil), http.StatusInternalServerError, ErrorTypeServerError},
		{NewHTTPError(http.StatusTeapot, "x", nil), http.StatusTeapot, ErrorTypeServerError},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.expected, tc.err.Type())
		})
	}
}

func TestHTTPErrorDefaultsAndWrapping(t *testing.T) {
	assert.Equal(t, "Not Found", NotFound("").Message)

	cause := errors.New("disk on fire")
	err := fmt.Errorf("handler: %w", InternalServerError("boom", cause))

	var httpErr *HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, httpErr.Error(), "boom")
	assert.Contains(t, httpErr.Error(), "disk on fire")
}
