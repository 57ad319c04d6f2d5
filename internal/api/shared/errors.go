package shared

import (
	json "github.com/goccy/go-json"
)

// ErrorType categorizes an error reported in a response payload.
type ErrorType string

// The closed set of error types an API response may carry.
const (
	// ErrorTypeBadRequest marks a malformed or semantically invalid request.
	ErrorTypeBadRequest ErrorType = "BAD_REQUEST"
	// ErrorTypeInsufficientPrivileges marks a caller lacking the required privileges.
	ErrorTypeInsufficientPrivileges ErrorType = "INSUFFICIENT_PRIVILEGES"
	// ErrorTypeNotAllowed marks an action not allowed in the current context.
	ErrorTypeNotAllowed ErrorType = "NOT_ALLOWED"
	// ErrorTypeNotImplemented marks an action the server does not implement.
	ErrorTypeNotImplemented ErrorType = "NOT_IMPLEMENTED"
	// ErrorTypeResourceNotFound marks a missing resource.
	ErrorTypeResourceNotFound ErrorType = "RESOURCE_NOT_FOUND"
	// ErrorTypeServerError marks a server-side failure.
	ErrorTypeServerError ErrorType = "SERVER_ERROR"
	// ErrorTypeUnauthenticated marks missing or invalid authentication.
	ErrorTypeUnauthenticated ErrorType = "UNAUTHENTICATED"
	// ErrorTypeValidationError marks request data failing validation rules.
	ErrorTypeValidationError ErrorType = "VALIDATION_ERROR"
	// ErrorTypeSchemaValidationError marks request data failing structural validation.
	ErrorTypeSchemaValidationError ErrorType = "SCHEMA_VALIDATION_ERROR"
	// ErrorTypeVerificationError marks a request that could not be verified.
	ErrorTypeVerificationError ErrorType = "VERIFICATION_ERROR"
)

var errorTypes = map[ErrorType]struct{}{
	ErrorTypeBadRequest:             {},
	ErrorTypeInsufficientPrivileges: {},
	ErrorTypeNotAllowed:             {},
	ErrorTypeNotImplemented:         {},
	ErrorTypeResourceNotFound:       {},
	ErrorTypeServerError:            {},
	ErrorTypeUnauthenticated:        {},
	ErrorTypeValidationError:        {},
	ErrorTypeSchemaValidationError:  {},
	ErrorTypeVerificationError:      {},
}

// Valid reports whether t is one of the declared error types.
func (t ErrorType) Valid() bool {
	_, ok := errorTypes[t]
	return ok
}

// ErrorItem is a single entry of a payload's errors array.
// It is implemented only by Error and FieldError.
type ErrorItem interface {
	json.Marshaler

	Type() ErrorType
	Description() (string, bool)
	UID() (string, bool)

	withUID(uid string) ErrorItem
}

// ErrorOption sets an optional attribute of an Error or FieldError.
type ErrorOption func(*details)

// WithDescription sets the human-readable description.
func WithDescription(description string) ErrorOption {
	return func(d *details) {
		d.description = &description
	}
}

// WithUID sets the correlation id.
func WithUID(uid string) ErrorOption {
	return func(d *details) {
		d.uid = &uid
	}
}

type details struct {
	typ         ErrorType
	description *string
	uid         *string
}

func newDetails(t ErrorType, opts []ErrorOption) details {
	d := details{typ: t}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// Type returns the error category.
func (d details) Type() ErrorType { return d.typ }

// Description returns the description and whether one was set.
func (d details) Description() (string, bool) { return deref(d.description) }

// UID returns the correlation id and whether one was set.
func (d details) UID() (string, bool) { return deref(d.uid) }

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

// Error is an error that is not tied to a particular field.
type Error struct {
	details
}

// NewError creates an Error of the given type.
func NewError(t ErrorType, opts ...ErrorOption) Error {
	return Error{details: newDetails(t, opts)}
}

func (e Error) withUID(uid string) ErrorItem {
	e.uid = &uid
	return e
}

// MarshalJSON implements json.Marshaler. Absent values are encoded as null.
func (e Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        ErrorType `json:"type"`
		Description *string   `json:"description"`
		UID         *string   `json:"uid"`
	}{e.typ, e.description, e.uid})
}

// FieldError is an error tied to a path inside the validated document.
type FieldError struct {
	details
	fieldName string
	code      string
}

// NewFieldError creates a FieldError for fieldName with a machine-readable code.
func NewFieldError(t ErrorType, fieldName, code string, opts ...ErrorOption) FieldError {
	return FieldError{
		details:   newDetails(t, opts),
		fieldName: fieldName,
		code:      code,
	}
}

// FieldName returns the dotted path of the offending field.
func (e FieldError) FieldName() string { return e.fieldName }

// Code returns the machine-readable error code.
func (e FieldError) Code() string { return e.code }

func (e FieldError) withUID(uid string) ErrorItem {
	e.uid = &uid
	return e
}

// MarshalJSON implements json.Marshaler. Absent values are encoded as null.
func (e FieldError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        ErrorType `json:"type"`
		Code        string    `json:"code"`
		FieldName   string    `json:"fieldName"`
		Description *string   `json:"description"`
		UID         *string   `json:"uid"`
	}{e.typ, e.code, e.fieldName, e.description, e.uid})
}

// AttachUID returns copies of items carrying the given correlation id.
// An empty uid leaves the items untouched.
func AttachUID(items []ErrorItem, uid string) []ErrorItem {
	if uid == "" || items == nil {
		return items
	}
	out := make([]ErrorItem, len(items))
	for i, item := range items {
		out[i] = item.withUID(uid)
	}
	return out
}

// Warning is a non-critical notice returned alongside a response.
type Warning struct {
	typ         string
	description *string
}

// NewWarning creates a Warning of the given type, e.g. "deprecation".
func NewWarning(t string, description ...string) Warning {
	w := Warning{typ: t}
	if len(description) > 0 {
		w.description = &description[0]
	}
	return w
}

// Type returns the warning category.
func (w Warning) Type() string { return w.typ }

// Description returns the description and whether one was set.
func (w Warning) Description() (string, bool) { return deref(w.description) }

// MarshalJSON implements json.Marshaler.
func (w Warning) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string  `json:"type"`
		Description *string `json:"description"`
	}{w.typ, w.description})
}
