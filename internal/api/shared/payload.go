package shared

import (
	"net/http"
	"reflect"

	json "github.com/goccy/go-json"
)

// Payload is the envelope every endpoint responds with. It carries either
// data or errors, optionally accompanied by warnings.
type Payload struct {
	statusCode int
	data       any
	errors     []ErrorItem
	warnings   []Warning
}

// PayloadOption configures a Payload.
type PayloadOption func(*Payload)

// WithData sets the success data. A nil value, including a typed nil such
// as []T(nil) or a nil map or pointer, leaves the payload without data.
func WithData(data any) PayloadOption {
	return func(p *Payload) {
		if isNil(data) {
			p.data = nil
			return
		}
		p.data = data
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// WithError appends a single error.
func WithError(err ErrorItem) PayloadOption {
	return func(p *Payload) {
		p.errors = append(p.errors, err)
	}
}

// WithErrors appends several errors. Passing an empty, non-nil slice still
// marks the payload as carrying errors.
func WithErrors(errs []ErrorItem) PayloadOption {
	return func(p *Payload) {
		if errs == nil {
			return
		}
		if p.errors == nil {
			p.errors = make([]ErrorItem, 0, len(errs))
		}
		p.errors = append(p.errors, errs...)
	}
}

// WithWarning appends a single warning.
func WithWarning(w Warning) PayloadOption {
	return func(p *Payload) {
		p.warnings = append(p.warnings, w)
	}
}

// WithWarnings appends several warnings.
func WithWarnings(ws []Warning) PayloadOption {
	return func(p *Payload) {
		if ws == nil {
			return
		}
		if p.warnings == nil {
			p.warnings = make([]Warning, 0, len(ws))
		}
		p.warnings = append(p.warnings, ws...)
	}
}

// NewPayload creates a payload for the given HTTP status. A zero status
// defaults to 200.
func NewPayload(statusCode int, opts ...PayloadOption) Payload {
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	p := Payload{statusCode: statusCode}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// StatusCode returns the HTTP status of the payload.
func (p Payload) StatusCode() int { return p.statusCode }

// Data returns the success data, or nil.
func (p Payload) Data() any { return p.data }

// Errors returns the errors, or nil when the payload carries none.
func (p Payload) Errors() []ErrorItem { return p.errors }

// Warnings returns the warnings, or nil when the payload carries none.
func (p Payload) Warnings() []Warning { return p.warnings }

// MarshalJSON implements json.Marshaler. Data takes precedence over errors;
// warnings are emitted whenever present.
func (p Payload) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 2)

	if p.data != nil {
		out["data"] = p.data
	} else if p.errors != nil {
		out["errors"] = p.errors
	}

	if p.warnings != nil {
		out["warnings"] = p.warnings
	}

	return json.Marshal(out)
}
