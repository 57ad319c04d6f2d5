package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/szabmik/slim/internal/api/shared"
	"github.com/szabmik/slim/internal/platform/logger"
	"github.com/szabmik/slim/internal/schema"
)

// Target selects which part of the request a directive validates.
type Target string

const (
	// RequestBody validates the JSON request body.
	RequestBody Target = "requestBody"
	// QueryParameters validates the URL query string.
	QueryParameters Target = "queryParameters"
)

// DefaultMaxBodyBytes bounds how much of a request body is read for validation.
const DefaultMaxBodyBytes int64 = 1 << 20

// Directive binds a route to a schema for one part of the request.
type Directive struct {
	Target     Target
	SchemaName string
}

// Body is shorthand for a RequestBody directive.
func Body(schemaName string) Directive {
	return Directive{Target: RequestBody, SchemaName: schemaName}
}

// Query is shorthand for a QueryParameters directive.
func Query(schemaName string) Directive {
	return Directive{Target: QueryParameters, SchemaName: schemaName}
}

// schemaName returns the folder-relative name of the directive's schema.
func (d Directive) schemaName() (string, error) {
	switch d.Target {
	case RequestBody:
		return "RequestBody/" + d.SchemaName, nil
	case QueryParameters:
		return "QueryParameters/" + d.SchemaName, nil
	}
	return "", fmt.Errorf("unknown validation target %q", d.Target)
}

// SchemaResolver loads a schema by name.
type SchemaResolver interface {
	Resolve(name string) (schema.Schema, error)
}

// SchemaValidator validates decoded data against a schema.
type SchemaValidator interface {
	Validate(data any, s schema.Schema) (schema.Result, error)
}

// ErrorHandler renders errors that are not validation failures.
type ErrorHandler interface {
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

// ErrorHandlerFunc adapts a function to ErrorHandler.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// HandleError calls f(w, r, err).
func (f ErrorHandlerFunc) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	f(w, r, err)
}

// SchemaValidation validates requests against JSON schemas before they reach
// the route handler.
type SchemaValidation struct {
	resolver     SchemaResolver
	validator    SchemaValidator
	errorHandler ErrorHandler
	maxBodyBytes int64
}

// SchemaValidationOption configures a SchemaValidation.
type SchemaValidationOption func(*SchemaValidation)

// WithErrorHandler sets the handler that renders resolver and validator faults
// and malformed request bodies.
func WithErrorHandler(h ErrorHandler) SchemaValidationOption {
	return func(sv *SchemaValidation) {
		if h != nil {
			sv.errorHandler = h
		}
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes. Values below 1 are ignored.
func WithMaxBodyBytes(n int64) SchemaValidationOption {
	return func(sv *SchemaValidation) {
		if n > 0 {
			sv.maxBodyBytes = n
		}
	}
}

// NewSchemaValidation creates the validation middleware factory.
func NewSchemaValidation(resolver SchemaResolver, validator SchemaValidator, opts ...SchemaValidationOption) *SchemaValidation {
	sv := &SchemaValidation{
		resolver:     resolver,
		validator:    validator,
		errorHandler: ErrorHandlerFunc(defaultErrorHandler),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(sv)
	}
	return sv
}

// Require returns middleware that validates each directive in order. The
// first failing directive produces a 400 response and stops processing;
// later directives are not resolved.
func (sv *SchemaValidation) Require(directives ...Directive) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				body    any
				hasBody bool
			)

			for _, d := range directives {
				name, err := d.schemaName()
				if err != nil {
					sv.fault(w, r, err)
					return
				}

				var data any
				switch d.Target {
				case RequestBody:
					if !hasBody {
						body, err = sv.readBody(w, r)
						if err != nil {
							sv.fault(w, r, err)
							return
						}
						hasBody = true
					}
					data = body
				case QueryParameters:
					data = queryToObject(r.URL.Query())
				}

				s, err := sv.resolver.Resolve(name)
				if err != nil {
					sv.fault(w, r, fmt.Errorf("failed to resolve schema: %w", err))
					return
				}

				res, err := sv.validator.Validate(data, s)
				if err != nil {
					sv.fault(w, r, fmt.Errorf("failed to validate request: %w", err))
					return
				}

				if !res.Valid() {
					logger.FromContext(r.Context()).DebugContext(r.Context(), "request failed schema validation",
						"schema", name,
						"error_count", len(res.Errors),
						"path", r.URL.Path)
					shared.RespondWithErrors(w, r, http.StatusBadRequest, TranslateErrors(res)...)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// fault hands err to the error handler, which owns logging and redaction.
func (sv *SchemaValidation) fault(w http.ResponseWriter, r *http.Request, err error) {
	sv.errorHandler.HandleError(w, r, err)
}

// readBody decodes the request body and restores it for the next handler.
// An empty or whitespace-only body is treated as an empty object.
func (sv *SchemaValidation) readBody(w http.ResponseWriter, r *http.Request) (any, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return map[string]any{}, nil
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, sv.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, shared.BadRequest(fmt.Sprintf("Request body exceeds %d bytes.", tooLarge.Limit))
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	data, err := schema.DecodeJSON(raw)
	if errors.Is(err, io.EOF) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, shared.NewHTTPError(http.StatusBadRequest, "Malformed JSON in request body.", err)
	}
	return data, nil
}

// queryToObject converts query values to a JSON-like object. Keys with a
// single value map to a string, repeated keys to an array of strings.
func queryToObject(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			out[key] = vals[0]
			continue
		}
		items := make([]any, len(vals))
		for i, v := range vals {
			items[i] = v
		}
		out[key] = items
	}
	return out
}

var parenthesised = regexp.MustCompile(`\((.*?)\)`)

// TranslateErrors turns validation errors into response error items.
func TranslateErrors(res schema.Result) []shared.ErrorItem {
	items := make([]shared.ErrorItem, 0, len(res.Errors))

	for _, e := range res.Errors {
		if e.Path != "" {
			items = append(items, shared.NewFieldError(
				shared.ErrorTypeValidationError,
				e.Path,
				GenerateCode(e.Path, e.Keyword),
				shared.WithDescription(e.Message),
			))
			continue
		}

		var names []string
		if e.Keyword == "required" {
			names = missingNames(e)
		}

		if len(names) == 0 {
			items = append(items, shared.NewError(
				shared.ErrorTypeValidationError,
				shared.WithDescription(e.Message),
			))
			continue
		}

		for _, name := range names {
			items = append(items, shared.NewFieldError(
				shared.ErrorTypeValidationError,
				name,
				GenerateCode(name, e.Keyword),
				shared.WithDescription(fmt.Sprintf("The required property (`%s`) is missing.", name)),
			))
		}
	}

	return items
}

func missingNames(e schema.ValidationError) []string {
	if len(e.Missing) > 0 {
		return e.Missing
	}

	m := parenthesised.FindStringSubmatch(e.Message)
	if m == nil || m[1] == "" {
		return nil
	}
	return strings.Split(m[1], ", ")
}

// GenerateCode builds an error code from a field name and schema keyword:
// camelCase becomes SNAKE_CASE, path separators become underscores and the
// upper-cased keyword is appended.
//
//	GenerateCode("userName", "minLength") == "USER_NAME_MINLENGTH"
//	GenerateCode("user.age", "type")      == "USER_AGE_TYPE"
func GenerateCode(field, keyword string) string {
	var b strings.Builder
	b.Grow(len(field) + len(keyword) + 4)

	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		if r == '.' {
			r = '_'
		}
		b.WriteRune(unicode.ToUpper(r))
	}

	b.WriteByte('_')
	b.WriteString(strings.ToUpper(keyword))
	return b.String()
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *shared.HTTPError
	if errors.As(err, &httpErr) {
		shared.RespondWithErrors(w, r, httpErr.Status,
			shared.NewError(httpErr.Type(), shared.WithDescription(httpErr.Message)))
		return
	}
	shared.RespondWithErrors(w, r, http.StatusInternalServerError,
		shared.NewError(shared.ErrorTypeServerError,
			shared.WithDescription("An internal error has occurred while processing your request.")))
}
