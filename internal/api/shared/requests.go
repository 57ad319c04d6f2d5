package shared

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

// Global validator instance for reuse. Field names in validation errors are
// taken from the json tag.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v any) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	return validate.Struct(v)
}

// ResolveArg returns the named route argument, or a 400 HTTPError when the
// route carries no such argument.
func ResolveArg(r *http.Request, name string) (string, error) {
	if !HasArg(r, name) {
		return "", BadRequest(fmt.Sprintf("Could not resolve argument `%s`.", name))
	}
	return chi.URLParam(r, name), nil
}

// HasArg reports whether the matched route has a non-empty argument name.
func HasArg(r *http.Request, name string) bool {
	return chi.URLParam(r, name) != ""
}
