package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaNotFound is returned when the schema file cannot be located.
	ErrSchemaNotFound = errors.New("schema does not exist")

	// ErrInvalidSchema is returned when the schema file is not a decodable
	// JSON object.
	ErrInvalidSchema = errors.New("schema cannot be decoded")

	// ErrUnsupportedRef is returned when a $ref points outside the schema
	// folder and the registered prefix.
	ErrUnsupportedRef = errors.New("unsupported schema reference")
)

// Error describes a schema that could not be resolved.
type Error struct {
	Name   string // requested schema name
	Reason string // short machine-friendly reason, e.g. "malformed JSON"
	Kind   error  // ErrSchemaNotFound or ErrInvalidSchema
	Cause  error  // underlying error, may be nil
}

func (e *Error) Error() string {
	if errors.Is(e.Kind, ErrSchemaNotFound) {
		return fmt.Sprintf("JSON schema does not exist. (`%s`)", e.Name)
	}
	return fmt.Sprintf("JSON schema cannot be decoded. (`%s`)", e.Name)
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func notFound(name string, cause error) error {
	return &Error{Name: name, Reason: "file not found", Kind: ErrSchemaNotFound, Cause: cause}
}

func invalid(name, reason string, cause error) error {
	return &Error{Name: name, Reason: reason, Kind: ErrInvalidSchema, Cause: cause}
}
