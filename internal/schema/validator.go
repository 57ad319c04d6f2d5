package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultMaxErrors bounds the number of errors reported per validation.
const DefaultMaxErrors = 5

// ValidationError is a single failed keyword at a data path.
type ValidationError struct {
	// Path is the dot-joined location in the validated document; "" is the root.
	Path string
	// Keyword is the schema keyword that failed, e.g. "required" or "minLength".
	Keyword string
	// Message is the engine's human-readable description.
	Message string
	// Missing lists the absent property names of a "required" failure.
	Missing []string
}

// Result is the outcome of one validation.
type Result struct {
	Errors []ValidationError
}

// Valid reports whether the data satisfied the schema.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// ByPath groups the errors by data path, keeping their order within a path.
func (r Result) ByPath() map[string][]ValidationError {
	out := make(map[string][]ValidationError, len(r.Errors))
	for _, e := range r.Errors {
		out[e.Path] = append(out[e.Path], e)
	}
	return out
}

// Validator validates data against decoded schemas.
type Validator struct {
	folder    string
	prefix    string
	maxErrors int
}

// Option configures a Validator.
type Option func(*Validator)

// WithPrefix registers a URI prefix that maps onto the schema folder, so
// schemas may $ref each other as <prefix><relative path>.
func WithPrefix(prefix string) Option {
	return func(v *Validator) {
		v.prefix = prefix
	}
}

// WithMaxErrors overrides DefaultMaxErrors. Values below 1 are ignored.
func WithMaxErrors(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxErrors = n
		}
	}
}

// NewValidator creates a Validator whose references resolve within folder.
func NewValidator(folder string, opts ...Option) *Validator {
	v := &Validator{
		folder:    folder,
		maxErrors: DefaultMaxErrors,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks data against s. A schema that fails to compile, or a
// reference that cannot be loaded, is returned as an error; data that does
// not match is reported in the Result.
func (v *Validator) Validate(data any, s Schema) (Result, error) {
	location, err := v.location(s)
	if err != nil {
		return Result{}, err
	}

	raw, err := json.Marshal(s.Document)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode schema %q: %w", s.Name, err)
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	c.LoadURL = refLoader{folder: v.folder, prefix: v.prefix}.Load

	if err := c.AddResource(location, bytes.NewReader(raw)); err != nil {
		return Result{}, fmt.Errorf("failed to register schema %q: %w", s.Name, err)
	}

	compiled, err := c.Compile(location)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compile schema %q: %w", s.Name, err)
	}

	err = compiled.Validate(data)
	if err == nil {
		return Result{}, nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return Result{}, fmt.Errorf("failed to validate against schema %q: %w", s.Name, err)
	}

	return Result{Errors: collect(verr, nil, v.maxErrors)}, nil
}

// location returns the file URL the schema is registered under, so relative
// $refs resolve next to the schema file.
func (v *Validator) location(s Schema) (string, error) {
	path := s.Path
	if path == "" {
		abs, err := filepath.Abs(filepath.Join(v.folder, filepath.FromSlash(s.Name)+".json"))
		if err != nil {
			return "", fmt.Errorf("failed to locate schema %q: %w", s.Name, err)
		}
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(), nil
}

// collect flattens the error tree depth-first, keeping only leaves.
func collect(e *jsonschema.ValidationError, out []ValidationError, max int) []ValidationError {
	if len(out) >= max {
		return out
	}

	if len(e.Causes) == 0 {
		return append(out, leaf(e))
	}

	for _, cause := range e.Causes {
		out = collect(cause, out, max)
		if len(out) >= max {
			break
		}
	}
	return out
}

var quotedName = regexp.MustCompile(`'((?:[^'\\]|\\.)*)'`)

func leaf(e *jsonschema.ValidationError) ValidationError {
	ve := ValidationError{
		Path:    pointerToPath(e.InstanceLocation),
		Message: e.Message,
	}

	kw := e.KeywordLocation
	if i := strings.LastIndexByte(kw, '/'); i >= 0 {
		kw = kw[i+1:]
	}
	ve.Keyword = kw

	if ve.Keyword == "required" {
		for _, m := range quotedName.FindAllStringSubmatch(e.Message, -1) {
			ve.Missing = append(ve.Missing, strings.ReplaceAll(m[1], `\'`, "'"))
		}
	}

	return ve
}

// pointerToPath turns a JSON pointer such as "/user/age" into "user.age".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	parts := strings.Split(ptr, "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return strings.Join(parts, ".")
}

// refLoader loads $ref targets from the schema folder, either as plain file
// URLs or through the registered prefix.
type refLoader struct {
	folder string
	prefix string
}

func (l refLoader) Load(ref string) (io.ReadCloser, error) {
	if l.prefix != "" && strings.HasPrefix(ref, l.prefix) {
		rel := strings.TrimPrefix(ref, l.prefix)
		if i := strings.IndexByte(rel, '#'); i >= 0 {
			rel = rel[:i]
		}
		return openFile(filepath.Join(l.folder, filepath.FromSlash(rel)))
	}

	if strings.HasPrefix(ref, "file://") {
		return jsonschema.LoadURL(ref)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedRef, ref)
}

func openFile(path string) (io.ReadCloser, error) {
	if filepath.Ext(path) == "" {
		if _, err := os.Stat(path + ".json"); err == nil {
			path += ".json"
		}
	}
	return os.Open(path)
}
