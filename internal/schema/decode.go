package schema

import (
	"bytes"
	"errors"
	"io"

	json "github.com/goccy/go-json"
)

// ErrMalformedJSON is returned by DecodeJSON when the input is not a single
// well-formed JSON value.
var ErrMalformedJSON = errors.New("malformed JSON")

// DecodeJSON decodes a single JSON value into its generic Go form (objects as
// map[string]any, arrays as []any, numbers as json.Number). Empty or
// whitespace-only input yields io.EOF.
func DecodeJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, io.EOF
	}
	if !json.Valid(data) {
		return nil, ErrMalformedJSON
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Join(ErrMalformedJSON, err)
	}
	return v, nil
}
