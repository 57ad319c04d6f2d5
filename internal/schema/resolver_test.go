package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileResolverResolve(t *testing.T) {
	dir := writeSchemas(t, map[string]string{
		"RequestBody/CreateUser.json": `{"type":"object","required":["name"]}`,
	})
	r := NewFileResolver(dir)

	s, err := r.Resolve("RequestBody/CreateUser")
	require.NoError(t, err)

	assert.Equal(t, "RequestBody/CreateUser", s.Name)
	assert.True(t, filepath.IsAbs(s.Path), "path should be absolute")
	assert.Equal(t, map[string]any{
		"type":     "object",
		"required": []any{"name"},
	}, s.Document)
}

func TestFileResolverIsIdempotent(t *testing.T) {
	dir := writeSchemas(t, map[string]string{
		"QueryParameters/ListUsers.json": `{"type":"object"}`,
	})
	r := NewFileResolver(dir)

	first, err := r.Resolve("QueryParameters/ListUsers")
	require.NoError(t, err)
	second, err := r.Resolve("QueryParameters/ListUsers")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFileResolverRereadsFile(t *testing.T) {
	dir := writeSchemas(t, map[string]string{
		"RequestBody/Thing.json": `{"type":"object"}`,
	})
	r := NewFileResolver(dir)

	_, err := r.Resolve("RequestBody/Thing")
	require.NoError(t, err)

	path := filepath.Join(dir, "RequestBody", "Thing.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"array"}`), 0o644))

	s, err := r.Resolve("RequestBody/Thing")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "array"}, s.Document)
}

func TestFileResolverFollowsSymlinks(t *testing.T) {
	dir := writeSchemas(t, map[string]string{
		"shared/User.json": `{"type":"object"}`,
	})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "RequestBody"), 0o755))

	target := filepath.Join(dir, "shared", "User.json")
	link := filepath.Join(dir, "RequestBody", "CreateUser.json")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	s, err := NewFileResolver(dir).Resolve("RequestBody/CreateUser")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, want, s.Path)
}

func TestFileResolverErrors(t *testing.T) {
	dir := writeSchemas(t, map[string]string{
		"RequestBody/Empty.json":     ``,
		"RequestBody/Blank.json":     "  \n",
		"RequestBody/Malformed.json": `{"type":`,
		"RequestBody/Null.json":      `null`,
		"RequestBody/False.json":     `false`,
		"RequestBody/True.json":      `true`,
		"RequestBody/Zero.json":      `0`,
		"RequestBody/String.json":    `""`,
		"RequestBody/Array.json":     `[]`,
		"RequestBody/Dir.json/x":     `{}`,
	})
	r := NewFileResolver(dir)

	tests := []struct {
		name    string
		schema  string
		kind    error
		reason  string
		message string
	}{
		{
			name:    "missing",
			schema:  "RequestBody/Missing",
			kind:    ErrSchemaNotFound,
			reason:  "file not found",
			message: "JSON schema does not exist. (`RequestBody/Missing`)",
		},
		{
			name:    "directory",
			schema:  "RequestBody/Dir",
			kind:    ErrSchemaNotFound,
			reason:  "file not found",
			message: "JSON schema does not exist. (`RequestBody/Dir`)",
		},
		{
			name:    "empty file",
			schema:  "RequestBody/Empty",
			kind:    ErrInvalidSchema,
			reason:  "empty document",
			message: "JSON schema cannot be decoded. (`RequestBody/Empty`)",
		},
		{
			name:   "whitespace only",
			schema: "RequestBody/Blank",
			kind:   ErrInvalidSchema,
			reason: "empty document",
		},
		{
			name:    "malformed",
			schema:  "RequestBody/Malformed",
			kind:    ErrInvalidSchema,
			reason:  "malformed JSON",
			message: "JSON schema cannot be decoded. (`RequestBody/Malformed`)",
		},
		{name: "null", schema: "RequestBody/Null", kind: ErrInvalidSchema, reason: "schema must be a JSON object"},
		{name: "false", schema: "RequestBody/False", kind: ErrInvalidSchema, reason: "schema must be a JSON object"},
		{name: "true", schema: "RequestBody/True", kind: ErrInvalidSchema, reason: "schema must be a JSON object"},
		{name: "zero", schema: "RequestBody/Zero", kind: ErrInvalidSchema, reason: "schema must be a JSON object"},
		{name: "empty string", schema: "RequestBody/String", kind: ErrInvalidSchema, reason: "schema must be a JSON object"},
		{name: "array", schema: "RequestBody/Array", kind: ErrInvalidSchema, reason: "schema must be a JSON object"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Resolve(tc.schema)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.kind)

			var serr *Error
			require.True(t, errors.As(err, &serr), "expected *schema.Error, got %T", err)
			assert.Equal(t, tc.schema, serr.Name)
			assert.Equal(t, tc.reason, serr.Reason)
			if tc.message != "" {
				assert.Equal(t, tc.message, err.Error())
			}
		})
	}
}
