package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Schema is a decoded JSON Schema document.
type Schema struct {
	// Name is the name the schema was requested by, e.g. "RequestBody/CreateUser".
	Name string
	// Path is the canonical path of the file the schema was read from.
	Path string
	// Document is the decoded schema, always a map[string]any.
	Document any
}

// FileResolver reads schemas from a folder on disk.
type FileResolver struct {
	Folder string
}

// NewFileResolver creates a resolver rooted at folder.
func NewFileResolver(folder string) *FileResolver {
	return &FileResolver{Folder: folder}
}

// Resolve reads and decodes <Folder>/<name>.json.
//
// A missing file yields an error wrapping ErrSchemaNotFound. An empty file,
// malformed JSON, or a document that is not a JSON object yields an error
// wrapping ErrInvalidSchema; Error.Reason tells those cases apart.
func (fr *FileResolver) Resolve(name string) (Schema, error) {
	path, err := fr.locate(name)
	if err != nil {
		return Schema{}, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("failed to read schema %q: %w", name, err)
	}

	doc, err := DecodeJSON(content)
	if err != nil {
		reason := "malformed JSON"
		if len(bytes.TrimSpace(content)) == 0 || errors.Is(err, io.EOF) {
			reason = "empty document"
		}
		return Schema{}, invalid(name, reason, err)
	}

	if _, ok := doc.(map[string]any); !ok {
		return Schema{}, invalid(name, "schema must be a JSON object", nil)
	}

	return Schema{Name: name, Path: path, Document: doc}, nil
}

// locate returns the canonical path of the schema file.
func (fr *FileResolver) locate(name string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(fr.Folder, filepath.FromSlash(name)+".json"))
	if err != nil {
		return "", notFound(name, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", notFound(name, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", notFound(name, err)
	}
	if info.IsDir() {
		return "", notFound(name, fs.ErrNotExist)
	}

	return resolved, nil
}
