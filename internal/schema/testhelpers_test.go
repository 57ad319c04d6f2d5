package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeSchemas creates a schema folder holding the given name → content files.
func writeSchemas(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func mustDecode(t *testing.T, raw string) any {
	t.Helper()

	v, err := DecodeJSON([]byte(raw))
	require.NoError(t, err)
	return v
}
