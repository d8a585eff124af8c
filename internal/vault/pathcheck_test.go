package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPath(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "note.md")
	require.NoError(t, os.WriteFile(file, []byte("# hi"), 0o644))

	t.Run("empty path rejected before any filesystem access", func(t *testing.T) {
		res := CheckPath("", PathRules{AllowAbsolute: true, AllowFiles: true})
		assert.False(t, res.Valid)
		assert.True(t, res.IsEmpty)
		assert.Equal(t, "path is empty", res.Err)
	})

	t.Run("empty path allowed when opted in", func(t *testing.T) {
		res := CheckPath("", PathRules{AllowEmpty: true})
		assert.True(t, res.Valid)
		assert.True(t, res.IsEmpty)
	})

	t.Run("unexpanded tilde is a literal relative path", func(t *testing.T) {
		// Without AllowTildeHome the tilde stays put, so the path falls
		// through the normal rules as a relative path named "~...".
		res := CheckPath("~/vault", PathRules{AllowAbsolute: true, AllowDirectories: true})
		assert.False(t, res.Valid)
		assert.Contains(t, res.Err, "relative")

		res = CheckPath("~typo/out", PathRules{
			AllowAbsolute: true, AllowRelative: true, AllowDirectories: true,
		})
		assert.True(t, res.Valid, "literal path that need not exist passes")

		res = CheckPath("~typo/out", PathRules{
			AllowRelative: true, AllowDirectories: true, RequireExists: true,
		})
		assert.False(t, res.Valid)
		assert.Contains(t, res.Err, "does not exist")
	})

	t.Run("tilde expands to home when allowed", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		res := CheckPath("~", PathRules{
			AllowTildeHome: true, AllowAbsolute: true, AllowDirectories: true, RequireExists: true,
		})
		assert.True(t, res.Valid, "home dir %s should exist", home)
	})

	t.Run("absolute path rejected when only relative allowed", func(t *testing.T) {
		res := CheckPath(tmp, PathRules{AllowRelative: true, AllowDirectories: true})
		assert.False(t, res.Valid)
		assert.Contains(t, res.Err, "absolute")
	})

	t.Run("relative path rejected when only absolute allowed", func(t *testing.T) {
		res := CheckPath("notes/here", PathRules{AllowAbsolute: true, AllowDirectories: true})
		assert.False(t, res.Valid)
		assert.Contains(t, res.Err, "relative")
	})

	t.Run("require exists", func(t *testing.T) {
		missing := filepath.Join(tmp, "missing")
		res := CheckPath(missing, PathRules{
			AllowAbsolute: true, AllowFiles: true, AllowDirectories: true, RequireExists: true,
		})
		assert.False(t, res.Valid)
		assert.Contains(t, res.Err, "does not exist")
	})

	t.Run("missing path passes when existence not required", func(t *testing.T) {
		missing := filepath.Join(tmp, "missing")
		res := CheckPath(missing, PathRules{AllowAbsolute: true, AllowDirectories: true})
		assert.True(t, res.Valid)
	})

	t.Run("directory rejected when only files allowed", func(t *testing.T) {
		res := CheckPath(tmp, PathRules{AllowAbsolute: true, AllowFiles: true})
		assert.False(t, res.Valid)
		assert.Contains(t, res.Err, "directory")
	})

	t.Run("file rejected when only directories allowed", func(t *testing.T) {
		res := CheckPath(file, PathRules{AllowAbsolute: true, AllowDirectories: true})
		assert.False(t, res.Valid)
		assert.Contains(t, res.Err, "file")
	})

	t.Run("extension whitelist", func(t *testing.T) {
		ok := CheckPath(file, PathRules{
			AllowAbsolute: true, AllowFiles: true, RequireExtensions: []string{".md", ".markdown"},
		})
		assert.True(t, ok.Valid)

		bad := CheckPath(file, PathRules{
			AllowAbsolute: true, AllowFiles: true, RequireExtensions: []string{".txt"},
		})
		assert.False(t, bad.Valid)
		assert.Contains(t, bad.Err, ".md")
	})

	t.Run("extension compare is case-insensitive", func(t *testing.T) {
		upper := filepath.Join(tmp, "NOTE.MD")
		require.NoError(t, os.WriteFile(upper, []byte("x"), 0o644))

		res := CheckPath(upper, PathRules{
			AllowAbsolute: true, AllowFiles: true, RequireExtensions: []string{".md"},
		})
		assert.True(t, res.Valid)
	})
}
