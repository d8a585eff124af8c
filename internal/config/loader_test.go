package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlanticdynamic/vaultlight/internal/config/errz"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("loads a settings file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vaultlight.toml")
		content := `
[site]
name = "My Notes"
url = "https://notes.example.com"

[features]
graph_view = false

[seo]
analytics_id = "G-ABC123XYZ"

[[seo.meta_tags]]
name = "author"
content = "someone"

[advanced]
exclude_patterns = ["drafts/**"]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		o, err := LoadFile(path)
		require.NoError(t, err)

		require.NotNil(t, o.Site.Name)
		assert.Equal(t, "My Notes", *o.Site.Name)
		require.NotNil(t, o.Features.GraphView)
		assert.False(t, *o.Features.GraphView)
		assert.Nil(t, o.Features.Search, "unset keys stay nil")
		require.Len(t, o.SEO.MetaTags, 1)
		assert.Equal(t, []string{"drafts/**"}, o.Advanced.ExcludePatterns)
	})

	t.Run("missing file contributes nothing", func(t *testing.T) {
		o, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
		require.NoError(t, err)
		assert.Equal(t, Overlay{}, o)
	})

	t.Run("empty path contributes nothing", func(t *testing.T) {
		o, err := LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, Overlay{}, o)
	})

	t.Run("malformed TOML is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[site\nname="), 0o644))

		_, err := LoadFile(path)
		assert.ErrorIs(t, err, errz.ErrFailedToLoadConfig)
	})
}
