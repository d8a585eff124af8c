package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlanticdynamic/vaultlight/internal/config/errz"
)

func validConfig() Config {
	cfg := Default()
	cfg.Site.Name = "My Notes"
	cfg.Site.Description = "A vault of notes"
	cfg.Site.URL = "https://notes.example.com"
	return cfg
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid config has no violations", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("missing site identity", func(t *testing.T) {
		cfg := Default()
		err := cfg.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errz.ErrMissingRequiredField)
		assert.Contains(t, err.Error(), "site name")
		assert.Contains(t, err.Error(), "site description")
		assert.Contains(t, err.Error(), "site URL")
	})

	t.Run("relative URL rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Site.URL = "/just/a/path"

		err := cfg.Validate()
		assert.ErrorIs(t, err, errz.ErrInvalidSiteURL)
	})

	t.Run("unparseable URL rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Site.URL = "not a url"

		err := cfg.Validate()
		assert.ErrorIs(t, err, errz.ErrInvalidSiteURL)
	})

	t.Run("analytics vendor formats", func(t *testing.T) {
		tests := []struct {
			id    string
			valid bool
		}{
			{"", true},
			{"G-ABC123XYZ", true},
			{"UA-12345-1", true},
			{"GTM-AB12CD", true},
			{"g-abc123", false},
			{"XX-12345", false},
			{"G-", false},
		}

		for _, tc := range tests {
			t.Run(tc.id, func(t *testing.T) {
				cfg := validConfig()
				cfg.SEO.AnalyticsID = tc.id
				err := cfg.Validate()
				if tc.valid {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, errz.ErrInvalidAnalyticsID)
				}
			})
		}
	})

	t.Run("meta tag needs a name or property and content", func(t *testing.T) {
		cfg := validConfig()
		cfg.SEO.MetaTags = []MetaTag{{Content: "orphan"}, {Name: "author"}}

		err := cfg.Validate()
		assert.ErrorIs(t, err, errz.ErrInvalidMetaTag)
	})

	t.Run("malformed exclude pattern rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Advanced.ExcludePatterns = []string{"[unclosed"}

		err := cfg.Validate()
		assert.ErrorIs(t, err, errz.ErrInvalidPattern)
	})

	t.Run("validation collects every violation", func(t *testing.T) {
		cfg := Default()
		cfg.SEO.AnalyticsID = "bogus"

		err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, errz.ErrMissingRequiredField)
		assert.ErrorIs(t, err, errz.ErrInvalidAnalyticsID)
	})
}

func TestExcludeMatchers(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Advanced.ExcludePatterns = []string{"drafts/**", "*.tmp"}

	matchers := cfg.ExcludeMatchers()
	require.Len(t, matchers, 2)

	assert.True(t, matchers[0].Match("drafts/2024/note.md"))
	assert.False(t, matchers[0].Match("notes/drafts.md"))
	assert.True(t, matchers[1].Match("scratch.tmp"))
}
