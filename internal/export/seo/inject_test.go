package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlanticdynamic/vaultlight/internal/config"
)

const testPage = `<!DOCTYPE html>
<html><head><title>Note</title></head><body><p>hi</p></body></html>`

func TestInjectHead(t *testing.T) {
	t.Parallel()

	t.Run("description and meta tags", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.Site.Description = "A test vault"
		cfg.SEO.MetaTags = []config.MetaTag{
			{Name: "author", Content: "Jamie"},
			{Property: "og:type", Content: "website"},
		}

		out, err := NewInjector(cfg).InjectHead([]byte(testPage))
		require.NoError(t, err)
		html := string(out)
		assert.Contains(t, html, `<meta name="description" content="A test vault"/>`)
		assert.Contains(t, html, `<meta name="author" content="Jamie"/>`)
		assert.Contains(t, html, `<meta property="og:type" content="website"/>`)
	})

	t.Run("favicon and custom css", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.Site.Favicon = "favicon.png"
		cfg.Advanced.CustomCSS = "body { color: red; }"

		out, err := NewInjector(cfg).InjectHead([]byte(testPage))
		require.NoError(t, err)
		html := string(out)
		assert.Contains(t, html, `<link rel="icon" href="favicon.png"/>`)
		assert.Contains(t, html, "body { color: red; }")
	})

	t.Run("ga4 snippet", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.SEO.AnalyticsID = "G-ABCD1234"

		out, err := NewInjector(cfg).InjectHead([]byte(testPage))
		require.NoError(t, err)
		html := string(out)
		assert.Contains(t, html, "googletagmanager.com/gtag/js?id=G-ABCD1234")
		assert.Contains(t, html, "gtag('config', 'G-ABCD1234')")
	})

	t.Run("gtm snippet", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.SEO.AnalyticsID = "GTM-XYZ123"

		out, err := NewInjector(cfg).InjectHead([]byte(testPage))
		require.NoError(t, err)
		assert.Contains(t, string(out), "googletagmanager.com/gtm.js?id=")
	})

	t.Run("empty config leaves title intact", func(t *testing.T) {
		t.Parallel()
		out, err := NewInjector(config.Default()).InjectHead([]byte(testPage))
		require.NoError(t, err)
		html := string(out)
		assert.Contains(t, html, "<title>Note</title>")
		assert.NotContains(t, html, "googletagmanager")
	})
}
