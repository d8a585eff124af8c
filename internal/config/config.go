// Package config builds and validates the resolved configuration for one
// export run. A Config is assembled by layering overlays over built-in
// defaults (defaults -> settings file -> environment -> programmatic
// overrides, later layers win) and is never mutated once a run starts.
package config

// MetaTag is one custom <meta> element injected into every exported page.
// Either Name or Property identifies the tag; Content carries its value.
type MetaTag struct {
	Name     string `json:"name"               toml:"name"`
	Content  string `json:"content"            toml:"content"`
	Property string `json:"property,omitempty" toml:"property,omitempty"`
}

// Site holds the identity of the exported website.
type Site struct {
	Name        string
	Description string
	URL         string
	Favicon     string
}

// Features holds the per-feature toggles for the exported site.
type Features struct {
	Search      bool
	GraphView   bool
	Navigation  bool
	ThemeToggle bool
	Backlinks   bool
	Tags        bool
	Outline     bool
	Sidebar     bool
}

// SEO holds search-engine and analytics related settings.
type SEO struct {
	AnalyticsID     string
	MetaTags        []MetaTag
	GenerateSitemap bool
	GenerateRobots  bool
}

// Advanced holds the export tuning knobs.
type Advanced struct {
	CustomCSS        string
	ExcludePatterns  []string
	OptimizeImages   bool
	ResponsiveImages bool
	SlugifyPaths     bool
	OfflineResources bool
}

// Config is the fully resolved configuration driving one export run.
type Config struct {
	Site     Site
	Features Features
	SEO      SEO
	Advanced Advanced
}

// Resolve layers the given overlays over the built-in defaults, in order.
// Later overlays win. The result is a new value; no overlay is mutated.
func Resolve(overlays ...Overlay) Config {
	cfg := Default()
	for _, o := range overlays {
		cfg = o.applyTo(cfg)
	}
	return cfg
}
