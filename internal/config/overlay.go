package config

// Overlay is one configuration layer. Every field is a pointer (or a slice
// replaced wholesale) so that "not set" is distinguishable from a zero
// value: only set fields override the layer below. Overlays come from the
// TOML settings file, the environment, or programmatic overrides.
type Overlay struct {
	Site     SiteOverlay     `toml:"site"`
	Features FeaturesOverlay `toml:"features"`
	SEO      SEOOverlay      `toml:"seo"`
	Advanced AdvancedOverlay `toml:"advanced"`
}

// SiteOverlay overrides site identity fields.
type SiteOverlay struct {
	Name        *string `toml:"name"`
	Description *string `toml:"description"`
	URL         *string `toml:"url"`
	Favicon     *string `toml:"favicon"`
}

// FeaturesOverlay overrides feature toggles.
type FeaturesOverlay struct {
	Search      *bool `toml:"search"`
	GraphView   *bool `toml:"graph_view"`
	Navigation  *bool `toml:"navigation"`
	ThemeToggle *bool `toml:"theme_toggle"`
	Backlinks   *bool `toml:"backlinks"`
	Tags        *bool `toml:"tags"`
	Outline     *bool `toml:"outline"`
	Sidebar     *bool `toml:"sidebar"`
}

// SEOOverlay overrides SEO settings. MetaTags replaces the whole list, it is
// never concatenated with the layer below.
type SEOOverlay struct {
	AnalyticsID     *string   `toml:"analytics_id"`
	MetaTags        []MetaTag `toml:"meta_tags"`
	GenerateSitemap *bool     `toml:"sitemap"`
	GenerateRobots  *bool     `toml:"robots"`
}

// AdvancedOverlay overrides the export tuning knobs. ExcludePatterns
// replaces the whole list.
type AdvancedOverlay struct {
	CustomCSS        *string  `toml:"custom_css"`
	ExcludePatterns  []string `toml:"exclude_patterns"`
	OptimizeImages   *bool    `toml:"optimize_images"`
	ResponsiveImages *bool    `toml:"responsive_images"`
	SlugifyPaths     *bool    `toml:"slugify_paths"`
	OfflineResources *bool    `toml:"offline_resources"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// applyTo returns a copy of cfg with every set field of the overlay applied.
func (o Overlay) applyTo(cfg Config) Config {
	setString(&cfg.Site.Name, o.Site.Name)
	setString(&cfg.Site.Description, o.Site.Description)
	setString(&cfg.Site.URL, o.Site.URL)
	setString(&cfg.Site.Favicon, o.Site.Favicon)

	setBool(&cfg.Features.Search, o.Features.Search)
	setBool(&cfg.Features.GraphView, o.Features.GraphView)
	setBool(&cfg.Features.Navigation, o.Features.Navigation)
	setBool(&cfg.Features.ThemeToggle, o.Features.ThemeToggle)
	setBool(&cfg.Features.Backlinks, o.Features.Backlinks)
	setBool(&cfg.Features.Tags, o.Features.Tags)
	setBool(&cfg.Features.Outline, o.Features.Outline)
	setBool(&cfg.Features.Sidebar, o.Features.Sidebar)

	setString(&cfg.SEO.AnalyticsID, o.SEO.AnalyticsID)
	if o.SEO.MetaTags != nil {
		cfg.SEO.MetaTags = append([]MetaTag(nil), o.SEO.MetaTags...)
	}
	setBool(&cfg.SEO.GenerateSitemap, o.SEO.GenerateSitemap)
	setBool(&cfg.SEO.GenerateRobots, o.SEO.GenerateRobots)

	setString(&cfg.Advanced.CustomCSS, o.Advanced.CustomCSS)
	if o.Advanced.ExcludePatterns != nil {
		cfg.Advanced.ExcludePatterns = append([]string(nil), o.Advanced.ExcludePatterns...)
	}
	setBool(&cfg.Advanced.OptimizeImages, o.Advanced.OptimizeImages)
	setBool(&cfg.Advanced.ResponsiveImages, o.Advanced.ResponsiveImages)
	setBool(&cfg.Advanced.SlugifyPaths, o.Advanced.SlugifyPaths)
	setBool(&cfg.Advanced.OfflineResources, o.Advanced.OfflineResources)

	return cfg
}
