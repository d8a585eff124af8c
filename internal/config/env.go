package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
)

// Environment variable names for the Docker/CI entry point. Each maps onto
// exactly one resolved field. Malformed values warn and keep the prior
// layer's value; they never abort startup.
const (
	EnvSiteName        = "OBSIDIAN_SITE_NAME"
	EnvSiteDescription = "OBSIDIAN_SITE_DESCRIPTION"
	EnvSiteURL         = "OBSIDIAN_SITE_URL"
	EnvFavicon         = "OBSIDIAN_FAVICON"

	EnvFeatureSearch      = "OBSIDIAN_FEATURE_SEARCH"
	EnvFeatureGraph       = "OBSIDIAN_FEATURE_GRAPH"
	EnvFeatureNavigation  = "OBSIDIAN_FEATURE_NAVIGATION"
	EnvFeatureThemeToggle = "OBSIDIAN_FEATURE_THEME_TOGGLE"
	EnvFeatureBacklinks   = "OBSIDIAN_FEATURE_BACKLINKS"
	EnvFeatureTags        = "OBSIDIAN_FEATURE_TAGS"
	EnvFeatureOutline     = "OBSIDIAN_FEATURE_OUTLINE"
	EnvFeatureSidebar     = "OBSIDIAN_FEATURE_SIDEBAR"

	EnvAnalyticsID = "OBSIDIAN_ANALYTICS_ID"
	EnvMetaTags    = "OBSIDIAN_META_TAGS"
	EnvSitemap     = "OBSIDIAN_SITEMAP"
	EnvRobots      = "OBSIDIAN_ROBOTS"

	EnvCustomCSS        = "OBSIDIAN_CUSTOM_CSS"
	EnvExcludePatterns  = "OBSIDIAN_EXCLUDE_PATTERNS"
	EnvOptimizeImages   = "OBSIDIAN_OPTIMIZE_IMAGES"
	EnvResponsiveImages = "OBSIDIAN_RESPONSIVE_IMAGES"
	EnvSlugifyPaths     = "OBSIDIAN_SLUGIFY_PATHS"
	EnvOfflineResources = "OBSIDIAN_OFFLINE_RESOURCES"
)

// ParseBool interprets the relaxed boolean syntax accepted from the
// environment: true/1/yes and false/0/no, case-insensitive.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	default:
		return false, false
	}
}

// FromEnv builds an Overlay from the process environment. Unset variables
// leave their fields nil. Unparseable booleans and malformed JSON are
// reported on the logger and skipped, so the prior layer's value survives.
func FromEnv(logger *slog.Logger) Overlay {
	if logger == nil {
		logger = slog.Default()
	}

	var o Overlay

	o.Site.Name = envString(EnvSiteName)
	o.Site.Description = envString(EnvSiteDescription)
	o.Site.URL = envString(EnvSiteURL)
	o.Site.Favicon = envString(EnvFavicon)

	o.Features.Search = envBool(EnvFeatureSearch, logger)
	o.Features.GraphView = envBool(EnvFeatureGraph, logger)
	o.Features.Navigation = envBool(EnvFeatureNavigation, logger)
	o.Features.ThemeToggle = envBool(EnvFeatureThemeToggle, logger)
	o.Features.Backlinks = envBool(EnvFeatureBacklinks, logger)
	o.Features.Tags = envBool(EnvFeatureTags, logger)
	o.Features.Outline = envBool(EnvFeatureOutline, logger)
	o.Features.Sidebar = envBool(EnvFeatureSidebar, logger)

	o.SEO.AnalyticsID = envString(EnvAnalyticsID)
	o.SEO.MetaTags = envMetaTags(EnvMetaTags, logger)
	o.SEO.GenerateSitemap = envBool(EnvSitemap, logger)
	o.SEO.GenerateRobots = envBool(EnvRobots, logger)

	o.Advanced.CustomCSS = envString(EnvCustomCSS)
	o.Advanced.ExcludePatterns = envList(EnvExcludePatterns)
	o.Advanced.OptimizeImages = envBool(EnvOptimizeImages, logger)
	o.Advanced.ResponsiveImages = envBool(EnvResponsiveImages, logger)
	o.Advanced.SlugifyPaths = envBool(EnvSlugifyPaths, logger)
	o.Advanced.OfflineResources = envBool(EnvOfflineResources, logger)

	return o
}

func envString(name string) *string {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	return &v
}

func envBool(name string, logger *slog.Logger) *bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	b, ok := ParseBool(v)
	if !ok {
		logger.Warn("Ignoring unparseable boolean environment variable",
			"name", name,
			"value", v)
		return nil
	}
	return &b
}

// envList splits a comma-separated value, dropping empty elements.
func envList(name string) []string {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// envMetaTags decodes a JSON array of meta tag objects.
func envMetaTags(name string, logger *slog.Logger) []MetaTag {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	var tags []MetaTag
	if err := json.Unmarshal([]byte(v), &tags); err != nil {
		logger.Warn("Ignoring malformed meta tags environment variable",
			"name", name,
			"error", err)
		return nil
	}
	return tags
}
