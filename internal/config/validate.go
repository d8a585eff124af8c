package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/gobwas/glob"

	"github.com/atlanticdynamic/vaultlight/internal/config/errz"
)

// Recognized analytics vendor ID formats: Google Analytics 4, legacy
// Universal Analytics, and Google Tag Manager containers.
var analyticsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^G-[A-Z0-9]{4,14}$`),
	regexp.MustCompile(`^UA-\d{4,10}-\d{1,4}$`),
	regexp.MustCompile(`^GTM-[A-Z0-9]{4,10}$`),
}

// Validate performs comprehensive validation of the resolved configuration.
// It is a pure function of the config value: no I/O, never panics. All
// violations are collected and returned joined, so callers can show the
// whole list at once and decide whether to abort.
func (c Config) Validate() error {
	errs := []error{}

	if c.Site.Name == "" {
		errs = append(errs, fmt.Errorf("%w: site name", errz.ErrMissingRequiredField))
	}
	if c.Site.Description == "" {
		errs = append(errs, fmt.Errorf("%w: site description", errz.ErrMissingRequiredField))
	}

	switch {
	case c.Site.URL == "":
		errs = append(errs, fmt.Errorf("%w: site URL", errz.ErrMissingRequiredField))
	default:
		u, err := url.Parse(c.Site.URL)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %w", errz.ErrInvalidSiteURL, c.Site.URL, err))
		} else if !u.IsAbs() || u.Host == "" {
			errs = append(errs, fmt.Errorf(
				"%w: %q is not an absolute URL", errz.ErrInvalidSiteURL, c.Site.URL))
		}
	}

	if id := c.SEO.AnalyticsID; id != "" && !matchesAnalyticsVendor(id) {
		errs = append(errs, fmt.Errorf(
			"%w: %q does not match any known vendor format (G-, UA-, GTM-)",
			errz.ErrInvalidAnalyticsID, id))
	}

	for i, tag := range c.SEO.MetaTags {
		if tag.Name == "" && tag.Property == "" {
			errs = append(errs, fmt.Errorf(
				"%w: meta tag %d has neither name nor property", errz.ErrInvalidMetaTag, i))
		}
		if tag.Content == "" {
			errs = append(errs, fmt.Errorf(
				"%w: meta tag %d has empty content", errz.ErrInvalidMetaTag, i))
		}
	}

	for _, pattern := range c.Advanced.ExcludePatterns {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf(
				"%w: %q: %w", errz.ErrInvalidPattern, pattern, err))
		}
	}

	return errors.Join(errs...)
}

func matchesAnalyticsVendor(id string) bool {
	for _, p := range analyticsPatterns {
		if p.MatchString(id) {
			return true
		}
	}
	return false
}

// ExcludeMatchers compiles the exclude patterns. Call Validate first;
// patterns that fail to compile here are skipped.
func (c Config) ExcludeMatchers() []glob.Glob {
	matchers := make([]glob.Glob, 0, len(c.Advanced.ExcludePatterns))
	for _, pattern := range c.Advanced.ExcludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			continue
		}
		matchers = append(matchers, g)
	}
	return matchers
}
