package seo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Output file names for the crawler artifacts, relative to the export root.
const (
	SitemapFileName = "sitemap.xml"
	RobotsFileName  = "robots.txt"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// Sitemap builds sitemap.xml for the given page paths, rooted at siteURL.
// Paths are emitted sorted so the output is stable across runs.
func Sitemap(siteURL string, pagePaths []string, generatedAt time.Time) ([]byte, error) {
	base := strings.TrimRight(siteURL, "/")
	lastMod := generatedAt.UTC().Format("2006-01-02")

	sorted := append([]string(nil), pagePaths...)
	sort.Strings(sorted)

	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range sorted {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     base + "/" + strings.TrimLeft(p, "/"),
			LastMod: lastMod,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Robots builds a permissive robots.txt pointing crawlers at the sitemap.
func Robots(siteURL string) []byte {
	base := strings.TrimRight(siteURL, "/")
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	fmt.Fprintf(&b, "Sitemap: %s/%s\n", base, SitemapFileName)
	return []byte(b.String())
}
