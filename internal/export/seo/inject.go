// Package seo decorates rendered pages with head metadata and produces the
// crawler artifacts (sitemap.xml, robots.txt) for the exported site.
package seo

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/atlanticdynamic/vaultlight/internal/config"
)

// Injector rewrites the <head> of rendered pages according to the resolved
// configuration: site description, custom meta tags, favicon, custom CSS and
// the analytics snippet.
type Injector struct {
	cfg config.Config
}

// NewInjector creates an Injector for the given configuration.
func NewInjector(cfg config.Config) *Injector {
	return &Injector{cfg: cfg}
}

// InjectHead parses the page, appends the configured head elements and
// re-serializes it. The input is returned unchanged on pages without a
// <head> element.
func (i *Injector) InjectHead(page []byte) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	head := findElement(doc, atom.Head)
	if head == nil {
		return page, nil
	}

	for _, n := range i.headNodes() {
		head.AppendChild(n)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to serialize page: %w", err)
	}
	return buf.Bytes(), nil
}

func (i *Injector) headNodes() []*html.Node {
	var nodes []*html.Node

	if desc := i.cfg.Site.Description; desc != "" {
		nodes = append(nodes, meta("name", "description", desc))
	}

	for _, tag := range i.cfg.SEO.MetaTags {
		if tag.Property != "" {
			nodes = append(nodes, meta("property", tag.Property, tag.Content))
			continue
		}
		nodes = append(nodes, meta("name", tag.Name, tag.Content))
	}

	if fav := i.cfg.Site.Favicon; fav != "" {
		nodes = append(nodes, element(atom.Link,
			attr("rel", "icon"),
			attr("href", fav)))
	}

	if css := i.cfg.Advanced.CustomCSS; css != "" {
		style := element(atom.Style)
		style.AppendChild(&html.Node{Type: html.TextNode, Data: css})
		nodes = append(nodes, style)
	}

	nodes = append(nodes, i.analyticsNodes()...)
	return nodes
}

// analyticsNodes builds the vendor-appropriate tracking snippet. The ID has
// already passed validation, so the prefix switch is exhaustive in practice.
func (i *Injector) analyticsNodes() []*html.Node {
	id := i.cfg.SEO.AnalyticsID
	switch {
	case id == "":
		return nil
	case strings.HasPrefix(id, "GTM-"):
		return []*html.Node{inlineScript(fmt.Sprintf(gtmSnippet, id))}
	default:
		loader := element(atom.Script,
			attr("async", ""),
			attr("src", "https://www.googletagmanager.com/gtag/js?id="+id))
		return []*html.Node{loader, inlineScript(fmt.Sprintf(gtagSnippet, id))}
	}
}

const gtagSnippet = `
window.dataLayer = window.dataLayer || [];
function gtag(){dataLayer.push(arguments);}
gtag('js', new Date());
gtag('config', '%s');
`

const gtmSnippet = `
(function(w,d,s,l,i){w[l]=w[l]||[];w[l].push({'gtm.start':
new Date().getTime(),event:'gtm.js'});var f=d.getElementsByTagName(s)[0],
j=d.createElement(s),dl=l!='dataLayer'?'&l='+l:'';j.async=true;j.src=
'https://www.googletagmanager.com/gtm.js?id='+i+dl;f.parentNode.insertBefore(j,f);
})(window,document,'script','dataLayer','%s');
`

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func meta(idKey, idVal, content string) *html.Node {
	return element(atom.Meta, attr(idKey, idVal), attr("content", content))
}

func inlineScript(body string) *html.Node {
	s := element(atom.Script)
	s.AppendChild(&html.Node{Type: html.TextNode, Data: body})
	return s
}
