package render

import (
	"html/template"

	"github.com/atlanticdynamic/vaultlight/internal/config"
)

type pageData struct {
	Title    string
	SiteName string
	Features config.Features
	Body     template.HTML
}

// pageTemplate is the minimal page shell. Head metadata (meta tags,
// analytics, custom CSS, favicon) is injected afterwards by the seo package
// so the shell stays renderer-agnostic.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - {{.SiteName}}</title>
</head>
<body>
{{- if .Features.Navigation}}
<nav class="site-nav" data-site="{{.SiteName}}"></nav>
{{- end}}
<div class="layout{{if .Features.Sidebar}} with-sidebar{{end}}">
{{- if .Features.Sidebar}}
<aside class="sidebar">
{{- if .Features.Search}}<div class="search"></div>{{end}}
{{- if .Features.GraphView}}<div class="graph-view"></div>{{end}}
</aside>
{{- end}}
<main class="note-content">
{{.Body}}</main>
{{- if .Features.Outline}}
<aside class="outline"></aside>
{{- end}}
</div>
{{- if .Features.Backlinks}}
<section class="backlinks"></section>
{{- end}}
</body>
</html>
`
