package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/atlanticdynamic/vaultlight/internal/logging"
)

// MarkdownRenderer is the built-in Renderer: markdown notes become HTML
// pages through goldmark, everything else is copied through verbatim.
type MarkdownRenderer struct {
	logger *slog.Logger
	md     goldmark.Markdown
	tmpl   *template.Template
}

// MarkdownOption configures a MarkdownRenderer.
type MarkdownOption func(*MarkdownRenderer)

// WithLogger sets a custom logger for the renderer.
func WithLogger(logger *slog.Logger) MarkdownOption {
	return func(r *MarkdownRenderer) {
		r.logger = logger
	}
}

// NewMarkdownRenderer creates the default goldmark-backed renderer.
func NewMarkdownRenderer(opts ...MarkdownOption) *MarkdownRenderer {
	r := &MarkdownRenderer{
		logger: slog.Default().WithGroup("render.MarkdownRenderer"),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		tmpl: template.Must(template.New("page").Parse(pageTemplate)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render builds the output set for the job. The context is checked between
// files so a cancelled run stops promptly; a read or conversion failure on
// any single file fails the whole build, because a partially rendered site
// would silently drop notes.
func (r *MarkdownRenderer) Render(ctx context.Context, job Job) (*Output, error) {
	out := &Output{}
	used := make(map[string]bool, len(job.Files))

	for i, rel := range job.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src := filepath.Join(job.VaultPath, filepath.FromSlash(rel))
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", rel, err)
		}

		if !strings.EqualFold(path.Ext(rel), ".md") {
			out.Files = append(out.Files, File{
				Path: uniquePath(used, r.outputPath(job, rel)),
				Data: data,
			})
			logging.Progress(r.logger, "render", i+1, len(job.Files), rel)
			continue
		}

		htmlRel := strings.TrimSuffix(rel, path.Ext(rel)) + ".html"
		outPath := uniquePath(used, r.outputPath(job, htmlRel))
		page, err := r.renderPage(job, rel, outPath, data)
		if err != nil {
			return nil, err
		}
		out.Files = append(out.Files, page)
		out.Pages = append(out.Pages, Page{
			Path:   page.Path,
			Title:  pageTitle(rel, data),
			Source: rel,
		})
		logging.Progress(r.logger, "render", i+1, len(job.Files), rel)
	}

	r.logger.Debug("Render complete",
		"files", len(out.Files),
		"pages", len(out.Pages))
	return out, nil
}

func (r *MarkdownRenderer) outputPath(job Job, rel string) string {
	if job.Config.Advanced.SlugifyPaths {
		return SlugifyPath(rel)
	}
	return rel
}

// uniquePath claims p in used, appending a numeric suffix before the
// extension when an earlier file already produced the same output path.
func uniquePath(used map[string]bool, p string) string {
	if !used[p] {
		used[p] = true
		return p
	}
	ext := path.Ext(p)
	base := strings.TrimSuffix(p, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", base, n, ext)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}

func (r *MarkdownRenderer) renderPage(job Job, rel, outPath string, data []byte) (File, error) {
	var body bytes.Buffer
	if err := r.md.Convert(data, &body); err != nil {
		return File{}, fmt.Errorf("failed to convert %s: %w", rel, err)
	}

	var page bytes.Buffer
	err := r.tmpl.Execute(&page, pageData{
		Title:    pageTitle(rel, data),
		SiteName: job.Config.Site.Name,
		Features: job.Config.Features,
		Body:     template.HTML(body.String()),
	})
	if err != nil {
		return File{}, fmt.Errorf("failed to assemble page for %s: %w", rel, err)
	}

	return File{Path: outPath, Data: page.Bytes()}, nil
}

// pageTitle is the first top-level heading, falling back to the filename.
func pageTitle(rel string, data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}
