// Package render defines the page-building collaborator consumed by the
// export orchestrator, and a default markdown implementation. The
// orchestrator treats the renderer as a black box that either returns a
// populated output set, fails, or reports cancellation via the context.
package render

import (
	"context"

	"github.com/atlanticdynamic/vaultlight/internal/config"
)

// Job describes one build request: which vault files to turn into site
// output, under which resolved configuration.
type Job struct {
	// VaultPath is the vault root on disk.
	VaultPath string
	// Files are vault-relative slash-separated paths selected for export.
	Files []string
	// Config is the resolved configuration for this run.
	Config config.Config
}

// File is one produced output file, addressed relative to the destination.
type File struct {
	Path string
	Data []byte
}

// Page is the metadata of one rendered HTML page, used for the site
// manifest and the sitemap.
type Page struct {
	Path   string
	Title  string
	Source string
}

// Output is the result of a successful build.
type Output struct {
	Files []File
	Pages []Page
}

// Renderer builds site output from vault files. Implementations must honor
// context cancellation and return ctx.Err() promptly when the caller gives
// up; the orchestrator reports that as a neutral cancelled outcome rather
// than an error.
type Renderer interface {
	Render(ctx context.Context, job Job) (*Output, error)
}
