package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atlanticdynamic/vaultlight/internal/export/index"
	"github.com/atlanticdynamic/vaultlight/internal/export/render"
	"github.com/atlanticdynamic/vaultlight/internal/export/report"
	"github.com/atlanticdynamic/vaultlight/internal/export/seo"
	"github.com/atlanticdynamic/vaultlight/internal/logging"
	"github.com/atlanticdynamic/vaultlight/internal/vault"
)

var destRules = vault.PathRules{
	AllowAbsolute:    true,
	AllowRelative:    true,
	AllowDirectories: true,
}

// validate runs every pre-flight check and returns the discovered file set.
// Vault warnings are carried into the report; only errors stop the run.
func (r *Run) validate(rep *report.Report) ([]string, error) {
	if res := vault.CheckPath(r.DestPath, destRules); !res.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDestination, res.Err)
	}
	if inside, err := pathInside(r.VaultPath, r.DestPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDestination, err)
	} else if inside {
		return nil, fmt.Errorf("%w: destination is inside the vault", ErrInvalidDestination)
	}

	if err := r.Config.Validate(); err != nil {
		return nil, err
	}

	res := r.validator.Validate(r.VaultPath)
	for _, w := range res.Warnings {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s: %s", w.Code, w.Message))
	}
	if !res.Valid {
		msgs := make([]string, 0, len(res.Errors))
		for _, p := range res.Errors {
			msgs = append(msgs, p.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrVaultInvalid, strings.Join(msgs, "; "))
	}

	files, err := DiscoverFiles(r.VaultPath, r.Config.ExcludeMatchers())
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoExportableFiles
	}

	r.logger.Info("Validation passed",
		"files", len(files),
		"warnings", len(res.Warnings))
	return files, nil
}

// build renders the file set and decorates the result: head metadata on
// every page, then the crawler artifacts when the site URL is known.
func (r *Run) build(ctx context.Context, files []string) (*render.Output, error) {
	out, err := r.renderer.Render(ctx, render.Job{
		VaultPath: r.VaultPath,
		Files:     files,
		Config:    r.Config,
	})
	if err != nil {
		return nil, err
	}

	injector := seo.NewInjector(r.Config)
	pagePaths := make(map[string]bool, len(out.Pages))
	for _, p := range out.Pages {
		pagePaths[p.Path] = true
	}
	for i := range out.Files {
		if !pagePaths[out.Files[i].Path] {
			continue
		}
		decorated, err := injector.InjectHead(out.Files[i].Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decorate %s: %w", out.Files[i].Path, err)
		}
		out.Files[i].Data = decorated
	}

	if r.Config.SEO.GenerateSitemap && r.Config.Site.URL != "" {
		paths := make([]string, 0, len(out.Pages))
		for _, p := range out.Pages {
			paths = append(paths, p.Path)
		}
		sitemap, err := seo.Sitemap(r.Config.Site.URL, paths, r.CreatedAt)
		if err != nil {
			return nil, err
		}
		out.Files = append(out.Files, render.File{Path: seo.SitemapFileName, Data: sitemap})
	}
	if r.Config.SEO.GenerateRobots && r.Config.Site.URL != "" {
		out.Files = append(out.Files, render.File{
			Path: seo.RobotsFileName,
			Data: seo.Robots(r.Config.Site.URL),
		})
	}

	r.logger.Info("Build finished", "files", len(out.Files), "pages", len(out.Pages))
	return out, nil
}

// write puts changed files on disk, cleans orphans, and persists the run
// manifests. Unchanged files are left alone.
func (r *Run) write(out *render.Output, current *index.Manifest, changes index.Changes) error {
	if err := os.MkdirAll(r.DestPath, 0o755); err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	byPath := make(map[string][]byte, len(out.Files))
	for _, f := range out.Files {
		byPath[f.Path] = f.Data
	}

	pending := append(append([]string(nil), changes.New...), changes.Updated...)
	for i, rel := range pending {
		full := filepath.Join(r.DestPath, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(full, byPath[rel], 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
		logging.Progress(r.logger, "write", i+1, len(pending), rel)
	}

	if r.cleanOrphans && len(changes.Deleted) > 0 {
		stats := index.Clean(r.DestPath, changes.Deleted, r.logger)
		r.logger.Info("Cleaned orphaned outputs",
			"removed", stats.Removed,
			"failed", stats.Failed,
			"sweptDirs", stats.SweptDirs)
	}

	if err := r.writeSiteIndex(out); err != nil {
		return err
	}
	if err := current.Persist(r.DestPath); err != nil {
		return err
	}
	return nil
}

// manifestFor builds the manifest describing the output set about to be
// written. Hashing happens here, over the in-memory bytes, so the diff never
// needs to reread the destination.
func manifestFor(out *render.Output, runID string) *index.Manifest {
	m := index.NewManifest()
	m.RunID = runID
	for _, f := range out.Files {
		m.Add(f.Path, index.Entry{
			Size:    int64(len(f.Data)),
			ModTime: m.GeneratedAt,
			Hash:    index.HashBytes(f.Data),
		})
	}
	return m
}

// pathInside reports whether candidate is root or lies beneath it.
func pathInside(root, candidate string) (bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, err
	}
	absCand, err := filepath.Abs(candidate)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absRoot, absCand)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}
