package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atlanticdynamic/vaultlight/internal/export/index"
	"github.com/atlanticdynamic/vaultlight/internal/export/render"
)

const siteIndexFileName = "site.json"

type sitePage struct {
	Path   string `json:"path"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// siteIndex is the page catalog persisted next to the manifest. Client-side
// features (search, navigation, graph) load it instead of crawling the
// exported tree.
type siteIndex struct {
	GeneratedAt time.Time  `json:"generated_at"`
	RunID       string     `json:"run_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url,omitempty"`
	Pages       []sitePage `json:"pages"`
}

func (r *Run) writeSiteIndex(out *render.Output) error {
	idx := siteIndex{
		GeneratedAt: time.Now().UTC(),
		RunID:       r.ID.String(),
		Name:        r.Config.Site.Name,
		Description: r.Config.Site.Description,
		URL:         r.Config.Site.URL,
		Pages:       make([]sitePage, 0, len(out.Pages)),
	}
	for _, p := range out.Pages {
		idx.Pages = append(idx.Pages, sitePage{Path: p.Path, Title: p.Title, Source: p.Source})
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode site index: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Join(r.DestPath, index.StateDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	target := filepath.Join(dir, siteIndexFileName)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write site index: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to replace site index: %w", err)
	}
	return nil
}
