package export

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/atlanticdynamic/vaultlight/internal/export/index"
	"github.com/atlanticdynamic/vaultlight/internal/vault"
)

// DiscoverFiles walks the vault and returns the slash-separated relative
// paths of every exportable file, sorted. The Obsidian config directory,
// the export state directory and hidden files are never exportable; the
// exclude matchers filter the rest.
func DiscoverFiles(vaultPath string, excludes []glob.Glob) ([]string, error) {
	var files []string

	err := filepath.WalkDir(vaultPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == vaultPath {
			return nil
		}

		rel, err := filepath.Rel(vaultPath, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if hidden(d.Name()) || d.Name() == vault.ConfigDirName || d.Name() == index.StateDirName {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if excluded(rel, d.IsDir(), excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// excluded matches both the path itself and, for directories, everything
// beneath it, so a pattern like "drafts/**" prunes the whole subtree.
func excluded(rel string, isDir bool, excludes []glob.Glob) bool {
	for _, g := range excludes {
		if g.Match(rel) {
			return true
		}
		if isDir && g.Match(rel+"/") {
			return true
		}
	}
	return false
}
