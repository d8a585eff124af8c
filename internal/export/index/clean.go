package index

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CleanStats summarizes one cleanup pass.
type CleanStats struct {
	Removed     int
	Failed      int
	SweptDirs   int
	SkippedDirs int
}

// Clean removes the deleted paths from the destination, one file at a time.
// A failed deletion is logged and skipped, never fatal: leftover files cost
// disk space, not correctness. Afterwards empty directories are swept
// bottom-up, with sweep failures likewise non-fatal. The state directory is
// never touched.
func Clean(destPath string, deleted []string, logger *slog.Logger) CleanStats {
	if logger == nil {
		logger = slog.Default()
	}

	var stats CleanStats
	for _, rel := range deleted {
		if strings.HasPrefix(rel, StateDirName+"/") || rel == StateDirName {
			continue
		}
		path := filepath.Join(destPath, filepath.FromSlash(rel))
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				stats.Removed++
				continue
			}
			stats.Failed++
			logger.Warn("Failed to delete stale output file",
				"path", path,
				"error", err)
			continue
		}
		stats.Removed++
		logger.Debug("Deleted stale output file", "path", path)
	}

	stats.SweptDirs, stats.SkippedDirs = sweepEmptyDirs(destPath, logger)
	return stats
}

// sweepEmptyDirs removes empty directories under root, deepest first. The
// root itself and the state directory are kept.
func sweepEmptyDirs(root string, logger *slog.Logger) (swept, skipped int) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if d.Name() == StateDirName {
			return fs.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		logger.Debug("Directory sweep walk ended early", "error", err)
	}

	// Deepest paths first so parents empty out before they are visited.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			skipped++
			logger.Warn("Failed to remove empty directory", "path", dir, "error", err)
			continue
		}
		swept++
	}
	return swept, skipped
}
