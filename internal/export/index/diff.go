package index

import (
	"path/filepath"
	"sort"
	"strings"
)

// protectedExtensions are never deleted during cleanup. Fonts are shared
// across exports sourced from different note subsets, so a run that did not
// reference one must not remove it.
var protectedExtensions = map[string]struct{}{
	".woff":  {},
	".woff2": {},
	".ttf":   {},
	".otf":   {},
	".eot":   {},
}

// Changes partitions the current file set against the previous manifest.
// New, Updated and Unchanged are pairwise disjoint and together equal the
// current set; Deleted is previous minus current, minus protected paths,
// which land in SkippedProtected instead.
type Changes struct {
	New              []string
	Updated          []string
	Unchanged        []string
	Deleted          []string
	SkippedProtected []string
}

// Total returns the size of the current file set.
func (c Changes) Total() int {
	return len(c.New) + len(c.Updated) + len(c.Unchanged)
}

// IsProtected reports whether a path's extension is in the protected set.
func IsProtected(relPath string) bool {
	_, ok := protectedExtensions[strings.ToLower(filepath.Ext(relPath))]
	return ok
}

// Diff compares the previous manifest with the current run's intended
// output set. A file counts as updated when its content hash differs; when
// either side lacks a hash, recorded size and modification time decide.
func Diff(previous, current *Manifest) Changes {
	var c Changes

	for path, cur := range current.Files {
		prev, existed := previous.Files[path]
		switch {
		case !existed:
			c.New = append(c.New, path)
		case entryChanged(prev, cur):
			c.Updated = append(c.Updated, path)
		default:
			c.Unchanged = append(c.Unchanged, path)
		}
	}

	for path := range previous.Files {
		if _, stillWanted := current.Files[path]; stillWanted {
			continue
		}
		if IsProtected(path) {
			c.SkippedProtected = append(c.SkippedProtected, path)
			continue
		}
		c.Deleted = append(c.Deleted, path)
	}

	sort.Strings(c.New)
	sort.Strings(c.Updated)
	sort.Strings(c.Unchanged)
	sort.Strings(c.Deleted)
	sort.Strings(c.SkippedProtected)
	return c
}

func entryChanged(prev, cur Entry) bool {
	if prev.Hash != "" && cur.Hash != "" {
		return prev.Hash != cur.Hash
	}
	return prev.Size != cur.Size || !prev.ModTime.Equal(cur.ModTime)
}
