// Package index tracks the files produced by export runs. A manifest of the
// previous run is loaded from the destination, diffed against the files the
// current run intends to produce, and persisted again at the end; the diff
// drives incremental cleanup of stale outputs.
package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	// StateDirName is the directory under the export destination holding
	// the persisted manifests.
	StateDirName = ".vaultlight"

	manifestFileName = "manifest.json"
)

// Entry records one produced file. Hash is preferred for change detection;
// size+mtime are the fallback for large binaries that are not re-hashed.
type Entry struct {
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mtime"`
	Hash    string    `json:"hash,omitempty"`
}

// Manifest is the persisted record of one export run, keyed by
// slash-separated path relative to the destination root.
type Manifest struct {
	GeneratedAt time.Time        `json:"generated_at"`
	RunID       string           `json:"run_id,omitempty"`
	Files       map[string]Entry `json:"files"`
}

// NewManifest returns an empty manifest stamped with the current time.
func NewManifest() *Manifest {
	return &Manifest{
		GeneratedAt: time.Now().UTC(),
		Files:       map[string]Entry{},
	}
}

// Add records a produced file under its slash-separated relative path.
func (m *Manifest) Add(relPath string, e Entry) {
	if m.Files == nil {
		m.Files = map[string]Entry{}
	}
	m.Files[filepath.ToSlash(relPath)] = e
}

// ManifestPath returns the manifest location for a destination directory.
func ManifestPath(destPath string) string {
	return filepath.Join(destPath, StateDirName, manifestFileName)
}

// Load reads the previous run's manifest from the destination. A missing or
// unparseable manifest means "no prior export": it only costs incremental
// cleanup, never correctness, so parse failures are logged and an empty
// manifest is returned.
func Load(destPath string, logger *slog.Logger) *Manifest {
	if logger == nil {
		logger = slog.Default()
	}

	path := ManifestPath(destPath)
	data, err := os.ReadFile(path)
	if err != nil {
		return NewManifest()
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		logger.Warn("Previous manifest is unreadable, treating as first export",
			"path", path,
			"error", err)
		return NewManifest()
	}
	if m.Files == nil {
		m.Files = map[string]Entry{}
	}
	return &m
}

// Persist writes the manifest under the destination's state directory. The
// write goes through a temp file and rename so a crashed run cannot leave a
// truncated manifest behind.
func (m *Manifest) Persist(destPath string) error {
	stateDir := filepath.Join(destPath, StateDirName)
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	path := ManifestPath(destPath)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace manifest: %w", err)
	}
	return nil
}
