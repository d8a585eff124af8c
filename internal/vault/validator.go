// Package vault validates Obsidian-style vault directories and the paths
// the exporter is asked to touch. Validation is read-only: the vault is
// never mutated, and filesystem errors inside the tree walk degrade the
// warning list instead of aborting the pass.
package vault

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ConfigDirName is the hidden configuration directory whose presence is the
// authoritative signal that a directory is a vault.
const ConfigDirName = ".obsidian"

// Config filenames checked inside the hidden config directory. All are
// optional; a present-but-malformed file is an error.
var configFiles = []string{
	"app.json",
	"appearance.json",
	"core-plugins.json",
	"community-plugins.json",
}

// conflictingPlugins are community plugins known to interfere with headless
// export runs.
var conflictingPlugins = map[string]string{
	"obsidian-git":               "performs background git operations during export",
	"templater-obsidian":         "rewrites note content when files are opened",
	"obsidian-excalidraw-plugin": "requires an interactive canvas to render drawings",
}

// Content sanity thresholds. Exceeding any of them yields a warning only.
const (
	attachmentDirWarnFiles = 1000
	vaultWarnBytes         = 1 << 30 // 1 GiB
	maxNestingDepth        = 10
	largeFileWarnBytes     = 50 << 20 // 50 MiB
)

// Validator performs structural validation of a candidate vault.
type Validator struct {
	logger *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets a custom logger for the Validator instance.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// NewValidator creates a Validator with the given options.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		logger: slog.Default().WithGroup("vault.Validator"),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs every structural check against the vault root and returns a
// fresh Result. Checks append errors and warnings in a fixed order (root,
// config dir, config files, plugins, content); only a missing or non-directory
// root short-circuits the rest, because nothing below it is meaningful.
func (v *Validator) Validate(vaultPath string) *Result {
	res := &Result{}
	defer res.finish()

	info, err := os.Stat(vaultPath)
	if err != nil {
		res.addError(CodeVaultNotFound,
			fmt.Sprintf("vault directory does not exist: %s", vaultPath), vaultPath)
		return res
	}
	if !info.IsDir() {
		res.addError(CodeVaultNotDirectory,
			fmt.Sprintf("vault path is not a directory: %s", vaultPath), vaultPath)
		return res
	}

	v.checkConfigDir(vaultPath, res)
	v.checkPlugins(vaultPath, res)
	v.checkContent(vaultPath, res)

	return res
}

func (v *Validator) checkConfigDir(vaultPath string, res *Result) {
	configDir := filepath.Join(vaultPath, ConfigDirName)
	info, err := os.Stat(configDir)
	if err != nil || !info.IsDir() {
		res.addError(CodeObsidianConfigMissing,
			fmt.Sprintf("no %s directory found; this does not look like a vault", ConfigDirName),
			configDir)
		return
	}

	for _, name := range configFiles {
		path := filepath.Join(configDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			res.addWarning(CodeConfigFileMissing,
				fmt.Sprintf("optional config file %s is absent", name), path,
				fmt.Sprintf("open the vault in Obsidian once to generate %s", name))
			continue
		}
		if !json.Valid(data) {
			res.addError(CodeConfigFileMalformed,
				fmt.Sprintf("config file %s is not valid JSON", name), path)
		}
	}
}

func (v *Validator) checkPlugins(vaultPath string, res *Result) {
	configDir := filepath.Join(vaultPath, ConfigDirName)
	manifest := filepath.Join(configDir, "community-plugins.json")
	pluginsDir := filepath.Join(configDir, "plugins")

	if _, err := os.Stat(manifest); err == nil {
		if info, err := os.Stat(pluginsDir); err != nil || !info.IsDir() {
			res.addWarning(CodePluginsDirMissing,
				"community-plugins.json exists but the plugins directory is absent",
				pluginsDir,
				"reinstall the listed community plugins or remove community-plugins.json")
		}
	}

	entries, err := os.ReadDir(pluginsDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		reason, known := conflictingPlugins[entry.Name()]
		if !known {
			continue
		}
		res.addWarning(CodeConflictingPlugin,
			fmt.Sprintf("plugin %s %s", entry.Name(), reason),
			filepath.Join(pluginsDir, entry.Name()),
			fmt.Sprintf("disable %s before running a headless export", entry.Name()))
	}
}

// checkContent walks the tree once collecting counts and sizes. Filesystem
// errors inside the walk are swallowed per subtree: they produce an
// undercount, never an abort.
func (v *Validator) checkContent(vaultPath string, res *Result) {
	var (
		markdownCount int
		totalBytes    int64
		maxDepth      int
	)
	dirFileCounts := map[string]int{}

	err := filepath.WalkDir(vaultPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			v.logger.Debug("Skipping unreadable subtree", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(vaultPath, path)
		if relErr != nil || rel == "." {
			return nil
		}
		// The hidden config directory does not count as content.
		if d.IsDir() && d.Name() == ConfigDirName {
			return fs.SkipDir
		}

		depth := strings.Count(filepath.ToSlash(rel), "/") + 1
		if depth > maxDepth {
			maxDepth = depth
		}

		if d.IsDir() {
			return nil
		}

		dirFileCounts[filepath.Dir(path)]++

		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		totalBytes += info.Size()

		if strings.EqualFold(filepath.Ext(path), ".md") {
			markdownCount++
		}
		if info.Size() > largeFileWarnBytes {
			res.addWarning(CodeLargeFile,
				fmt.Sprintf("file is %d MiB", info.Size()>>20), path,
				"consider excluding it or hosting it outside the vault")
		}
		return nil
	})
	if err != nil {
		v.logger.Debug("Vault walk ended early", "error", err)
	}

	if markdownCount == 0 {
		res.addWarning(CodeNoMarkdownFiles,
			"vault contains no markdown files", vaultPath,
			"check that you selected the right directory")
	}
	for _, dir := range slices.Sorted(maps.Keys(dirFileCounts)) {
		if count := dirFileCounts[dir]; count > attachmentDirWarnFiles {
			res.addWarning(CodeLargeAttachmentDir,
				fmt.Sprintf("directory holds %d files", count), dir,
				"split large attachment directories to keep exports fast")
		}
	}
	if totalBytes > vaultWarnBytes {
		res.addWarning(CodeVaultTooLarge,
			fmt.Sprintf("vault totals %d MiB", totalBytes>>20), vaultPath,
			"large vaults export slowly; consider exclude patterns")
	}
	if maxDepth > maxNestingDepth {
		res.addWarning(CodeDeepNesting,
			fmt.Sprintf("directories nest %d levels deep", maxDepth), vaultPath,
			"deeply nested notes produce long output URLs")
	}
}
