package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathRules selects which constraints CheckPath enforces.
type PathRules struct {
	AllowEmpty        bool
	AllowAbsolute     bool
	AllowRelative     bool
	AllowDirectories  bool
	AllowFiles        bool
	RequireExists     bool
	RequireExtensions []string
	AllowTildeHome    bool
}

// PathResult is the outcome of a single path check.
type PathResult struct {
	Valid   bool
	IsEmpty bool
	Err     string
}

// CheckPath applies the rules to the path in a fixed order; the first
// failing rule wins and produces the error message. The result reflects the
// filesystem at call time, so callers acting later should re-check.
func CheckPath(path string, rules PathRules) PathResult {
	if path == "" {
		if rules.AllowEmpty {
			return PathResult{Valid: true, IsEmpty: true}
		}
		return PathResult{IsEmpty: true, Err: "path is empty"}
	}

	// Without AllowTildeHome the tilde is not expanded; the path goes
	// through the remaining rules as a literal relative path.
	if strings.HasPrefix(path, "~") && rules.AllowTildeHome {
		home, err := os.UserHomeDir()
		if err != nil {
			return PathResult{Err: fmt.Sprintf("cannot resolve home directory: %v", err)}
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if filepath.IsAbs(path) {
		if !rules.AllowAbsolute {
			return PathResult{Err: fmt.Sprintf("absolute path not allowed: %s", path)}
		}
	} else if !rules.AllowRelative {
		return PathResult{Err: fmt.Sprintf("relative path not allowed: %s", path)}
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		if rules.RequireExists {
			return PathResult{Err: fmt.Sprintf("path does not exist: %s", path)}
		}
		// Nothing more to check for a path that may not exist yet.
		return PathResult{Valid: true}
	}

	if info.IsDir() {
		if !rules.AllowDirectories {
			return PathResult{Err: fmt.Sprintf("path is a directory: %s", path)}
		}
		return PathResult{Valid: true}
	}

	if !rules.AllowFiles {
		return PathResult{Err: fmt.Sprintf("path is a file: %s", path)}
	}

	if len(rules.RequireExtensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		for _, allowed := range rules.RequireExtensions {
			if ext == strings.ToLower(allowed) {
				return PathResult{Valid: true}
			}
		}
		return PathResult{Err: fmt.Sprintf(
			"file extension %q not allowed (want one of %s)",
			ext, strings.Join(rules.RequireExtensions, ", "))}
	}

	return PathResult{Valid: true}
}
