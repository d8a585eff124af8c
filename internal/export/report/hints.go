package report

import "strings"

type hint struct {
	needles []string
	advice  string
}

// Ordered so more specific matches come first.
var hints = []hint{
	{
		needles: []string{"no such file or directory", "cannot find the file"},
		advice:  "A referenced file disappeared mid-run. Close the vault in other applications and re-run the export.",
	},
	{
		needles: []string{"permission denied", "access is denied"},
		advice:  "The process lacks permission on the vault or destination. Check ownership and mode of both directories.",
	},
	{
		needles: []string{"no space left on device"},
		advice:  "The destination filesystem is full. Free up space or export to a different destination.",
	},
	{
		needles: []string{"cannot allocate memory", "out of memory"},
		advice:  "The run exhausted memory. Exclude large attachment directories with exclude_patterns and retry.",
	},
	{
		needles: []string{"file name too long"},
		advice:  "A note path exceeds the filesystem limit. Enable slugify_paths or shorten the deepest folder names.",
	},
}

// Troubleshoot returns remediation advice for each known failure signature
// found in the report's errors. Unrecognized errors produce no hints.
func Troubleshoot(errs []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range errs {
		lower := strings.ToLower(e)
		for _, h := range hints {
			if seen[h.advice] {
				continue
			}
			for _, n := range h.needles {
				if strings.Contains(lower, n) {
					out = append(out, h.advice)
					seen[h.advice] = true
					break
				}
			}
		}
	}
	return out
}
