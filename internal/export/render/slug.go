package render

import (
	"path"
	"strings"
	"unicode"
)

// SlugifyPath converts a vault-relative slash path into a URL-safe
// equivalent: each segment is lowercased, whitespace and underscores become
// hyphens, and anything that is not a letter, digit, hyphen or dot is
// dropped. The extension is preserved.
func SlugifyPath(relPath string) string {
	segments := strings.Split(path.Clean(relPath), "/")
	for i, seg := range segments {
		ext := path.Ext(seg)
		base := strings.TrimSuffix(seg, ext)
		slug := slugifySegment(base)
		if slug == "" {
			slug = "untitled"
		}
		segments[i] = slug + strings.ToLower(ext)
	}
	return strings.Join(segments, "/")
}

func slugifySegment(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
