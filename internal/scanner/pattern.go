package scanner

import (
	"path/filepath"
	"regexp"
	"strings"

	"apollo/internal/tags"
	"apollo/internal/textutil"
)

var placeholderPattern = regexp.MustCompile(`\{[a-z]+\}`)

// CanonicalPath expands pattern with t's values and joins the result to
// root. {albumartist} takes the artist value. ext is the file's extension
// without the dot. The second return is false when a placeholder the
// pattern uses has no value, in which case the file should stay put.
func CanonicalPath(root, pattern string, t tags.Tags, ext string) (string, bool) {
	artist := textutil.SanitizeFileName(t.Artist)
	values := map[string]string{
		"{artist}":      artist,
		"{albumartist}": artist,
		"{album}":       textutil.SanitizeFileName(t.Album),
		"{title}":       textutil.SanitizeFileName(t.Title),
		"{ext}":         strings.TrimPrefix(ext, "."),
	}

	complete := true
	expanded := placeholderPattern.ReplaceAllStringFunc(pattern, func(token string) string {
		value, ok := values[token]
		if !ok {
			return token
		}
		if value == "" {
			complete = false
		}
		return value
	})
	if !complete || strings.TrimSpace(expanded) == "" {
		return "", false
	}
	return filepath.Join(root, filepath.FromSlash(expanded)), true
}
