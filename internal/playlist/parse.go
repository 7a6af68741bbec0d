package playlist

import (
	"path/filepath"
	"strings"
)

var playlistExtensions = map[string]struct{}{
	"m3u":  {},
	"m3u8": {},
}

// IsPlaylistFile reports whether path carries a playlist extension.
func IsPlaylistFile(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := playlistExtensions[ext]
	return ok
}

// Name returns the playlist display name: the file name without extension.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Reference is one track line of a playlist.
type Reference struct {
	// Line is the zero-based line number in the file.
	Line int
	// Raw is the line with surrounding whitespace removed.
	Raw string
	// Resolved is the absolute location Raw points at.
	Resolved string
}

// ParseReferences extracts the track lines of content. Blank and #-prefixed
// lines are skipped; relative lines are resolved against dir.
func ParseReferences(content, dir string) []Reference {
	var refs []Reference
	for n, line := range splitLines(content) {
		raw := strings.TrimSpace(trimEOL(line))
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		refs = append(refs, Reference{Line: n, Raw: raw, Resolved: resolve(dir, raw)})
	}
	return refs
}

func resolve(dir, ref string) string {
	ref = filepath.FromSlash(ref)
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(dir, ref)
}

// relativeForm is the comparison form of a reference: relative to dir when
// it lives under dir, cleaned absolute otherwise.
func relativeForm(dir, ref string) string {
	resolved := resolve(dir, ref)
	rel, err := filepath.Rel(dir, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return resolved
	}
	return rel
}

// splitLines splits content after each newline, keeping the terminators.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}
