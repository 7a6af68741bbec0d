package playlist

import (
	"os"
	"path/filepath"
	"strings"

	"apollo/internal/faults"
)

// RewriteLine replaces the first line of the playlist at path that refers to
// target. The replacement is written relative to the playlist directory when
// it lives under it. It reports whether a line was replaced.
func RewriteLine(path, target, replacement string) (bool, error) {
	dir := filepath.Dir(path)
	return editFirstMatch(path, target, func(ending string) string {
		return filepath.ToSlash(relativeForm(dir, replacement)) + ending
	})
}

// RemoveLine deletes the first line of the playlist at path that refers to
// target. It reports whether a line was removed.
func RemoveLine(path, target string) (bool, error) {
	return editFirstMatch(path, target, func(string) string {
		return ""
	})
}

func editFirstMatch(path, target string, edit func(ending string) string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, faults.Wrap(faults.ErrFilesystem, "playlist", "stat", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, faults.Wrap(faults.ErrFilesystem, "playlist", "read", path, err)
	}

	dir := filepath.Dir(path)
	want := relativeForm(dir, target)
	lines := splitLines(string(data))
	for i, line := range lines {
		body := trimEOL(line)
		raw := strings.TrimSpace(body)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		if relativeForm(dir, raw) != want {
			continue
		}
		lines[i] = edit(line[len(body):])
		if err := os.WriteFile(path, []byte(strings.Join(lines, "")), info.Mode().Perm()); err != nil {
			return false, faults.Wrap(faults.ErrFilesystem, "playlist", "write", path, err)
		}
		return true, nil
	}
	return false, nil
}
