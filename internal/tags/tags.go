package tags

import (
	"path/filepath"
	"strings"
)

// Tags holds the metadata fields the catalog stores.
type Tags struct {
	Artist      string
	Album       string
	AlbumArtist string
	Title       string
}

// IsEmpty reports whether every field is blank.
func (t Tags) IsEmpty() bool {
	return strings.TrimSpace(t.Artist) == "" &&
		strings.TrimSpace(t.Album) == "" &&
		strings.TrimSpace(t.AlbumArtist) == "" &&
		strings.TrimSpace(t.Title) == ""
}

// Reader extracts tags from one audio file.
type Reader interface {
	ReadTags(path string) (Tags, error)
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func(path string) (Tags, error)

func (f ReaderFunc) ReadTags(path string) (Tags, error) {
	return f(path)
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func firstValue(values []string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
