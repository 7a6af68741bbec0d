// Package export writes the catalog's tracks in interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"apollo/internal/catalog"
)

// Formats lists the supported export formats.
var Formats = []string{"csv", "json", "yaml"}

// Record is the exported view of one track.
type Record struct {
	Artist      string `json:"artist" yaml:"artist"`
	Album       string `json:"album" yaml:"album"`
	AlbumArtist string `json:"album_artist,omitempty" yaml:"album_artist,omitempty"`
	Title       string `json:"title" yaml:"title"`
	Path        string `json:"path" yaml:"path"`
	Duration    int64  `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
}

// ParseFormat normalizes a format name and rejects unknown ones.
func ParseFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return "csv", nil
	}
	if format == "yml" {
		return "yaml", nil
	}
	for _, f := range Formats {
		if f == format {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// Write encodes tracks to w. CSV carries the Artist, Album and Title columns;
// JSON and YAML carry every field.
func Write(w io.Writer, format string, tracks []catalog.Track) error {
	format, err := ParseFormat(format)
	if err != nil {
		return err
	}
	switch format {
	case "csv":
		return writeCSV(w, tracks)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records(tracks))
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records(tracks)); err != nil {
			return err
		}
		return enc.Close()
	}
}

func writeCSV(w io.Writer, tracks []catalog.Track) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Artist", "Album", "Title"}); err != nil {
		return err
	}
	for _, t := range tracks {
		if err := cw.Write([]string{t.Artist, t.Album, t.Title}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func records(tracks []catalog.Track) []Record {
	out := make([]Record, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, Record{
			Artist:      t.Artist,
			Album:       t.Album,
			AlbumArtist: t.AlbumArtist,
			Title:       t.Title,
			Path:        t.Path,
			Duration:    t.Duration,
		})
	}
	return out
}
