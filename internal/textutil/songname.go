package textutil

import (
	"path/filepath"
	"strings"
)

// Separators tried, in order, when splitting "<artist> - <title>" file names.
// The second is the full-width hyphen-minus some rippers emit.
var songNameSeparators = []string{" - ", " － "}

// SongName derives a comparison key from a playlist reference's file name.
// The extension is dropped and the segment after the first separator is
// returned; names without a separator are returned whole, extension included.
func SongName(fileName string) string {
	fileName = filepath.Base(strings.TrimSpace(fileName))
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if stem == "" {
		stem = fileName
	}
	for _, sep := range songNameSeparators {
		parts := strings.Split(stem, sep)
		if len(parts) > 1 {
			return parts[1]
		}
	}
	return fileName
}
