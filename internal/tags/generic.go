package tags

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// GenericReader reads ID3, MP4, FLAC and Ogg tags with dhowden/tag.
type GenericReader struct{}

func (GenericReader) ReadTags(path string) (Tags, error) {
	file, err := os.Open(path)
	if err != nil {
		return Tags{}, err
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return Tags{}, fmt.Errorf("read tags: %w", err)
	}
	return Tags{
		Artist:      metadata.Artist(),
		Album:       metadata.Album(),
		AlbumArtist: metadata.AlbumArtist(),
		Title:       metadata.Title(),
	}, nil
}
