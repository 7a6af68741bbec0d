package tags

import (
	"go.senan.xyz/taglib"
)

// TaglibReader reads tags through the TagLib WebAssembly build.
type TaglibReader struct{}

func (TaglibReader) ReadTags(path string) (Tags, error) {
	values, err := taglib.ReadTags(path)
	if err != nil {
		return Tags{}, err
	}
	return Tags{
		Artist:      firstValue(values[taglib.Artist]),
		Album:       firstValue(values[taglib.Album]),
		AlbumArtist: firstValue(values[taglib.AlbumArtist]),
		Title:       firstValue(values[taglib.Title]),
	}, nil
}
