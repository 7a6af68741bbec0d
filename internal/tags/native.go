package tags

import (
	"fmt"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

const vorbisAlbumArtist = "ALBUMARTIST"

// NativeReader dispatches on extension to a pure-Go reader: ID3v2 for mp3
// and Vorbis comments for flac.
type NativeReader struct{}

func (NativeReader) ReadTags(path string) (Tags, error) {
	switch extension(path) {
	case "mp3":
		return readID3v2(path)
	case "flac":
		return readVorbisComment(path)
	default:
		return Tags{}, fmt.Errorf("no native reader for %q", path)
	}
}

func readID3v2(path string) (Tags, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Tags{}, fmt.Errorf("open id3v2: %w", err)
	}
	defer tag.Close()

	return Tags{
		Artist:      tag.Artist(),
		Album:       tag.Album(),
		AlbumArtist: tag.GetTextFrame(tag.CommonID("Band")).Text,
		Title:       tag.Title(),
	}, nil
}

func readVorbisComment(path string) (Tags, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return Tags{}, fmt.Errorf("parse flac: %w", err)
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			continue
		}
		return Tags{
			Artist:      vorbisField(cmts, flacvorbis.FIELD_ARTIST),
			Album:       vorbisField(cmts, flacvorbis.FIELD_ALBUM),
			AlbumArtist: vorbisField(cmts, vorbisAlbumArtist),
			Title:       vorbisField(cmts, flacvorbis.FIELD_TITLE),
		}, nil
	}
	return Tags{}, fmt.Errorf("no vorbis comment block in %q", path)
}

func vorbisField(cmts *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := cmts.Get(field)
	if err != nil {
		return ""
	}
	return firstValue(values)
}
