package catalog

import "strings"

// Track is one indexed audio file.
type Track struct {
	ID          int64
	Path        string
	Artist      string
	Album       string
	AlbumArtist string
	Title       string
	// Duration is in whole seconds; 0 means unknown.
	Duration int64
}

// Key returns the duplicate grouping key of the track.
func (t Track) Key() ArtistTitle {
	return ArtistTitle{Artist: t.Artist, Title: t.Title}
}

// ArtistTitle identifies a song independently of its file.
type ArtistTitle struct {
	Artist string
	Title  string
}

func (k ArtistTitle) String() string {
	return k.Artist + " - " + k.Title
}

// Playlist is one indexed playlist file.
type Playlist struct {
	ID   int64
	Name string
	Path string
}

// Summary aggregates catalog totals.
type Summary struct {
	Tracks        int64
	Artists       int64
	Albums        int64
	TotalDuration int64
}

// TrackFilter selects which tracks QueryTracks returns.
type TrackFilter struct {
	where string
	args  []any
}

// AllTracks matches every track.
func AllTracks() TrackFilter {
	return TrackFilter{}
}

// ByArtistTitle matches tracks whose stored artist and title equal the given values.
func ByArtistTitle(artist, title string) TrackFilter {
	return TrackFilter{where: "artist = ? AND title = ?", args: []any{artist, title}}
}

// WithUnknownDuration matches tracks whose duration was never measured.
func WithUnknownDuration() TrackFilter {
	return TrackFilter{where: "duration <= 0"}
}

func (f TrackFilter) clause() string {
	if strings.TrimSpace(f.where) == "" {
		return ""
	}
	return " WHERE " + f.where
}
