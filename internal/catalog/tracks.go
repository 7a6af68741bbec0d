package catalog

import (
	"context"
	"fmt"

	"apollo/internal/logging"
)

const trackColumns = "id, path, artist, album, albumartist, title, duration"

// PruneMissingTracks deletes tracks whose file is gone and returns their paths.
func (q queries) PruneMissingTracks(ctx context.Context) ([]string, error) {
	paths, err := q.queryStrings(ctx, "SELECT path FROM tracks ORDER BY id")
	if err != nil {
		return nil, storageError("prune tracks", "list paths", err)
	}
	missing := missingPaths(paths)
	for _, path := range missing {
		if _, err := q.exec(ctx, "DELETE FROM tracks WHERE path = ?", path); err != nil {
			return nil, storageError("prune tracks", path, err)
		}
		q.logger.Info("removed missing track", logging.String(logging.FieldPath, path))
	}
	return missing, nil
}

// UpsertTrack inserts t unless a track with the same path exists. It reports
// whether a row was inserted; existing rows are never modified.
func (q queries) UpsertTrack(ctx context.Context, t Track) (bool, error) {
	res, err := q.exec(ctx,
		`INSERT OR IGNORE INTO tracks (path, artist, album, albumartist, title, duration)
         VALUES (?, ?, ?, ?, ?, ?)`,
		t.Path, t.Artist, t.Album, t.AlbumArtist, t.Title, t.Duration,
	)
	if err != nil {
		return false, storageError("upsert track", t.Path, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, storageError("upsert track", "rows affected", err)
	}
	return affected > 0, nil
}

// UpdateTrackDuration records the measured duration in seconds.
func (q queries) UpdateTrackDuration(ctx context.Context, path string, seconds int64) error {
	if _, err := q.exec(ctx, "UPDATE tracks SET duration = ? WHERE path = ?", seconds, path); err != nil {
		return storageError("update duration", path, err)
	}
	return nil
}

// DeleteTrack removes the track stored under path.
func (q queries) DeleteTrack(ctx context.Context, path string) error {
	if _, err := q.exec(ctx, "DELETE FROM tracks WHERE path = ?", path); err != nil {
		return storageError("delete track", path, err)
	}
	return nil
}

// DeleteTracksByArtistTitle removes every track of a song except keepPath.
func (q queries) DeleteTracksByArtistTitle(ctx context.Context, artist, title, keepPath string) (int64, error) {
	res, err := q.exec(ctx,
		"DELETE FROM tracks WHERE artist = ? AND title = ? AND path <> ?",
		artist, title, keepPath,
	)
	if err != nil {
		return 0, storageError("delete duplicates", fmt.Sprintf("%s - %s", artist, title), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageError("delete duplicates", "rows affected", err)
	}
	return n, nil
}

// QueryTracks returns the tracks matching filter in insertion order.
func (q queries) QueryTracks(ctx context.Context, filter TrackFilter) ([]Track, error) {
	rows, err := q.db.QueryContext(ensureContext(ctx),
		"SELECT "+trackColumns+" FROM tracks"+filter.clause()+" ORDER BY id",
		filter.args...,
	)
	if err != nil {
		return nil, storageError("query tracks", "", err)
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var t Track
		if err := rows.Scan(&t.ID, &t.Path, &t.Artist, &t.Album, &t.AlbumArtist, &t.Title, &t.Duration); err != nil {
			return nil, storageError("query tracks", "scan", err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("query tracks", "iterate", err)
	}
	return tracks, nil
}

// DuplicateKeys lists songs stored more than once, ignoring tracks with an
// empty artist or title.
func (q queries) DuplicateKeys(ctx context.Context) ([]ArtistTitle, error) {
	rows, err := q.db.QueryContext(ensureContext(ctx),
		`SELECT artist, title FROM tracks
         WHERE artist <> '' AND title <> ''
         GROUP BY artist, title
         HAVING COUNT(*) > 1
         ORDER BY artist, title`,
	)
	if err != nil {
		return nil, storageError("duplicate keys", "", err)
	}
	defer rows.Close()

	var keys []ArtistTitle
	for rows.Next() {
		var k ArtistTitle
		if err := rows.Scan(&k.Artist, &k.Title); err != nil {
			return nil, storageError("duplicate keys", "scan", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("duplicate keys", "iterate", err)
	}
	return keys, nil
}

// Summary aggregates library totals.
func (q queries) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	err := q.db.QueryRowContext(ensureContext(ctx),
		`SELECT COUNT(*),
                COUNT(DISTINCT NULLIF(artist, '')),
                COUNT(DISTINCT NULLIF(album, '')),
                COALESCE(SUM(CASE WHEN duration > 0 THEN duration ELSE 0 END), 0)
         FROM tracks`,
	).Scan(&s.Tracks, &s.Artists, &s.Albums, &s.TotalDuration)
	if err != nil {
		return Summary{}, storageError("summary", "", err)
	}
	return s, nil
}
