package catalog

import (
	"context"

	"apollo/internal/logging"
)

// PruneMissingPlaylists deletes playlists whose file is gone and returns their paths.
func (q queries) PruneMissingPlaylists(ctx context.Context) ([]string, error) {
	paths, err := q.queryStrings(ctx, "SELECT path FROM playlists ORDER BY id")
	if err != nil {
		return nil, storageError("prune playlists", "list paths", err)
	}
	missing := missingPaths(paths)
	for _, path := range missing {
		if _, err := q.exec(ctx, "DELETE FROM playlists WHERE path = ?", path); err != nil {
			return nil, storageError("prune playlists", path, err)
		}
		q.logger.Info("removed missing playlist", logging.String(logging.FieldPlaylist, path))
	}
	return missing, nil
}

// UpsertPlaylist inserts a playlist unless its path is already indexed.
func (q queries) UpsertPlaylist(ctx context.Context, name, path string) (bool, error) {
	res, err := q.exec(ctx, "INSERT OR IGNORE INTO playlists (name, path) VALUES (?, ?)", name, path)
	if err != nil {
		return false, storageError("upsert playlist", path, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, storageError("upsert playlist", "rows affected", err)
	}
	return affected > 0, nil
}

// QueryPlaylistPaths returns every indexed playlist path in insertion order.
func (q queries) QueryPlaylistPaths(ctx context.Context) ([]string, error) {
	paths, err := q.queryStrings(ctx, "SELECT path FROM playlists ORDER BY id")
	if err != nil {
		return nil, storageError("query playlists", "", err)
	}
	return paths, nil
}
