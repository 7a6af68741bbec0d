package catalog

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"os"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries holds the operations shared by Store and Tx.
type queries struct {
	db     dbtx
	logger *slog.Logger
}

func (q queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = q.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func (q queries) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := q.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, rows.Err()
}

// missingPaths returns the subset of paths that no longer exist on disk.
// Stat errors other than not-exist keep the path.
func missingPaths(paths []string) []string {
	var missing []string
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, path)
		}
	}
	return missing
}

// Querier is the operation set shared by Store and Tx.
type Querier interface {
	PruneMissingTracks(ctx context.Context) ([]string, error)
	UpsertTrack(ctx context.Context, t Track) (bool, error)
	UpdateTrackDuration(ctx context.Context, path string, seconds int64) error
	DeleteTrack(ctx context.Context, path string) error
	DeleteTracksByArtistTitle(ctx context.Context, artist, title, keepPath string) (int64, error)
	QueryTracks(ctx context.Context, filter TrackFilter) ([]Track, error)
	DuplicateKeys(ctx context.Context) ([]ArtistTitle, error)
	Summary(ctx context.Context) (Summary, error)
	PruneMissingPlaylists(ctx context.Context) ([]string, error)
	UpsertPlaylist(ctx context.Context, name, path string) (bool, error)
	QueryPlaylistPaths(ctx context.Context) ([]string, error)
}

var (
	_ Querier = (*Store)(nil)
	_ Querier = (*Tx)(nil)
)
