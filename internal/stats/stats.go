// Package stats summarizes the library and back-fills missing durations.
package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"apollo/internal/catalog"
	"apollo/internal/fileutil"
	"apollo/internal/logging"
	"apollo/internal/tags"
)

// Stats is a library summary.
type Stats struct {
	Tracks        int64
	Artists       int64
	Albums        int64
	TotalDuration int64
	SizeBytes     int64
	BackFilled    int
	Pruned        int
}

// Size renders SizeBytes for people.
func (s Stats) Size() string {
	if s.SizeBytes <= 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(s.SizeBytes))
}

// Duration renders TotalDuration with FormatDuration.
func (s Stats) Duration() string {
	return FormatDuration(float64(s.TotalDuration))
}

type unit struct {
	name    string
	seconds float64
}

var durationUnits = []unit{
	{"months", 2592000},
	{"weeks", 604800},
	{"days", 86400},
	{"hours", 3600},
	{"minutes", 60},
}

// FormatDuration expresses secs in the largest unit whose value exceeds one,
// with two decimals. A month is thirty days.
func FormatDuration(secs float64) string {
	for _, u := range durationUnits {
		if v := secs / u.seconds; v > 1 {
			return fmt.Sprintf("%.2f %s", v, u.name)
		}
	}
	return fmt.Sprintf("%.2f seconds", secs)
}

// Collector gathers library statistics.
type Collector struct {
	Store  *catalog.Store
	Prober tags.DurationProber
	Logger *slog.Logger
}

// Collect prunes tracks whose file is gone, measures tracks without a
// duration, stores the non-zero results, and summarizes the catalog and the
// size of musicDir.
func (c *Collector) Collect(ctx context.Context, musicDir string) (Stats, error) {
	logger := logging.NewComponentLogger(c.Logger, "stats")
	prober := c.Prober
	if prober == nil {
		prober = tags.Prober{}
	}

	var out Stats
	err := c.Store.WithTx(ctx, func(tx *catalog.Tx) error {
		out = Stats{}
		pruned, err := tx.PruneMissingTracks(ctx)
		if err != nil {
			return err
		}
		out.Pruned = len(pruned)
		for _, path := range pruned {
			logger.Info("track pruned", logging.String(logging.FieldPath, path))
		}

		pending, err := tx.QueryTracks(ctx, catalog.WithUnknownDuration())
		if err != nil {
			return err
		}
		for _, t := range pending {
			if err := ctx.Err(); err != nil {
				return err
			}
			seconds := prober.ProbeSeconds(t.Path)
			if seconds <= 0 {
				logger.Debug("duration unavailable", logging.String(logging.FieldPath, t.Path))
				continue
			}
			if err := tx.UpdateTrackDuration(ctx, t.Path, int64(seconds)); err != nil {
				return err
			}
			out.BackFilled++
		}

		summary, err := tx.Summary(ctx)
		if err != nil {
			return err
		}
		out.Tracks = summary.Tracks
		out.Artists = summary.Artists
		out.Albums = summary.Albums
		out.TotalDuration = summary.TotalDuration
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	size, err := fileutil.DirSize(musicDir)
	if err != nil {
		logging.WarnWithContext(logger, "library size unavailable", "filesystem_failure",
			logging.String(logging.FieldPath, musicDir),
			logging.Error(err),
			logging.String(logging.FieldImpact, "size reported as partial"),
		)
	}
	out.SizeBytes = size

	logger.Debug("statistics collected",
		logging.Int("back_filled", out.BackFilled),
		logging.Any("tracks", out.Tracks),
	)
	return out, nil
}
