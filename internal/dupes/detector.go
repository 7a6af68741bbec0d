package dupes

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"apollo/internal/catalog"
	"apollo/internal/faults"
	"apollo/internal/logging"
	"apollo/internal/prompt"
)

const skipOption = "Skip"

// Group is one song stored at several paths, in catalog order.
type Group struct {
	Key   catalog.ArtistTitle
	Paths []string
}

// QualityGroup is a group whose best copy outranks the others.
type QualityGroup struct {
	Key   catalog.ArtistTitle
	Files []RankedFile
}

// Report summarizes one detector pass.
type Report struct {
	Groups         []Group
	Quality        []QualityGroup
	Resolved       int
	Removed        int
	RemoveFailures int
}

// Detector groups duplicate tracks and optionally resolves them.
type Detector struct {
	Store   *catalog.Store
	Chooser prompt.Chooser
	Logger  *slog.Logger
	// Remove deletes a file from disk; os.Remove when nil.
	Remove func(path string) error
}

// Run lists duplicate groups. With fix set, each group is offered for
// resolution and the unchosen files are deleted.
func (d *Detector) Run(ctx context.Context, fix bool) (Report, error) {
	logger := logging.NewComponentLogger(d.Logger, "dupes")
	chooser := d.Chooser
	if chooser == nil {
		chooser = prompt.Default{}
	}
	remove := d.Remove
	if remove == nil {
		remove = os.Remove
	}

	var report Report
	err := d.Store.WithTx(ctx, func(tx *catalog.Tx) error {
		report = Report{}
		groups, err := loadGroups(ctx, tx)
		if err != nil {
			return err
		}

		for _, group := range groups {
			report.Groups = append(report.Groups, group)
			if ranked, ok := RankByQuality(group.Paths); ok {
				report.Quality = append(report.Quality, QualityGroup{Key: group.Key, Files: ranked})
			}
		}

		if !fix {
			return nil
		}
		for _, group := range groups {
			if err := resolveGroup(ctx, tx, chooser, remove, logger, group, &report); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	logger.Info("duplicate scan complete",
		logging.Int("groups", len(report.Groups)),
		logging.Int("quality_groups", len(report.Quality)),
		logging.Int("resolved", report.Resolved),
		logging.Int("removed", report.Removed),
	)
	return report, nil
}

func loadGroups(ctx context.Context, q catalog.Querier) ([]Group, error) {
	keys, err := q.DuplicateKeys(ctx)
	if err != nil {
		return nil, err
	}
	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		tracks, err := q.QueryTracks(ctx, catalog.ByArtistTitle(key.Artist, key.Title))
		if err != nil {
			return nil, err
		}
		paths := make([]string, 0, len(tracks))
		for _, t := range tracks {
			paths = append(paths, t.Path)
		}
		groups = append(groups, Group{Key: key, Paths: paths})
	}
	return groups, nil
}

func resolveGroup(ctx context.Context, tx *catalog.Tx, chooser prompt.Chooser, remove func(string) error, logger *slog.Logger, group Group, report *Report) error {
	if len(group.Paths) < 2 {
		return nil
	}
	options := append([]string{skipOption}, group.Paths...)
	choice, err := chooser.Choose(ctx, "Which file do you want to keep for '"+group.Key.String()+"'?", options)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		logger.Info("duplicate group left untouched",
			logging.Args(append(logging.DecisionAttrs("duplicate_resolution", "skipped", "no selection"),
				logging.String("song", group.Key.String()))...)...,
		)
		return nil
	}
	if choice <= 0 || choice >= len(options) {
		logger.Info("duplicate group left untouched",
			logging.Args(append(logging.DecisionAttrs("duplicate_resolution", "skipped", "operator skipped"),
				logging.String("song", group.Key.String()))...)...,
		)
		return nil
	}

	keep := options[choice]
	if _, err := tx.DeleteTracksByArtistTitle(ctx, group.Key.Artist, group.Key.Title, keep); err != nil {
		return err
	}
	report.Resolved++
	logger.Info("duplicate group resolved",
		logging.Args(append(logging.DecisionAttrs("duplicate_resolution", "kept", "operator choice"),
			logging.String("song", group.Key.String()),
			logging.String(logging.FieldPath, keep))...)...,
	)

	for _, path := range group.Paths {
		if path == keep {
			continue
		}
		if err := remove(path); err != nil {
			report.RemoveFailures++
			logging.WarnWithContext(logger, "duplicate removal failed", "filesystem_failure",
				logging.String(logging.FieldPath, path),
				logging.Error(faults.Wrap(faults.ErrFilesystem, "dupes", "remove", path, err)),
				logging.String(logging.FieldErrorHint, "delete the file manually or the next index re-adds it"),
				logging.String(logging.FieldImpact, "file left on disk without a catalog row"),
			)
			continue
		}
		report.Removed++
		logger.Info("removed duplicate", logging.String(logging.FieldPath, path))
	}
	return nil
}
