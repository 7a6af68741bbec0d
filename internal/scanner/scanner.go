package scanner

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"apollo/internal/catalog"
	"apollo/internal/faults"
	"apollo/internal/fileutil"
	"apollo/internal/logging"
	"apollo/internal/tags"
	"apollo/internal/textutil"
)

var audioExtensions = map[string]struct{}{
	"mp3":  {},
	"flac": {},
	"wav":  {},
}

// IsAudioFile reports whether path carries a scanned audio extension.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := audioExtensions[ext]
	return ok
}

// Progress receives per-file scan updates.
type Progress interface {
	Begin(total int)
	Step(path string)
	End()
}

type nopProgress struct{}

func (nopProgress) Begin(int)   {}
func (nopProgress) Step(string) {}
func (nopProgress) End()        {}

// Options configure one scan pass.
type Options struct {
	Root    string
	Pattern string
	DryRun  bool
}

// Result counts what a pass did.
type Result struct {
	Seen               int
	Added              int
	Moved              int
	WouldMove          int
	Pruned             int
	ExtractionFailures int
	MoveFailures       int
}

// Scanner refreshes the catalog from the filesystem.
type Scanner struct {
	Store    *catalog.Store
	Tags     tags.Reader
	Logger   *slog.Logger
	Progress Progress
}

// Run executes one pass. Catalog failures roll the pass back and are returned.
func (s *Scanner) Run(ctx context.Context, opts Options) (Result, error) {
	logger := logging.NewComponentLogger(s.Logger, "scanner")
	progress := s.Progress
	if progress == nil {
		progress = nopProgress{}
	}
	reader := s.Tags
	if reader == nil {
		reader = tags.NewDefaultReader()
	}

	root := filepath.Clean(opts.Root)
	info, err := os.Stat(root)
	if err != nil {
		return Result{}, faults.Wrap(faults.ErrFilesystem, "scanner", "stat root", root, err)
	}
	if !info.IsDir() {
		return Result{}, faults.Wrap(faults.ErrFilesystem, "scanner", "stat root", root+" is not a directory", nil)
	}

	var result Result
	err = s.Store.WithTx(ctx, func(tx *catalog.Tx) error {
		result = Result{}
		pruned, err := tx.PruneMissingTracks(ctx)
		if err != nil {
			return err
		}
		result.Pruned = len(pruned)

		files := collectAudioFiles(root, logger)
		progress.Begin(len(files))
		defer progress.End()

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.indexFile(ctx, tx, logger, reader, root, opts, path, &result); err != nil {
				return err
			}
			progress.Step(path)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logger.Info("scan complete",
		logging.Int("seen", result.Seen),
		logging.Int("added", result.Added),
		logging.Int("moved", result.Moved),
		logging.Int("would_move", result.WouldMove),
		logging.Int("pruned", result.Pruned),
		logging.Bool("dry_run", opts.DryRun),
	)
	return result, nil
}

func (s *Scanner) indexFile(ctx context.Context, tx *catalog.Tx, logger *slog.Logger, reader tags.Reader, root string, opts Options, path string, result *Result) error {
	result.Seen++

	t, err := reader.ReadTags(path)
	if err != nil {
		result.ExtractionFailures++
		logging.WarnWithContext(logger, "tag extraction failed", "extraction_failure",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "indexed without metadata"),
		)
		t = tags.Tags{}
	}
	t = tags.Tags{
		Artist:      textutil.NormalizeTag(t.Artist),
		Album:       textutil.NormalizeTag(t.Album),
		AlbumArtist: textutil.NormalizeTag(t.AlbumArtist),
		Title:       textutil.NormalizeTag(t.Title),
	}

	if opts.Pattern != "" {
		if path, err = s.relocate(ctx, tx, logger, root, opts, path, t, result); err != nil {
			return err
		}
	}

	inserted, err := tx.UpsertTrack(ctx, catalog.Track{
		Path:        path,
		Artist:      t.Artist,
		Album:       t.Album,
		AlbumArtist: t.AlbumArtist,
		Title:       t.Title,
	})
	if err != nil {
		return err
	}
	if inserted {
		result.Added++
		logger.Debug("track indexed", logging.String(logging.FieldPath, path))
	}
	return nil
}

// relocate moves path to its canonical location and returns the path the
// track should be indexed under.
func (s *Scanner) relocate(ctx context.Context, tx *catalog.Tx, logger *slog.Logger, root string, opts Options, path string, t tags.Tags, result *Result) (string, error) {
	dest, ok := CanonicalPath(root, opts.Pattern, t, strings.TrimPrefix(filepath.Ext(path), "."))
	if !ok {
		logger.Debug("pattern incomplete; file left in place", logging.String(logging.FieldPath, path))
		return path, nil
	}
	if dest == path {
		return path, nil
	}
	if opts.DryRun {
		result.WouldMove++
		logger.Info("would move",
			logging.String(logging.FieldPath, path),
			logging.String("destination", dest),
		)
		return path, nil
	}

	if err := fileutil.MoveFile(path, dest); err != nil {
		result.MoveFailures++
		hint := "check permissions on the destination directory"
		if errors.Is(err, fileutil.ErrDestinationExists) {
			hint = "another file already occupies the canonical path; resolve with dupes"
		}
		logging.WarnWithContext(logger, "move failed", "filesystem_failure",
			logging.String(logging.FieldPath, path),
			logging.String("destination", dest),
			logging.Error(faults.Wrap(faults.ErrFilesystem, "scanner", "move", path, err)),
			logging.String(logging.FieldErrorHint, hint),
			logging.String(logging.FieldImpact, "file indexed at its current path"),
		)
		return path, nil
	}

	result.Moved++
	logger.Info("moved file",
		logging.String(logging.FieldPath, path),
		logging.String("destination", dest),
	)
	// Drop any row recorded under the old location.
	if err := tx.DeleteTrack(ctx, path); err != nil {
		return "", err
	}
	return dest, nil
}

// collectAudioFiles walks root in lexical order. Unreadable subtrees are
// logged and skipped.
func collectAudioFiles(root string, logger *slog.Logger) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.WarnWithContext(logger, "walk failed", "filesystem_failure",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "subtree skipped"),
			)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if IsAudioFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files
}
