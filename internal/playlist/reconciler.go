package playlist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"apollo/internal/catalog"
	"apollo/internal/faults"
	"apollo/internal/logging"
	"apollo/internal/prompt"
	"apollo/internal/textutil"
)

const (
	// DefaultThreshold is the score at or above which a candidate replaces a
	// broken reference without asking.
	DefaultThreshold = 0.90
	// DefaultMaxCandidates bounds the options offered per broken reference.
	DefaultMaxCandidates = 5

	removeOption = "Remove"
	skipOption   = "Skip"
)

// Result counts what a pass did.
type Result struct {
	Playlists    int
	Added        int
	Pruned       int
	Broken       int
	AutoReplaced int
	Replaced     int
	Removed      int
	Skipped      int
	Unresolved   int
}

// Reconciler indexes playlists and repairs their broken references.
type Reconciler struct {
	Store         *catalog.Store
	Chooser       prompt.Chooser
	Logger        *slog.Logger
	Threshold     float64
	MaxCandidates int
	// Scorer overrides textutil.Similarity.
	Scorer Scorer
}

// Run indexes and reconciles the playlists under dir. Playlists recorded
// elsewhere are pruned when missing but never rewritten. The pass runs in one
// transaction.
func (r *Reconciler) Run(ctx context.Context, dir string) (Result, error) {
	logger := logging.NewComponentLogger(r.Logger, "playlist")
	chooser := r.Chooser
	if chooser == nil {
		chooser = prompt.Default{}
	}
	threshold := r.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	maxCandidates := r.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}

	dir = filepath.Clean(dir)
	var result Result
	err := r.Store.WithTx(ctx, func(tx *catalog.Tx) error {
		result = Result{}
		pruned, err := tx.PruneMissingPlaylists(ctx)
		if err != nil {
			return err
		}
		result.Pruned = len(pruned)

		walked := collectPlaylists(dir, logger)
		for _, path := range walked {
			inserted, err := tx.UpsertPlaylist(ctx, Name(path), path)
			if err != nil {
				return err
			}
			if inserted {
				result.Added++
				logger.Info("playlist indexed", logging.String(logging.FieldPlaylist, path))
			}
		}

		index, err := NewIndex(ctx, tx, r.Scorer)
		if err != nil {
			return err
		}

		p := pass{
			chooser:       chooser,
			logger:        logger,
			index:         index,
			threshold:     threshold,
			maxCandidates: maxCandidates,
			result:        &result,
		}
		for _, path := range walked {
			if err := ctx.Err(); err != nil {
				return err
			}
			result.Playlists++
			if err := p.reconcile(ctx, path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logger.Info("playlist reconciliation complete",
		logging.Int("playlists", result.Playlists),
		logging.Int("broken", result.Broken),
		logging.Int("auto_replaced", result.AutoReplaced),
		logging.Int("replaced", result.Replaced),
		logging.Int("removed", result.Removed),
		logging.Int("skipped", result.Skipped),
		logging.Int("unresolved", result.Unresolved),
	)
	return result, nil
}

type pass struct {
	chooser       prompt.Chooser
	logger        *slog.Logger
	index         *Index
	threshold     float64
	maxCandidates int
	result        *Result
}

func (p *pass) reconcile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.WarnWithContext(p.logger, "playlist unreadable", "filesystem_failure",
			logging.String(logging.FieldPlaylist, path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "playlist skipped"),
		)
		return nil
	}

	for _, ref := range ParseReferences(string(data), filepath.Dir(path)) {
		if _, err := os.Stat(ref.Resolved); err == nil || !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		p.result.Broken++
		if err := p.repair(ctx, path, ref); err != nil {
			return err
		}
	}
	return nil
}

func (p *pass) repair(ctx context.Context, path string, ref Reference) error {
	fileName := filepath.Base(filepath.FromSlash(ref.Raw))
	logger := p.logger.With(
		logging.String(logging.FieldPlaylist, path),
		logging.String("reference", ref.Raw),
	)

	candidates := p.index.Rank(textutil.SongName(fileName), p.maxCandidates)
	if len(candidates) == 0 {
		p.result.Unresolved++
		logging.WarnWithContext(logger, "no replacement candidates", "reference_unresolved",
			logging.Error(faults.Wrap(faults.ErrUnresolved, "playlist", "match", fileName, nil)),
			logging.String(logging.FieldErrorHint, "index the library or fix the line by hand"),
			logging.String(logging.FieldImpact, "line left unchanged"),
		)
		return nil
	}

	best := candidates[0]
	if best.Score >= p.threshold {
		replaced, err := p.rewrite(logger, path, ref, best.Path)
		if err != nil {
			return err
		}
		if replaced {
			p.result.AutoReplaced++
			logger.Info("reference replaced automatically",
				logging.Args(append(logging.DecisionAttrs("reference_repair", "auto_replaced", "score at or above threshold"),
					logging.String("replacement", best.Path),
					logging.Float64("score", best.Score))...)...,
			)
		}
		return nil
	}

	options := make([]string, 0, len(candidates)+2)
	for _, c := range candidates {
		options = append(options, fmt.Sprintf("(%.3f) %s", c.Score, c.Path))
	}
	options = append(options, removeOption, skipOption)

	choice, err := p.chooser.Choose(ctx, fmt.Sprintf("Select a replacement for '%s':", fileName), options)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		p.skip(logger, "no selection")
		return nil
	}

	switch {
	case choice >= 0 && choice < len(candidates):
		replaced, err := p.rewrite(logger, path, ref, candidates[choice].Path)
		if err != nil {
			return err
		}
		if replaced {
			p.result.Replaced++
			logger.Info("reference replaced",
				logging.Args(append(logging.DecisionAttrs("reference_repair", "replaced", "operator choice"),
					logging.String("replacement", candidates[choice].Path))...)...,
			)
		}
	case choice == len(candidates):
		removed, err := RemoveLine(path, ref.Resolved)
		if err != nil {
			return p.filesystemWarning(logger, err)
		}
		if !removed {
			p.noMatch(logger)
			return nil
		}
		p.result.Removed++
		logger.Info("reference removed",
			logging.Args(logging.DecisionAttrs("reference_repair", "removed", "operator choice")...)...,
		)
	default:
		p.skip(logger, "operator skipped")
	}
	return nil
}

func (p *pass) rewrite(logger *slog.Logger, path string, ref Reference, replacement string) (bool, error) {
	replaced, err := RewriteLine(path, ref.Resolved, replacement)
	if err != nil {
		return false, p.filesystemWarning(logger, err)
	}
	if !replaced {
		p.noMatch(logger)
	}
	return replaced, nil
}

func (p *pass) skip(logger *slog.Logger, reason string) {
	p.result.Skipped++
	logger.Info("reference left unchanged",
		logging.Args(logging.DecisionAttrs("reference_repair", "skipped", reason)...)...,
	)
}

func (p *pass) noMatch(logger *slog.Logger) {
	logging.WarnWithContext(logger, "reference line not found for rewrite", "reference_unresolved",
		logging.String(logging.FieldImpact, "playlist unchanged"),
	)
}

// filesystemWarning logs a failed playlist write; the pass continues.
func (p *pass) filesystemWarning(logger *slog.Logger, err error) error {
	logging.WarnWithContext(logger, "playlist update failed", "filesystem_failure",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check permissions on the playlist file"),
		logging.String(logging.FieldImpact, "line left unchanged"),
	)
	return nil
}

// collectPlaylists walks dir for playlist files in lexical order.
func collectPlaylists(dir string, logger *slog.Logger) []string {
	var files []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.WarnWithContext(logger, "walk failed", "filesystem_failure",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "subtree skipped"),
			)
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsPlaylistFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files
}
