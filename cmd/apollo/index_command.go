package main

import (
	"github.com/spf13/cobra"

	"apollo/internal/playlist"
	"apollo/internal/scanner"
	"apollo/internal/tags"
	"apollo/internal/textutil"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var noPlaylists bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Scan the music directory into the catalog, then repair playlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				sc := &scanner.Scanner{
					Store:    s.store,
					Tags:     tags.NewDefaultReader(),
					Logger:   s.logger,
					Progress: newScanProgress(cmd.ErrOrStderr()),
				}
				res, err := sc.Run(cmd.Context(), scanner.Options{
					Root:    s.cfg.Files.MusicDirectory,
					Pattern: s.cfg.Files.FilePattern,
					DryRun:  dryRun,
				})
				if err != nil {
					return err
				}

				p := newPrinter(cmd.OutOrStdout())
				renderScanResult(p, res, dryRun)

				if noPlaylists {
					return nil
				}
				rec := newReconciler(ctx, cmd, s)
				pres, err := rec.Run(cmd.Context(), s.cfg.PlaylistRoot())
				if err != nil {
					return err
				}
				renderPlaylistResult(p, pres)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report files the naming pattern would move without moving them")
	cmd.Flags().BoolVar(&noPlaylists, "no-playlists", false, "Skip playlist reconciliation after the scan")
	return cmd
}

func renderScanResult(p *printer, res scanner.Result, dryRun bool) {
	p.section(textutil.Ternary(dryRun, "Index (dry run)", "Index"))
	p.field("Files seen", res.Seen)
	p.field("Tracks added", res.Added)
	p.field("Tracks pruned", res.Pruned)
	if dryRun {
		p.field("Would move", res.WouldMove)
	} else {
		p.field("Moved", res.Moved)
	}
	if res.ExtractionFailures > 0 {
		p.warn("  %d file(s) indexed without metadata", res.ExtractionFailures)
	}
	if res.MoveFailures > 0 {
		p.warn("  %d file(s) could not be moved", res.MoveFailures)
	}
}

func newReconciler(ctx *commandContext, cmd *cobra.Command, s *session) *playlist.Reconciler {
	return &playlist.Reconciler{
		Store:         s.store,
		Chooser:       ctx.chooser(cmd),
		Logger:        s.logger,
		Threshold:     s.cfg.Matching.AutoReplaceThreshold,
		MaxCandidates: s.cfg.Matching.MaxCandidates,
	}
}
