package main

import (
	"strings"

	"github.com/spf13/cobra"

	"apollo/internal/config"
	"apollo/internal/playlist"
)

func newPlaylistsCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "playlists",
		Short: "Repair broken references in playlist files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				dir := s.cfg.PlaylistRoot()
				if strings.TrimSpace(dirFlag) != "" {
					expanded, err := config.ExpandPath(dirFlag)
					if err != nil {
						return err
					}
					dir = expanded
				}

				res, err := newReconciler(ctx, cmd, s).Run(cmd.Context(), dir)
				if err != nil {
					return err
				}
				renderPlaylistResult(newPrinter(cmd.OutOrStdout()), res)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dirFlag, "dir", "", "Playlist directory (defaults to the configured one)")
	return cmd
}

func renderPlaylistResult(p *printer, res playlist.Result) {
	p.section("Playlists")
	p.field("Playlists checked", res.Playlists)
	p.field("Playlists added", res.Added)
	p.field("Playlists pruned", res.Pruned)
	p.field("Broken references", res.Broken)
	p.field("Auto-replaced", res.AutoReplaced)
	p.field("Replaced", res.Replaced)
	p.field("Removed", res.Removed)
	p.field("Skipped", res.Skipped)
	if res.Unresolved > 0 {
		p.warn("  %d reference(s) had no candidate", res.Unresolved)
	}
	if res.Broken == 0 {
		p.ok("All playlist references resolve.")
	}
}
