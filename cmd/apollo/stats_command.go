package main

import (
	"github.com/spf13/cobra"

	"apollo/internal/stats"
	"apollo/internal/tags"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				c := &stats.Collector{Store: s.store, Prober: tags.Prober{}, Logger: s.logger}
				st, err := c.Collect(cmd.Context(), s.cfg.Files.MusicDirectory)
				if err != nil {
					return err
				}
				renderStats(newPrinter(cmd.OutOrStdout()), st)
				return nil
			})
		},
	}
}

func renderStats(p *printer, st stats.Stats) {
	p.block(renderTable(tableSpec{
		title:   "Library",
		headers: []string{"Metric", "Value"},
		rows: [][]string{
			{"Total tracks", formatCount(st.Tracks)},
			{"Total artists", formatCount(st.Artists)},
			{"Total albums", formatCount(st.Albums)},
			{"Total size", st.Size()},
			{"Total time", st.Duration()},
		},
		aligns: []columnAlignment{alignLeft, alignRight},
	}))
	if st.Pruned > 0 {
		p.line("Pruned %d missing track(s).", st.Pruned)
	}
	if st.BackFilled > 0 {
		p.line("Measured %d track duration(s).", st.BackFilled)
	}
}
