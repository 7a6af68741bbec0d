package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apollo/internal/dupes"
)

func newDupesCommand(ctx *commandContext) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "dupes",
		Short: "Find songs stored more than once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				d := &dupes.Detector{
					Store:   s.store,
					Chooser: ctx.chooser(cmd),
					Logger:  s.logger,
				}
				report, err := d.Run(cmd.Context(), fix)
				if err != nil {
					return err
				}
				renderDupesReport(newPrinter(cmd.OutOrStdout()), report, fix)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Choose which copy to keep and delete the others")
	return cmd
}

func renderDupesReport(p *printer, report dupes.Report, fix bool) {
	p.section("Duplicates")
	if len(report.Groups) == 0 {
		p.ok("No duplicate tracks found.")
	}
	for _, g := range report.Groups {
		p.line("%s (%d times)", g.Key, len(g.Paths))
		for _, path := range g.Paths {
			p.line("  %s", path)
		}
	}

	p.section("Lower quality duplicates")
	if len(report.Quality) == 0 {
		p.ok("No lower quality duplicates found.")
	}
	for _, q := range report.Quality {
		rows := make([][]string, 0, len(q.Files))
		for _, f := range q.Files {
			rows = append(rows, []string{f.Label, fmt.Sprint(f.Rank), f.Path})
		}
		p.block(renderTable(tableSpec{
			title:   q.Key.String(),
			headers: []string{"Format", "Rank", "Path"},
			rows:    rows,
			aligns:  []columnAlignment{alignLeft, alignRight, alignLeft},
		}))
	}

	if fix {
		p.section("Resolution")
		p.field("Groups resolved", report.Resolved)
		p.field("Files removed", report.Removed)
		if report.RemoveFailures > 0 {
			p.warn("  %d file(s) could not be removed", report.RemoveFailures)
		}
	}
}
