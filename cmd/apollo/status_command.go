package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apollo/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check library paths and the catalog lock",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)
			renderStatus(newPrinter(cmd.OutOrStdout()), results)
			if failed := preflight.Failed(results); failed > 0 {
				return fmt.Errorf("%d readiness check(s) failed", failed)
			}
			return nil
		},
	}
}

func renderStatus(p *printer, results []preflight.Result) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		state := "OK"
		if !r.Passed {
			state = "FAIL"
		}
		rows = append(rows, []string{r.Name, state, r.Detail})
	}
	p.block(renderTable(tableSpec{
		title:   "Readiness",
		headers: []string{"Check", "State", "Detail"},
		rows:    rows,
	}))
}
