package main

import (
	"github.com/spf13/cobra"

	"apollo/internal/catalog"
	"apollo/internal/textutil"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var showPaths bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List catalog tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				tracks, err := s.store.QueryTracks(cmd.Context(), catalog.AllTracks())
				if err != nil {
					return err
				}
				p := newPrinter(cmd.OutOrStdout())
				if len(tracks) == 0 {
					p.line("Catalog is empty; run `apollo index` first.")
					return nil
				}

				headers := []string{"Artist", "Album", "Title"}
				if showPaths {
					headers = append(headers, "Path")
				}
				rows := make([][]string, 0, len(tracks))
				for _, t := range tracks {
					row := []string{t.Artist, t.Album, t.Title}
					if showPaths {
						row = append(row, t.Path)
					}
					rows = append(rows, row)
				}
				// Paths stay untrimmed.
				p.block(renderTable(tableSpec{headers: headers, rows: rows, maxWidth: textutil.Ternary(showPaths, 0, 60)}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showPaths, "paths", false, "Include file paths")
	return cmd
}
