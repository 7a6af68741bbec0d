package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"apollo/internal/catalog"
	"apollo/internal/config"
	"apollo/internal/export"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog to a CSV, JSON or YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			return ctx.withSession(cmd, func(s *session) error {
				target := s.cfg.ExportPath(format)
				if strings.TrimSpace(outputFlag) != "" {
					if target, err = config.ExpandPath(outputFlag); err != nil {
						return err
					}
				}

				tracks, err := s.store.QueryTracks(cmd.Context(), catalog.AllTracks())
				if err != nil {
					return err
				}
				if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
					return fmt.Errorf("create export directory: %w", err)
				}
				file, err := os.Create(target)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				if err := export.Write(file, format, tracks); err != nil {
					_ = file.Close()
					return fmt.Errorf("write export: %w", err)
				}
				if err := file.Close(); err != nil {
					return fmt.Errorf("close export: %w", err)
				}

				newPrinter(cmd.OutOrStdout()).ok("Exported %d tracks to %s", len(tracks), target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "csv", "Export format: csv, json or yaml")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination file (defaults to tracks_export.<format> beside the database)")
	return cmd
}
