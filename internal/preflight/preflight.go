package preflight

import (
	"context"
	"strings"

	"apollo/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every readiness check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Moves need write access to the library as well.
	musicAccess := ReadAccess
	if strings.TrimSpace(cfg.Files.FilePattern) != "" {
		musicAccess = ReadWriteAccess
	}
	results = append(results, CheckDirectoryAccess("Music directory", cfg.Files.MusicDirectory, musicAccess))

	if cfg.PlaylistRoot() != cfg.Files.MusicDirectory {
		results = append(results, CheckDirectoryAccess("Playlist directory", cfg.PlaylistRoot(), ReadWriteAccess))
	}

	results = append(results, CheckDatabaseDirectory(cfg.Files.DatabaseName))
	results = append(results, CheckCatalogLock(ctx, cfg.Files.DatabaseName))

	return results
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
