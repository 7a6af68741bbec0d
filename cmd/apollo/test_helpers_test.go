package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"apollo/internal/catalog"
	"apollo/internal/config"
	"apollo/internal/logging"
	"apollo/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, key := range []string{"APOLLO_MUSIC_DIRECTORY", "APOLLO_PLAYLIST_DIRECTORY", "APOLLO_DATABASE_NAME", "APOLLO_FILE_PATTERN", "APOLLO_AUTO_REPLACE_THRESHOLD", "APOLLO_LOG_LEVEL", "APOLLO_LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	configPath := filepath.Join(base, "apollo.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[files]\nmusic_directory = %q\nplaylist_directory = %q\ndatabase_name = %q\nfile_pattern = %q\n\n[logging]\nlevel = \"error\"\n",
		cfg.Files.MusicDirectory,
		cfg.Files.PlaylistDirectory,
		cfg.Files.DatabaseName,
		cfg.Files.FilePattern,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// seedCatalog inserts tracks and releases the catalog lock before the CLI runs.
func seedCatalog(t *testing.T, cfg *config.Config, tracks ...catalog.Track) {
	t.Helper()
	store, err := catalog.Open(context.Background(), cfg.Files.DatabaseName, logging.NewNop())
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	for _, tr := range tracks {
		testsupport.SeedTrack(t, store, tr)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("store.Close: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
