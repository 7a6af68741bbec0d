package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"apollo/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Files.MusicDirectory != filepath.Join(tempHome, "Music") {
		t.Fatalf("unexpected music directory: %q", cfg.Files.MusicDirectory)
	}
	wantDB := filepath.Join(tempHome, ".local", "share", "apollo", "library.db")
	if cfg.Files.DatabaseName != wantDB {
		t.Fatalf("unexpected database: got %q want %q", cfg.Files.DatabaseName, wantDB)
	}
	if cfg.Files.FilePattern != "" {
		t.Fatalf("expected no naming pattern by default, got %q", cfg.Files.FilePattern)
	}
	if cfg.Matching.AutoReplaceThreshold != 0.90 {
		t.Fatalf("unexpected threshold: %v", cfg.Matching.AutoReplaceThreshold)
	}
	if cfg.Matching.MaxCandidates != 5 {
		t.Fatalf("unexpected max candidates: %d", cfg.Matching.MaxCandidates)
	}
	if cfg.PlaylistRoot() != cfg.Files.MusicDirectory {
		t.Fatalf("expected playlist root to fall back to music directory, got %q", cfg.PlaylistRoot())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(tempHome, "apollo.toml")
	content := `
[files]
music_directory = "~/library"
playlist_directory = "~/playlists"
database_name = "~/db/catalog.db"
file_pattern = "{artist}/{album}/{title}.{ext}"

[matching]
auto_replace_threshold = 0.75
max_candidates = 3

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config at %q to be used, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Files.MusicDirectory != filepath.Join(tempHome, "library") {
		t.Fatalf("unexpected music directory: %q", cfg.Files.MusicDirectory)
	}
	if cfg.PlaylistRoot() != filepath.Join(tempHome, "playlists") {
		t.Fatalf("unexpected playlist root: %q", cfg.PlaylistRoot())
	}
	if cfg.Files.FilePattern != "{artist}/{album}/{title}.{ext}" {
		t.Fatalf("unexpected pattern: %q", cfg.Files.FilePattern)
	}
	if cfg.Matching.AutoReplaceThreshold != 0.75 || cfg.Matching.MaxCandidates != 3 {
		t.Fatalf("unexpected matching config: %+v", cfg.Matching)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging to be normalized, got %+v", cfg.Logging)
	}
	if got := cfg.ExportPath("yaml"); got != filepath.Join(tempHome, "db", "tracks_export.yaml") {
		t.Fatalf("unexpected export path: %q", got)
	}
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("APOLLO_MUSIC_DIRECTORY", filepath.Join(tempHome, "env-music"))
	t.Setenv("APOLLO_FILE_PATTERN", "{albumartist}/{title}.{ext}")
	t.Setenv("APOLLO_AUTO_REPLACE_THRESHOLD", "0.5")
	t.Setenv("APOLLO_LOG_LEVEL", "warn")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Files.MusicDirectory != filepath.Join(tempHome, "env-music") {
		t.Fatalf("expected env music directory, got %q", cfg.Files.MusicDirectory)
	}
	if cfg.Files.FilePattern != "{albumartist}/{title}.{ext}" {
		t.Fatalf("expected env pattern, got %q", cfg.Files.FilePattern)
	}
	if cfg.Matching.AutoReplaceThreshold != 0.5 {
		t.Fatalf("expected env threshold, got %v", cfg.Matching.AutoReplaceThreshold)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(tempHome)
	t.Setenv("APOLLO_DATABASE_NAME", "")

	envFile := "APOLLO_DATABASE_NAME=" + filepath.Join(tempHome, "dotenv.db") + "\n"
	if err := os.WriteFile(filepath.Join(tempHome, ".env"), []byte(envFile), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	os.Unsetenv("APOLLO_DATABASE_NAME")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Files.DatabaseName != filepath.Join(tempHome, "dotenv.db") {
		t.Fatalf("expected database from .env, got %q", cfg.Files.DatabaseName)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"threshold", func(c *config.Config) { c.Matching.AutoReplaceThreshold = 1.5 }, "auto_replace_threshold"},
		{"zero threshold", func(c *config.Config) { c.Matching.AutoReplaceThreshold = 0 }, "auto_replace_threshold"},
		{"candidates", func(c *config.Config) { c.Matching.MaxCandidates = 0 }, "max_candidates"},
		{"placeholder", func(c *config.Config) { c.Files.FilePattern = "{artist}/{year}/{title}.{ext}" }, "{year}"},
		{"format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in %q", tt.want, err.Error())
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	target := filepath.Join(tempHome, "nested", "config.toml")

	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	if decoded.Matching.MaxCandidates != 5 {
		t.Fatalf("unexpected sample max candidates: %d", decoded.Matching.MaxCandidates)
	}
	if _, _, _, err := config.Load(target); err != nil {
		t.Fatalf("Load(sample) returned error: %v", err)
	}
}
