package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"apollo/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The music directory exists; the database lives beside it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Files.MusicDirectory = filepath.Join(base, "music")
	cfgVal.Files.DatabaseName = filepath.Join(base, "data", "library.db")
	cfgVal.Logging.Level = "debug"

	if err := os.MkdirAll(cfgVal.Files.MusicDirectory, 0o755); err != nil {
		t.Fatalf("mkdir music dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPattern sets the canonical file naming pattern.
func WithPattern(pattern string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Files.FilePattern = pattern
	}
}

// WithPlaylistDirectory points playlist reconciliation at a separate
// directory under the test root.
func WithPlaylistDirectory(name string) ConfigOption {
	return func(b *configBuilder) {
		dir := filepath.Join(b.baseDir, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			b.t.Fatalf("mkdir playlist dir: %v", err)
		}
		b.cfg.Files.PlaylistDirectory = dir
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Files.MusicDirectory)
}
