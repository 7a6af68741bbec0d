package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// envPrefix namespaces every environment override.
const envPrefix = "APOLLO_"

// loadDotEnv seeds the process environment from ./.env when present.
// Variables already set in the environment win over the file.
func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat .env: %w", err)
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	overrideString(&c.Files.MusicDirectory, "MUSIC_DIRECTORY")
	overrideString(&c.Files.PlaylistDirectory, "PLAYLIST_DIRECTORY")
	overrideString(&c.Files.DatabaseName, "DATABASE_NAME")
	overrideString(&c.Files.FilePattern, "FILE_PATTERN")
	overrideString(&c.Logging.Level, "LOG_LEVEL")
	overrideString(&c.Logging.Format, "LOG_FORMAT")
	if value, ok := lookup("AUTO_REPLACE_THRESHOLD"); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			c.Matching.AutoReplaceThreshold = parsed
		}
	}
}

func overrideString(target *string, key string) {
	if value, ok := lookup(key); ok {
		*target = value
	}
}

func lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(envPrefix + key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return strings.TrimSpace(value), true
}
