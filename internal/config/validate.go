package config

import (
	"errors"
	"fmt"
	"regexp"
)

// Placeholders accepted in files.file_pattern.
var knownPlaceholders = map[string]struct{}{
	"{artist}":      {},
	"{albumartist}": {},
	"{album}":       {},
	"{title}":       {},
	"{ext}":         {},
}

var placeholderPattern = regexp.MustCompile(`\{[^{}]*\}`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFiles(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFiles() error {
	if c.Files.MusicDirectory == "" {
		return errors.New("files.music_directory must be set")
	}
	if c.Files.DatabaseName == "" {
		return errors.New("files.database_name must be set")
	}
	for _, placeholder := range placeholderPattern.FindAllString(c.Files.FilePattern, -1) {
		if _, ok := knownPlaceholders[placeholder]; !ok {
			return fmt.Errorf("files.file_pattern: unknown placeholder %s", placeholder)
		}
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.AutoReplaceThreshold <= 0 || c.Matching.AutoReplaceThreshold > 1 {
		return errors.New("matching.auto_replace_threshold must be greater than 0 and at most 1")
	}
	if c.Matching.MaxCandidates < 1 {
		return errors.New("matching.max_candidates must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
