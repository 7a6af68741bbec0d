package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeFiles(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeFiles() error {
	var err error
	if strings.TrimSpace(c.Files.MusicDirectory) == "" {
		c.Files.MusicDirectory = defaultMusicDirectory
	}
	if c.Files.MusicDirectory, err = expandPath(c.Files.MusicDirectory); err != nil {
		return fmt.Errorf("files.music_directory: %w", err)
	}
	if strings.TrimSpace(c.Files.PlaylistDirectory) != "" {
		if c.Files.PlaylistDirectory, err = expandPath(c.Files.PlaylistDirectory); err != nil {
			return fmt.Errorf("files.playlist_directory: %w", err)
		}
	}
	if strings.TrimSpace(c.Files.DatabaseName) == "" {
		c.Files.DatabaseName = defaultDatabaseName
	}
	if c.Files.DatabaseName, err = expandPath(c.Files.DatabaseName); err != nil {
		return fmt.Errorf("files.database_name: %w", err)
	}
	c.Files.FilePattern = strings.TrimSpace(c.Files.FilePattern)
	return nil
}

func (c *Config) normalizeMatching() {
	if c.Matching.MaxCandidates == 0 {
		c.Matching.MaxCandidates = defaultMaxCandidates
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		if expanded, err := expandPath(c.Logging.File); err == nil {
			c.Logging.File = expanded
		}
	}
}
