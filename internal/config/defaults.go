package config

const (
	defaultConfigPath           = "~/.config/apollo/config.toml"
	defaultMusicDirectory       = "~/Music"
	defaultDatabaseName         = "~/.local/share/apollo/library.db"
	defaultAutoReplaceThreshold = 0.90
	defaultMaxCandidates        = 5
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Files: Files{
			MusicDirectory: defaultMusicDirectory,
			DatabaseName:   defaultDatabaseName,
		},
		Matching: Matching{
			AutoReplaceThreshold: defaultAutoReplaceThreshold,
			MaxCandidates:        defaultMaxCandidates,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
