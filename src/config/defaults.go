package config

// DefaultConfig returns the stock configuration. Paths default to the
// user's XDG data directory and the system temp directory.
func DefaultConfig() *Config {
	paths := DefaultStoragePaths()
	return &Config{
		Database: DatabaseConfig{
			Path:  paths.DatabasePath,
			Table: "app_portfolio",
		},
		Memory: MemoryConfig{
			MaxMessages:             10,
			MaxTokens:               4000,
			CompressionTriggerRatio: 0.8,
			KeepRecent:              5,
		},
		Formatter: FormatterConfig{
			MaxSimpleRows:    5,
			MaxSimpleColumns: 3,
		},
		Export: ExportConfig{
			Dir: paths.ExportDir,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}
