// Package config holds the chatbot core configuration: the backing
// database, memory budgets, formatter thresholds, and export settings.
package config

// Config is the complete configuration for the chatbot core.
type Config struct {
	// Database configures the backing analytics store.
	Database DatabaseConfig `json:"database"`

	// Memory configures per-thread conversation budgets.
	Memory MemoryConfig `json:"memory"`

	// Formatter configures the simple-vs-table rendering thresholds.
	Formatter FormatterConfig `json:"formatter"`

	// Export configures CSV export output.
	Export ExportConfig `json:"export"`

	// Logging configures log output.
	Logging LoggingConfig `json:"logging"`
}

// DatabaseConfig defines the backing store location and table.
type DatabaseConfig struct {
	// Path to the sqlite database file.
	Path string `json:"path" validate:"required"`

	// Table is the analytics table queries must reference.
	Table string `json:"table" validate:"required"`
}

// MemoryConfig defines the conversation memory budgets.
type MemoryConfig struct {
	// MaxMessages kept per thread before hard truncation.
	MaxMessages int `json:"max_messages" validate:"min=1"`

	// MaxTokens is the approximate conversation budget.
	MaxTokens int `json:"max_tokens" validate:"min=1"`

	// CompressionTriggerRatio of MaxTokens at which compression starts.
	CompressionTriggerRatio float64 `json:"compression_trigger_ratio" validate:"gt=0,lte=1"`

	// KeepRecent messages survive compression verbatim.
	KeepRecent int `json:"keep_recent" validate:"min=1"`
}

// FormatterConfig defines rendering thresholds.
type FormatterConfig struct {
	// MaxSimpleRows before switching to table rendering.
	MaxSimpleRows int `json:"max_simple_rows" validate:"min=1"`

	// MaxSimpleColumns before switching to table rendering.
	MaxSimpleColumns int `json:"max_simple_columns" validate:"min=1"`
}

// ExportConfig defines where CSV exports are written.
type ExportConfig struct {
	// Dir for generated CSV files.
	Dir string `json:"dir" validate:"required"`
}

// LoggingConfig defines logging output.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level,omitempty"`
}
