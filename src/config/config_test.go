package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Database.Table != "app_portfolio" {
		t.Errorf("Expected table app_portfolio, got %s", config.Database.Table)
	}
	if config.Database.Path == "" {
		t.Error("Expected database path to be set")
	}
	if !strings.HasSuffix(config.Database.Path, "app_portfolio.db") {
		t.Errorf("Unexpected database path %s", config.Database.Path)
	}

	if config.Memory.MaxMessages != 10 {
		t.Errorf("Expected max messages 10, got %d", config.Memory.MaxMessages)
	}
	if config.Memory.MaxTokens != 4000 {
		t.Errorf("Expected max tokens 4000, got %d", config.Memory.MaxTokens)
	}
	if config.Memory.CompressionTriggerRatio != 0.8 {
		t.Errorf("Expected compression trigger ratio 0.8, got %f", config.Memory.CompressionTriggerRatio)
	}
	if config.Memory.KeepRecent != 5 {
		t.Errorf("Expected keep recent 5, got %d", config.Memory.KeepRecent)
	}

	if config.Formatter.MaxSimpleRows != 5 {
		t.Errorf("Expected max simple rows 5, got %d", config.Formatter.MaxSimpleRows)
	}
	if config.Formatter.MaxSimpleColumns != 3 {
		t.Errorf("Expected max simple columns 3, got %d", config.Formatter.MaxSimpleColumns)
	}

	if config.Export.Dir == "" {
		t.Error("Expected export dir to be set")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "missing table",
			config: func() *Config {
				c := DefaultConfig()
				c.Database.Table = ""
				return c
			}(),
			wantErr: true,
		},
		{
			name: "zero max messages",
			config: func() *Config {
				c := DefaultConfig()
				c.Memory.MaxMessages = 0
				return c
			}(),
			wantErr: true,
		},
		{
			name: "ratio above one",
			config: func() *Config {
				c := DefaultConfig()
				c.Memory.CompressionTriggerRatio = 1.5
				return c
			}(),
			wantErr: true,
		},
		{
			name: "zero ratio",
			config: func() *Config {
				c := DefaultConfig()
				c.Memory.CompressionTriggerRatio = 0
				return c
			}(),
			wantErr: true,
		},
		{
			name: "negative simple rows",
			config: func() *Config {
				c := DefaultConfig()
				c.Formatter.MaxSimpleRows = -1
				return c
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
