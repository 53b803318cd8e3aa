package main

import (
	"context"

	"github.com/Kochurovskyi/sqlbot/src/app"
	"github.com/Kochurovskyi/sqlbot/src/config"
)

// buildConfig merges CLI flags over the default configuration.
func buildConfig(cli *CLI) *config.Config {
	cfg := config.DefaultConfig()
	if cli.DB != "" {
		cfg.Database.Path = cli.DB
	}
	if cli.Table != "" {
		cfg.Database.Table = cli.Table
	}
	cfg.Logging.Level = cli.LogLevel
	return cfg
}

// newApp constructs the application from the CLI flags.
func newApp(ctx context.Context, cli *CLI) (*app.App, error) {
	cfg := buildConfig(cli)
	logger := createCLILogger(cli.LogLevel)
	return app.New(ctx, cfg, logger)
}
