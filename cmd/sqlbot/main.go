package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	DB       string `env:"SQLBOT_DB" help:"Path to the sqlite database file"`
	Table    string `env:"SQLBOT_TABLE" default:"app_portfolio" help:"Analytics table name"`
	LogLevel string `default:"warn" help:"Log level"`

	Init   InitCmd   `cmd:"" help:"Create the database schema and optionally load data"`
	Query  QueryCmd  `cmd:"" help:"Run a SQL query through the safety gate"`
	Export ExportCmd `cmd:"" help:"Run a SQL query and export the result as CSV"`
	Schema SchemaCmd `cmd:"" help:"Print the analytics table schema"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sqlbot"),
		kong.Description("SQL safety gate, executor, and result formatter for the app-portfolio chatbot"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
