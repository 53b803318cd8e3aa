package main

import (
	"context"
	"fmt"
)

// ExportCmd runs a SQL query and writes the result set to a CSV file.
type ExportCmd struct {
	SQL      string `arg:"" help:"SQL query to execute"`
	Filename string `help:"Output filename (defaults to a timestamped name)"`
}

func (c *ExportCmd) Run(cli *CLI) error {
	ctx := context.Background()

	application, err := newApp(ctx, cli)
	if err != nil {
		return err
	}
	defer application.Close()

	result := application.Gate.Execute(ctx, c.SQL)
	if !result.Success {
		return fmt.Errorf("query failed: %s", result.Error)
	}

	path, err := application.Exporter.GenerateCSV(result.Rows, c.Filename)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d rows to %s\n", result.RowCount, path)
	return nil
}
