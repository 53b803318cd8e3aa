package main

import (
	"context"
	"fmt"
	"os"
)

// InitCmd creates the analytics schema and optionally bulk-loads data.
type InitCmd struct {
	CSV string `help:"Path to a CSV file to load into the analytics table"`
}

func (c *InitCmd) Run(cli *CLI) error {
	ctx := context.Background()

	application, err := newApp(ctx, cli)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Store.Initialize(ctx); err != nil {
		return err
	}
	fmt.Printf("Initialized database at %s\n", application.Config.Database.Path)

	if c.CSV != "" {
		f, err := os.Open(c.CSV)
		if err != nil {
			return fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()

		count, err := application.Store.LoadCSV(ctx, f)
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %d records from %s\n", count, c.CSV)
	}

	return nil
}
