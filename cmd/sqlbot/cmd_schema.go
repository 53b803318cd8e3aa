package main

import (
	"context"
	"fmt"
)

// SchemaCmd prints the analytics table schema and record count.
type SchemaCmd struct{}

func (c *SchemaCmd) Run(cli *CLI) error {
	ctx := context.Background()

	application, err := newApp(ctx, cli)
	if err != nil {
		return err
	}
	defer application.Close()

	schema, err := application.Store.Schema(ctx)
	if err != nil {
		return err
	}
	fmt.Println(schema)

	cols, err := application.Store.TableInfo(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nColumns:\n")
	for _, col := range cols {
		notNull := ""
		if col.NotNull != 0 {
			notNull = " NOT NULL"
		}
		fmt.Printf("  %s %s%s\n", col.Name, col.Type, notNull)
	}

	count, err := application.Store.CountRecords(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nRecords: %d\n", count)

	return nil
}
