package main

import (
	"context"
	"fmt"
)

// QueryCmd runs a SQL query through the safety gate and prints the
// formatted result.
type QueryCmd struct {
	SQL      string `arg:"" help:"SQL query to execute"`
	Question string `help:"Original question, used for assumption notes"`
	Thread   string `help:"Thread identifier to record the query under"`
}

func (c *QueryCmd) Run(cli *CLI) error {
	ctx := context.Background()

	application, err := newApp(ctx, cli)
	if err != nil {
		return err
	}
	defer application.Close()

	text, result := application.RunQuery(ctx, c.Thread, c.Question, c.SQL)
	if !result.Success {
		return fmt.Errorf("query failed: %s", result.Error)
	}

	fmt.Println(text)
	return nil
}
