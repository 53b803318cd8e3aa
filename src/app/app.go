// Package app is the composition root: it constructs the gate, formatter,
// memory, and export services once and hands references around, instead
// of hiding them behind lazily-built globals.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Kochurovskyi/sqlbot/src/config"
	"github.com/Kochurovskyi/sqlbot/src/exporter"
	"github.com/Kochurovskyi/sqlbot/src/formatter"
	"github.com/Kochurovskyi/sqlbot/src/memstore"
	"github.com/Kochurovskyi/sqlbot/src/sqlgate"
)

// App bundles the chatbot core services.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Store     *sqlgate.Store
	Gate      *sqlgate.Gate
	Formatter *formatter.Formatter
	Memory    *memstore.Store
	Exporter  *exporter.Service
}

// New builds the core services from cfg. The sqlite database file is
// created on first open.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	store, err := sqlgate.Open(cfg.Database.Path, cfg.Database.Table, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	fmtr := formatter.New(logger)
	fmtr.MaxSimpleRows = cfg.Formatter.MaxSimpleRows
	fmtr.MaxSimpleColumns = cfg.Formatter.MaxSimpleColumns

	memory := memstore.New(memstore.Config{
		MaxMessages:             cfg.Memory.MaxMessages,
		MaxTokens:               cfg.Memory.MaxTokens,
		CompressionTriggerRatio: cfg.Memory.CompressionTriggerRatio,
		KeepRecent:              cfg.Memory.KeepRecent,
	}, logger)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Gate:      sqlgate.NewGate(store, logger),
		Formatter: fmtr,
		Memory:    memory,
		Exporter:  exporter.New(afero.NewOsFs(), cfg.Export.Dir, logger),
	}, nil
}

// RunQuery is the narrow interface the external language-model agent
// calls: gate the SQL, classify it, render the result, and record both
// the query and the rendering into thread memory. A failed execution
// comes back with empty text and Success=false on the result.
func (a *App) RunQuery(ctx context.Context, threadTS, question, query string) (string, sqlgate.QueryResult) {
	result := a.Gate.Execute(ctx, query)
	if !result.Success {
		if threadTS != "" {
			a.Memory.RecordQuery(threadTS, query, question, &result)
		}
		return "", result
	}

	queryType := sqlgate.ClassifyQuery(query)

	assumptions := ""
	if (queryType == sqlgate.QueryTypeAggregation || queryType == sqlgate.QueryTypeComplex) && len(result.Rows) > 1 {
		assumptions = formatter.GenerateAssumptions(query, question, queryType)
	}

	text := a.Formatter.Format(result.Rows, queryType, assumptions)

	if threadTS != "" {
		a.Memory.RecordQuery(threadTS, query, question, &result)
		if question != "" {
			a.Memory.AddMessage(threadTS, memstore.RoleUser, question)
		}
		a.Memory.AddMessage(threadTS, memstore.RoleAssistant, text)
	}

	return text, result
}

// Close releases the backing store.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
