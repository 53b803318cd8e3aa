// Package exporter turns result rows into CSV files and hands them to a
// channel uploader. The upload transport is the caller's concern; this
// package only defines the contract.
package exporter

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/Kochurovskyi/sqlbot/src/sqlgate"
)

// ErrEmptyInput is returned when a CSV export is requested with no rows.
var ErrEmptyInput = errors.New("cannot generate CSV from empty data")

const filenamePrefix = "app_portfolio_export_"

// Service writes CSV exports into a working directory.
type Service struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

// New creates an export service writing into dir on fs.
func New(fs afero.Fs, dir string, logger *slog.Logger) *Service {
	return &Service{fs: fs, dir: dir, logger: logger}
}

// GenerateCSV writes rows to a CSV file and returns its path. The column
// set is the first row's column order; every row is written against that
// set, missing cells default to empty. An empty filename gets a
// timestamped default; a missing .csv suffix is appended.
func (s *Service) GenerateCSV(rows []*sqlgate.Row, filename string) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmptyInput
	}

	if filename == "" {
		filename = filenamePrefix + time.Now().Format("20060102_150405") + ".csv"
	}
	if !strings.HasSuffix(filename, ".csv") {
		filename += ".csv"
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(s.dir, filename)
	file, err := s.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	columns := rows[0].Columns()
	writer := csv.NewWriter(file)
	if err := writer.Write(columns); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := make([]string, 0, len(columns))
		for _, col := range columns {
			v, ok := row.Get(col)
			if !ok || v == nil {
				record = append(record, "")
				continue
			}
			record = append(record, fmt.Sprintf("%v", v))
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.logger.Info("generated CSV file", "path", path, "rows", len(rows))
	return path, nil
}

// Cleanup deletes an export file, best effort. The file may already be
// gone or permissions may block deletion; neither is worth failing over.
func (s *Service) Cleanup(path string) {
	if err := s.fs.Remove(path); err != nil {
		s.logger.Warn("failed to clean up CSV file", "path", path, "error", err)
		return
	}
	s.logger.Debug("cleaned up CSV file", "path", path)
}

// UploadRequest describes a file handed to the channel uploader.
type UploadRequest struct {
	Path     string
	Channel  string
	ThreadTS string
	Title    string
}

// UploadResult reports what the channel made of the file.
type UploadResult struct {
	FileID string
}

// Uploader hands a generated file to the hosting messaging channel.
type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) (UploadResult, error)
}

// GenerateAndUpload writes the CSV, uploads it, and cleans the file up
// regardless of the upload outcome.
func (s *Service) GenerateAndUpload(ctx context.Context, rows []*sqlgate.Row, uploader Uploader, channel, threadTS, filename, title string) (UploadResult, error) {
	path, err := s.GenerateCSV(rows, filename)
	if err != nil {
		return UploadResult{}, err
	}
	defer s.Cleanup(path)

	if title == "" {
		title = "App Portfolio Export - " + time.Now().Format("2006-01-02 15:04")
	}

	result, err := uploader.Upload(ctx, UploadRequest{
		Path:     path,
		Channel:  channel,
		ThreadTS: threadTS,
		Title:    title,
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to upload CSV: %w", err)
	}
	s.logger.Info("uploaded CSV", "file_id", result.FileID, "channel", channel)
	return result, nil
}
