package sqlgate

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/georgysavva/scany/v2/sqlscan"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var defaultSchema string

// DefaultTable is the analytics table the chatbot answers questions about.
const DefaultTable = "app_portfolio"

// Store manages the sqlite analytics database. Ordinary query execution
// goes through the shared *sql.DB pool; the mutex only serializes bulk
// administrative operations (schema init, CSV load).
type Store struct {
	path   string
	table  string
	db     *sql.DB
	mu     sync.Mutex
	logger *slog.Logger
}

// ColumnInfo describes one column of the analytics table.
type ColumnInfo struct {
	CID          int     `db:"cid"`
	Name         string  `db:"name"`
	Type         string  `db:"type"`
	NotNull      int     `db:"notnull"`
	DefaultValue *string `db:"dflt_value"`
	PrimaryKey   int     `db:"pk"`
}

// Open opens (or creates) the sqlite database at path.
func Open(path, table string, logger *slog.Logger) (*Store, error) {
	if table == "" {
		table = DefaultTable
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{path: path, table: table, db: db, logger: logger}, nil
}

// DB exposes the underlying connection pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Table returns the analytics table name this store serves.
func (s *Store) Table() string {
	return s.table
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the analytics table and its indexes. The embedded
// schema is written against the default table name; a configured name is
// substituted in.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schema := defaultSchema
	if s.table != DefaultTable {
		schema = strings.ReplaceAll(schema, DefaultTable, s.table)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	s.logger.Info("database initialized", "path", s.path, "table", s.table)
	return nil
}

// LoadCSV bulk-loads portfolio records from r into the analytics table.
// The header row must carry the canonical column names. Returns the number
// of records inserted.
func (s *Store) LoadCSV(ctx context.Context, r io.Reader) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"app_name", "platform", "date", "country", "installs", "in_app_revenue", "ads_revenue", "ua_cost"} {
		if _, ok := idx[required]; !ok {
			return 0, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := fmt.Sprintf(`INSERT INTO %s
		(app_name, platform, date, country, installs, in_app_revenue, ads_revenue, ua_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, s.table)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV record %d: %w", count+1, err)
		}

		installs, err := strconv.Atoi(strings.TrimSpace(record[idx["installs"]]))
		if err != nil {
			return 0, fmt.Errorf("record %d: bad installs value: %w", count+1, err)
		}
		inApp, err := strconv.ParseFloat(strings.TrimSpace(record[idx["in_app_revenue"]]), 64)
		if err != nil {
			return 0, fmt.Errorf("record %d: bad in_app_revenue value: %w", count+1, err)
		}
		ads, err := strconv.ParseFloat(strings.TrimSpace(record[idx["ads_revenue"]]), 64)
		if err != nil {
			return 0, fmt.Errorf("record %d: bad ads_revenue value: %w", count+1, err)
		}
		uaCost, err := strconv.ParseFloat(strings.TrimSpace(record[idx["ua_cost"]]), 64)
		if err != nil {
			return 0, fmt.Errorf("record %d: bad ua_cost value: %w", count+1, err)
		}

		if _, err := stmt.ExecContext(ctx,
			record[idx["app_name"]],
			record[idx["platform"]],
			record[idx["date"]],
			record[idx["country"]],
			installs, inApp, ads, uaCost,
		); err != nil {
			return 0, fmt.Errorf("failed to insert record %d: %w", count+1, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit CSV load: %w", err)
	}
	s.logger.Info("loaded records from CSV", "count", count, "table", s.table)
	return count, nil
}

// Schema returns the CREATE TABLE statement of the analytics table as
// recorded by sqlite.
func (s *Store) Schema(ctx context.Context) (string, error) {
	var schema string
	err := sqlscan.Get(ctx, s.db, &schema,
		`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, s.table)
	if err != nil {
		return "", fmt.Errorf("failed to read schema: %w", err)
	}
	return schema, nil
}

// TableInfo returns column metadata for the analytics table.
func (s *Store) TableInfo(ctx context.Context) ([]ColumnInfo, error) {
	var cols []ColumnInfo
	err := sqlscan.Select(ctx, s.db, &cols,
		`SELECT cid, name, type, "notnull", dflt_value, pk FROM pragma_table_info(?)`, s.table)
	if err != nil {
		return nil, fmt.Errorf("failed to read table info: %w", err)
	}
	return cols, nil
}

// CountRecords returns the total number of rows in the analytics table.
func (s *Store) CountRecords(ctx context.Context) (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)
	if err := sqlscan.Get(ctx, s.db, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}
