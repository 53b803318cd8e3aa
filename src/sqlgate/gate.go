// Package sqlgate validates, executes, and classifies SQL produced by the
// language-model layer. Validation is a lexical defense-in-depth filter,
// not a SQL parser; the rules and their order are load-bearing and must
// not be reordered.
package sqlgate

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// QueryResult is the outcome of one execution attempt. Success=false
// implies Rows is empty and Error is set. Callers must check Success;
// execution failures are never surfaced as Go errors.
type QueryResult struct {
	Success  bool     `json:"success"`
	Rows     []*Row   `json:"rows"`
	Error    string   `json:"error,omitempty"`
	RowCount int      `json:"row_count"`
	Columns  []string `json:"columns"`
	Query    string   `json:"query"`
}

// dangerousKeywords are rejected as whole words anywhere in a query.
var dangerousKeywords = []string{
	"DROP", "DELETE", "UPDATE", "INSERT", "ALTER", "CREATE", "TRUNCATE",
	"EXEC", "EXECUTE", "MERGE", "REPLACE",
}

var dangerousPatterns = compileKeywordPatterns(dangerousKeywords)

func compileKeywordPatterns(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return patterns
}

// Gate is the safety gate in front of the analytics store.
type Gate struct {
	store  *Store
	table  string
	logger *slog.Logger
}

// NewGate creates a gate that executes validated queries against store.
func NewGate(store *Store, logger *slog.Logger) *Gate {
	return &Gate{store: store, table: store.Table(), logger: logger}
}

// Validate applies the safety rules in order and reports the first
// failure. A true result means the query may be handed to the store.
func (g *Gate) Validate(query string) (bool, string) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return false, "Empty query"
	}

	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") {
		return false, "Only SELECT queries are allowed"
	}

	for i, pattern := range dangerousPatterns {
		if pattern.MatchString(upper) {
			return false, fmt.Sprintf("Dangerous keyword '%s' is not allowed", dangerousKeywords[i])
		}
	}

	// One trailing semicolon is tolerated; anything beyond that splitting
	// into more than one non-empty statement is an injection attempt.
	if strings.Contains(strings.TrimSuffix(trimmed, ";"), ";") {
		statements := 0
		for _, part := range strings.Split(query, ";") {
			if strings.TrimSpace(part) != "" {
				statements++
			}
		}
		if statements > 1 {
			return false, "Multiple statements are not allowed"
		}
	}

	if !strings.Contains(strings.ToLower(query), strings.ToLower(g.table)) {
		return false, fmt.Sprintf("Query must reference '%s' table", g.table)
	}

	if strings.Count(query, "(") != strings.Count(query, ")") {
		return false, "Unbalanced parentheses in query"
	}

	return true, ""
}

// Execute validates and runs the query. Rejections and runtime store
// errors both come back as a failed QueryResult, never as a Go error.
func (g *Gate) Execute(ctx context.Context, query string) QueryResult {
	if ok, reason := g.Validate(query); !ok {
		g.logger.Warn("invalid query rejected", "reason", reason)
		return QueryResult{Success: false, Error: reason, Query: query}
	}

	rows, err := g.store.DB().QueryContext(ctx, query)
	if err != nil {
		g.logger.Error("query execution failed", "error", err)
		return QueryResult{Success: false, Error: err.Error(), Query: query}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		g.logger.Error("query execution failed", "error", err)
		return QueryResult{Success: false, Error: err.Error(), Query: query}
	}

	var results []*Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			g.logger.Error("query execution failed", "error", err)
			return QueryResult{Success: false, Error: err.Error(), Query: query}
		}

		row := NewRow()
		for i, col := range columns {
			row.Set(col, normalizeValue(values[i]))
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		g.logger.Error("query execution failed", "error", err)
		return QueryResult{Success: false, Error: err.Error(), Query: query}
	}

	resultColumns := []string{}
	if len(results) > 0 {
		resultColumns = results[0].Columns()
	}

	g.logger.Info("query executed successfully", "rows", len(results))
	return QueryResult{
		Success:  true,
		Rows:     results,
		RowCount: len(results),
		Columns:  resultColumns,
		Query:    query,
	}
}

// normalizeValue converts driver byte slices to strings so downstream
// rendering sees plain scalars.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
