// Package formatter renders query results as chat-friendly text, either
// a short scalar/line form or a markdown table.
package formatter

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/Kochurovskyi/sqlbot/src/sqlgate"
)

const noResults = "No results found."

// Default thresholds for the simple (non-table) rendering.
const (
	DefaultMaxSimpleRows    = 5
	DefaultMaxSimpleColumns = 3
)

// Formatter decides between scalar/line rendering and table rendering.
type Formatter struct {
	MaxSimpleRows    int
	MaxSimpleColumns int

	logger *slog.Logger
}

// New creates a formatter with the default thresholds.
func New(logger *slog.Logger) *Formatter {
	return &Formatter{
		MaxSimpleRows:    DefaultMaxSimpleRows,
		MaxSimpleColumns: DefaultMaxSimpleColumns,
		logger:           logger,
	}
}

// ShouldUseTable reports whether the result set needs a table rendering.
func (f *Formatter) ShouldUseTable(rows []*sqlgate.Row, queryType sqlgate.QueryType) bool {
	if len(rows) == 0 {
		return false
	}
	if queryType == sqlgate.QueryTypeComplex {
		return true
	}
	if len(rows) > f.MaxSimpleRows {
		return true
	}
	if rows[0].Len() > f.MaxSimpleColumns {
		return true
	}
	if queryType == sqlgate.QueryTypeAggregation && len(rows) > 1 {
		return true
	}
	return false
}

// FormatSimple renders small result sets as one or a few plain lines.
func (f *Formatter) FormatSimple(rows []*sqlgate.Row, queryType sqlgate.QueryType) string {
	if len(rows) == 0 {
		return noResults
	}

	if queryType == sqlgate.QueryTypeSimpleCount {
		row := rows[0]
		if v, ok := row.Get("total"); ok {
			return formatValue(v)
		}
		if v, ok := row.Get("count"); ok {
			return formatValue(v)
		}
		values := row.Values()
		if len(values) > 0 {
			return formatValue(values[0])
		}
		return noResults
	}

	if queryType == sqlgate.QueryTypeAggregation && len(rows) == 1 {
		row := rows[0]
		values := row.Values()
		switch row.Len() {
		case 1:
			return formatValue(values[0])
		case 2:
			return fmt.Sprintf("%s: %s", formatValue(values[0]), formatValue(values[1]))
		default:
			var parts []string
			for _, col := range row.Columns() {
				if col == "id" {
					continue
				}
				v, _ := row.Get(col)
				parts = append(parts, fmt.Sprintf("%s: %s", col, formatValue(v)))
			}
			return strings.Join(parts, ", ")
		}
	}

	if len(rows) <= f.MaxSimpleRows {
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			values := row.Values()
			switch {
			case row.Len() == 1:
				lines = append(lines, formatValue(values[0]))
			default:
				// Two or more columns: first two carry the signal.
				lines = append(lines, fmt.Sprintf("%s: %s", formatValue(values[0]), formatValue(values[1])))
			}
		}
		return strings.Join(lines, "\n")
	}

	return f.FormatTable(rows, queryType)
}

// FormatTable renders the result set as a pipe-delimited markdown table.
// The id column is dropped unless it is the only column.
func (f *Formatter) FormatTable(rows []*sqlgate.Row, queryType sqlgate.QueryType) string {
	if len(rows) == 0 {
		return noResults
	}
	if rows[0].Len() == 0 {
		return "Empty result set."
	}

	columns := rows[0].Columns()
	display := make([]string, 0, len(columns))
	for _, col := range columns {
		if col != "id" {
			display = append(display, col)
		}
	}
	if len(display) == 0 {
		display = columns
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, strings.Join(display, " | "))

	separators := make([]string, len(display))
	for i := range separators {
		separators[i] = "---"
	}
	lines = append(lines, strings.Join(separators, " | "))

	for _, row := range rows {
		cells := make([]string, 0, len(display))
		for _, col := range display {
			v, ok := row.Get(col)
			if !ok {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, formatValue(v))
		}
		lines = append(lines, strings.Join(cells, " | "))
	}

	return strings.Join(lines, "\n")
}

// Format is the top-level entry point: picks a rendering, then appends
// the optional assumption note.
func (f *Formatter) Format(rows []*sqlgate.Row, queryType sqlgate.QueryType, assumptions string) string {
	if len(rows) == 0 {
		return noResults
	}

	var formatted string
	if f.ShouldUseTable(rows, queryType) {
		formatted = f.FormatTable(rows, queryType)
	} else {
		formatted = f.FormatSimple(rows, queryType)
	}

	if assumptions != "" {
		formatted = fmt.Sprintf("%s\n\n*Note: %s*", formatted, assumptions)
	}
	return formatted
}

// formatValue renders a scalar: integral floats lose the decimal point,
// other floats print with two decimals, nil prints empty.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
