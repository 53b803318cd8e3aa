package formatter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Kochurovskyi/sqlbot/src/sqlgate"
)

var limitPattern = regexp.MustCompile(`LIMIT\s+(\d+)`)

// GenerateAssumptions inspects the SQL text and the original question and
// produces a semicolon-joined list of short human-readable notes about
// what the query assumed. Deterministic text-to-text; intended for
// aggregation and complex results with more than one row.
func GenerateAssumptions(query, question string, queryType sqlgate.QueryType) string {
	var parts []string

	lower := strings.ToLower(query)
	upper := strings.ToUpper(query)

	if strings.Contains(lower, "date") || strings.Contains(lower, "time") {
		if strings.Contains(query, "2024") || strings.Contains(query, "2025") {
			parts = append(parts, "Timeframe based on dates in query")
		} else {
			parts = append(parts, "Timeframe: All available data")
		}
	}

	if queryType == sqlgate.QueryTypeAggregation {
		switch {
		case strings.Contains(upper, "SUM"):
			parts = append(parts, "Total values calculated across all matching records")
		case strings.Contains(upper, "AVG"):
			parts = append(parts, "Average calculated across all matching records")
		case strings.Contains(upper, "COUNT"):
			parts = append(parts, "Count includes all matching records")
		}
	}

	if strings.Contains(upper, "ORDER BY") {
		switch {
		case strings.Contains(upper, "DESC"):
			parts = append(parts, "Results sorted in descending order")
		case strings.Contains(upper, "ASC"):
			parts = append(parts, "Results sorted in ascending order")
		}
	}

	if q := strings.ToLower(question); strings.Contains(q, "popular") {
		switch {
		case strings.Contains(lower, "installs"):
			parts = append(parts, "Popularity defined by number of installs")
		case strings.Contains(lower, "revenue"):
			parts = append(parts, "Popularity defined by revenue")
		default:
			parts = append(parts, "Popularity metric inferred from query context")
		}
	}

	if m := limitPattern.FindStringSubmatch(upper); m != nil {
		parts = append(parts, fmt.Sprintf("Showing top %s results", m[1]))
	}

	if len(parts) == 0 {
		parts = append(parts, "Results based on current database state")
	}

	return strings.Join(parts, "; ")
}
