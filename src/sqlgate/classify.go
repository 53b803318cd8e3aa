package sqlgate

import (
	"regexp"
	"strings"
)

// QueryType classifies the shape of a SQL query. It is only ever derived
// from the query text, never stored, so it cannot drift from the query.
type QueryType string

const (
	QueryTypeSimpleCount QueryType = "simple_count"
	QueryTypeAggregation QueryType = "aggregation"
	QueryTypeList        QueryType = "list"
	QueryTypeComplex     QueryType = "complex"
)

var selectCountPattern = regexp.MustCompile(`SELECT\s+COUNT\s*\(`)

var aggregateFuncs = []string{"SUM(", "AVG(", "MAX(", "MIN(", "COUNT("}

var complexKeywords = []string{"JOIN", "UNION", "CASE", "HAVING"}

// ClassifyQuery determines the query type used to pick a rendering
// strategy. The rules are ordered: a COUNT under a GROUP BY is an
// aggregation, not a simple count.
func ClassifyQuery(query string) QueryType {
	upper := strings.ToUpper(query)

	if selectCountPattern.MatchString(upper) && !strings.Contains(upper, "GROUP BY") {
		return QueryTypeSimpleCount
	}

	if strings.Contains(upper, "GROUP BY") {
		return QueryTypeAggregation
	}

	for _, fn := range aggregateFuncs {
		if strings.Contains(upper, fn) {
			return QueryTypeAggregation
		}
	}

	if strings.Contains(upper, "SELECT") && !strings.Contains(upper, "GROUP BY") {
		return QueryTypeList
	}

	for _, kw := range complexKeywords {
		if strings.Contains(upper, kw) {
			return QueryTypeComplex
		}
	}

	return QueryTypeList
}
