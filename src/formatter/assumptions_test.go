package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kochurovskyi/sqlbot/src/sqlgate"
)

func TestGenerateAssumptions(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		question  string
		queryType sqlgate.QueryType
		want      string
	}{
		{
			name:      "nothing matched falls back to generic note",
			query:     "SELECT app_name FROM app_portfolio",
			question:  "which apps do we have?",
			queryType: sqlgate.QueryTypeComplex,
			want:      "Results based on current database state",
		},
		{
			name:      "date with explicit year",
			query:     "SELECT date, SUM(installs) FROM app_portfolio WHERE date >= '2024-01-01' GROUP BY date",
			question:  "installs per day",
			queryType: sqlgate.QueryTypeAggregation,
			want:      "Timeframe based on dates in query; Total values calculated across all matching records",
		},
		{
			name:      "date without year",
			query:     "SELECT date FROM app_portfolio",
			question:  "show dates",
			queryType: sqlgate.QueryTypeComplex,
			want:      "Timeframe: All available data",
		},
		{
			name:      "average aggregation",
			query:     "SELECT platform, AVG(ua_cost) FROM app_portfolio GROUP BY platform",
			question:  "average cost per platform",
			queryType: sqlgate.QueryTypeAggregation,
			want:      "Average calculated across all matching records",
		},
		{
			name:      "descending order",
			query:     "SELECT app_name, SUM(installs) FROM app_portfolio GROUP BY app_name ORDER BY SUM(installs) DESC",
			question:  "apps by installs",
			queryType: sqlgate.QueryTypeAggregation,
			want:      "Total values calculated across all matching records; Results sorted in descending order",
		},
		{
			name:      "popularity by installs",
			query:     "SELECT app_name, SUM(installs) FROM app_portfolio GROUP BY app_name ORDER BY SUM(installs) DESC LIMIT 5",
			question:  "what are the most popular apps?",
			queryType: sqlgate.QueryTypeAggregation,
			want:      "Total values calculated across all matching records; Results sorted in descending order; Popularity defined by number of installs; Showing top 5 results",
		},
		{
			name:      "popularity by revenue",
			query:     "SELECT app_name, SUM(in_app_revenue) AS rev FROM app_portfolio GROUP BY app_name ORDER BY rev DESC",
			question:  "most popular apps by earnings",
			queryType: sqlgate.QueryTypeAggregation,
			want:      "Total values calculated across all matching records; Results sorted in descending order; Popularity defined by revenue",
		},
		{
			name:      "limit note on complex query",
			query:     "SELECT app_name FROM app_portfolio LIMIT 10",
			question:  "some apps",
			queryType: sqlgate.QueryTypeComplex,
			want:      "Showing top 10 results",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateAssumptions(tt.query, tt.question, tt.queryType))
		})
	}
}
