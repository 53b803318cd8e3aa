package sqlgate

// Row is a single result row with stable column order. Plain Go maps lose
// the order the backing store returned columns in, which the formatter and
// CSV exporter both depend on.
type Row struct {
	cols   []string
	values map[string]any
}

// NewRow creates an empty row.
func NewRow() *Row {
	return &Row{values: make(map[string]any)}
}

// Set stores a value under the given column, appending the column to the
// order on first sight.
func (r *Row) Set(col string, value any) {
	if _, ok := r.values[col]; !ok {
		r.cols = append(r.cols, col)
	}
	r.values[col] = value
}

// Get returns the value stored under the given column.
func (r *Row) Get(col string) (any, bool) {
	v, ok := r.values[col]
	return v, ok
}

// Columns returns the column names in insertion order.
func (r *Row) Columns() []string {
	out := make([]string, len(r.cols))
	copy(out, r.cols)
	return out
}

// Values returns the values in column order.
func (r *Row) Values() []any {
	out := make([]any, 0, len(r.cols))
	for _, c := range r.cols {
		out = append(out, r.values[c])
	}
	return out
}

// Len returns the number of columns in the row.
func (r *Row) Len() int {
	return len(r.cols)
}
