package models

// Column is one named, ordered sequence of cell values. A cell value is one
// of string, float64, int64, int, bool, time.Time, or nil.
type Column struct {
	// Name is the column display name.
	Name string `json:"name"`
	// Values is the ordered cell sequence.
	Values []any `json:"values"`
}

// Table is the canonical tabular output of extraction: ordered named
// columns of equal length. Tables are produced fresh on every extraction
// call and are owned solely by the caller.
type Table struct {
	// Title is an optional display title (usually the trace name).
	Title string `json:"title,omitempty"`
	// Columns holds the ordered columns; insertion order is display order.
	Columns []Column `json:"columns"`
	// Meta records extraction provenance. Known keys: "traceType",
	// "valueTitle", "longForm", "merged", "locationmode", "geo".
	// Producers may attach extra keys; they pass through untyped.
	Meta map[string]any `json:"meta,omitempty"`
}

// NewTable constructs a table, padding every column with nil values up to
// the length of the longest column. Equal column lengths are established
// here and nowhere else.
func NewTable(title string, columns []Column, meta map[string]any) Table {
	maxLen := 0
	for _, c := range columns {
		if len(c.Values) > maxLen {
			maxLen = len(c.Values)
		}
	}
	for i := range columns {
		for len(columns[i].Values) < maxLen {
			columns[i].Values = append(columns[i].Values, nil)
		}
	}
	return Table{Title: title, Columns: columns, Meta: meta}
}

// Len returns the row count (the length of the longest column).
func (t Table) Len() int {
	n := 0
	for _, c := range t.Columns {
		if len(c.Values) > n {
			n = len(c.Values)
		}
	}
	return n
}

// ColumnIndex returns the index of the first column with the given name,
// or -1 when no column matches.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Rows flattens the table into a 2-D grid whose first row is the
// column-name header and whose remaining rows carry cell values in column
// order.
func (t Table) Rows() [][]any {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}
	n := t.Len()
	rows := make([][]any, 0, n+1)
	rows = append(rows, header)
	for r := 0; r < n; r++ {
		row := make([]any, len(t.Columns))
		for c, col := range t.Columns {
			if r < len(col.Values) {
				row[c] = col.Values[r]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
