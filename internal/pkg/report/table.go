// Package report builds and renders status tables from decoded Slurm
// records: per-partition node summaries, cluster load, and partition/QoS
// overviews, each printable in ASCII, CSV, Markdown, or MediaWiki form.
package report

// Alignment selects how a column's cells are positioned within their width.
// AlignDefault defers to the rendering style's own default.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Table is a rectangular block of string cells indexed by row then column.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty table with the given column names.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds one row. Short rows are padded with empty cells and long rows
// truncated so every row matches the column count.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Width returns the column count.
func (t *Table) Width() int { return len(t.Columns) }

// Height returns the row count.
func (t *Table) Height() int { return len(t.Rows) }

// FromMaps builds a table over the given columns from keyed rows. Keys
// missing from a row render as empty cells; keys outside columns are
// ignored.
func FromMaps(columns []string, rows []map[string]string) *Table {
	t := New(columns...)
	for _, m := range rows {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = m[c]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
