package records

import "strings"

// Table is a column-named tabular dataset as read from a CRM export.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table from a header row and data rows. Header names are trimmed;
// when a name repeats, the first occurrence wins. Short rows read as blank cells.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
		rows:    rows,
	}
	for i, column := range columns {
		name := strings.TrimSpace(column)
		t.columns = append(t.columns, name)
		if name == "" {
			continue
		}
		if _, exists := t.index[name]; !exists {
			t.index[name] = i
		}
	}
	return t
}

// Columns returns the header names in source order.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether the table exposes the named column.
func (t *Table) Has(column string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[column]
	return ok
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Value returns the cleaned cell at row/column, or "" when either is absent.
func (t *Table) Value(row int, column string) string {
	if t == nil || row < 0 || row >= len(t.rows) {
		return ""
	}
	idx, ok := t.index[column]
	if !ok {
		return ""
	}
	cells := t.rows[row]
	if idx >= len(cells) {
		return ""
	}
	return Clean(cells[idx])
}

// Row returns the cleaned cells of a row aligned with Columns.
func (t *Table) Row(row int) []string {
	if t == nil || row < 0 || row >= len(t.rows) {
		return nil
	}
	out := make([]string, len(t.columns))
	for i := range t.columns {
		if i < len(t.rows[row]) {
			out[i] = Clean(t.rows[row][i])
		}
	}
	return out
}

// Missing returns the required columns the table does not expose, in the given order.
func (t *Table) Missing(required ...string) []string {
	var missing []string
	for _, column := range required {
		if !t.Has(column) {
			missing = append(missing, column)
		}
	}
	return missing
}

// Subset returns a table with the same header holding only the given rows.
func (t *Table) Subset(rows []int) *Table {
	if t == nil {
		return nil
	}
	picked := make([][]string, 0, len(rows))
	for _, r := range rows {
		if r >= 0 && r < len(t.rows) {
			picked = append(picked, t.rows[r])
		}
	}
	return NewTable(t.columns, picked)
}
