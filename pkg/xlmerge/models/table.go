// Package models defines data structures shared by the merge pipeline.
package models

// Column is a named column of cell values.
type Column struct {
	// Name is the header text.
	Name string `json:"name"`
	// Values holds one cell per row. An empty string is a missing value.
	Values []string `json:"values"`
	// Time reports whether the column holds date/time values in canonical form.
	Time bool `json:"time,omitempty"`
}

// IsEmpty reports whether every cell of the column is missing.
func (c Column) IsEmpty() bool {
	for _, v := range c.Values {
		if v != "" {
			return false
		}
	}
	return true
}

// Table represents one tabular sheet: an ordered list of columns of equal length.
type Table struct {
	// Name is the file base name the table was read from (empty for derived tables).
	Name string `json:"name,omitempty"`
	// Columns contains the columns in display order.
	Columns []Column `json:"columns"`
}

// RowCount returns the number of rows (length of the longest column).
func (t *Table) RowCount() int {
	n := 0
	for _, c := range t.Columns {
		if len(c.Values) > n {
			n = len(c.Values)
		}
	}
	return n
}

// Index returns the position of the first column with the given name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Columns: make([]Column, len(t.Columns))}
	for i, c := range t.Columns {
		out.Columns[i] = Column{
			Name:   c.Name,
			Values: append([]string(nil), c.Values...),
			Time:   c.Time,
		}
	}
	return out
}
