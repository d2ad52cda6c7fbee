// Package annotate adds out-of-range marker columns to a merged table.
package annotate

import (
	"strings"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/rules"
)

// Markers holds the glyphs used for marker columns.
type Markers struct {
	// Suffix is appended (after a space) to a column name to name its marker column.
	Suffix string `yaml:"suffix" validate:"required"`
	// Below flags a value under the lower limit.
	Below string `yaml:"below" validate:"required"`
	// Above flags a value over the upper limit.
	Above string `yaml:"above" validate:"required"`
}

// DefaultMarkers returns the standard warning and arrow glyphs.
func DefaultMarkers() Markers {
	return Markers{Suffix: "⚠", Below: "↓", Above: "↑"}
}

// MarkerName returns the name of the marker column for column.
func (m Markers) MarkerName(column string) string {
	return column + " " + m.Suffix
}

// IsMarker reports whether name is a marker column name.
func (m Markers) IsMarker(name string) bool {
	return m.Suffix != "" && strings.HasSuffix(name, " "+m.Suffix)
}

// BaseName strips the marker suffix from name, if present.
func (m Markers) BaseName(name string) string {
	if m.IsMarker(name) {
		return strings.TrimSuffix(name, " "+m.Suffix)
	}
	return name
}

// Mark classifies one cell against limits. Zero and non-numeric cells are never marked.
func (m Markers) Mark(cell string, limits models.Limits) string {
	v, ok := models.ParseNumber(cell)
	if !ok || v == 0 {
		return ""
	}
	switch {
	case v < limits.Min:
		return m.Below
	case v > limits.Max:
		return m.Above
	}
	return ""
}

// Annotate returns a copy of tbl with a marker column inserted directly after every
// column that has limits in the rule table, together with the column to node index.
// The input table is not modified.
func Annotate(tbl *models.Table, rt *rules.Table, markers Markers) (*models.Table, map[string]string) {
	out := &models.Table{Name: tbl.Name, Columns: make([]models.Column, 0, len(tbl.Columns))}
	rows := tbl.RowCount()

	for _, col := range tbl.Columns {
		out.Columns = append(out.Columns, models.Column{
			Name:   col.Name,
			Values: append([]string(nil), col.Values...),
			Time:   col.Time,
		})
		if col.Time || markers.IsMarker(col.Name) {
			continue
		}
		limits, ok := rt.LimitsOf(col.Name)
		if !ok {
			continue
		}

		values := make([]string, rows)
		for i := range values {
			if i < len(col.Values) {
				values[i] = markers.Mark(col.Values[i], limits)
			}
		}
		out.Columns = append(out.Columns, models.Column{Name: markers.MarkerName(col.Name), Values: values})
	}

	return out, rt.ColumnToNode()
}
