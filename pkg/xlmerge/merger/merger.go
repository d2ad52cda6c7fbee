// Package merger concatenates per-file tables column-wise on a shared time key.
package merger

import (
	"fmt"
	"time"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/resolver"
)

// DefaultTimeColumn is the label of the time key column.
const DefaultTimeColumn = "Время"

// Options configures a merge.
type Options struct {
	// TimeColumn is the label of the time key column (default "Время").
	TimeColumn string
	// Window restricts the output to rows whose time key lies inside it.
	Window models.TimeWindow
}

func (o Options) timeColumn() string {
	if o.TimeColumn == "" {
		return DefaultTimeColumn
	}
	return o.TimeColumn
}

// Result is the merged table with the warnings collected along the way.
type Result struct {
	Table       *models.Table       `json:"table"`
	Diagnostics []models.Diagnostic `json:"diagnostics,omitempty"`
}

// Merge aligns the source tables by row position and concatenates their retained
// columns in source order. The time key is column 0 of the first source; later
// sources lose their own time column. Only columns in allowed survive renaming.
// Rows are filtered to the time window and fully empty columns are dropped.
func Merge(sources []models.Table, renames []resolver.RenameMap, allowed models.Set, opts Options) (*Result, error) {
	if len(sources) == 0 {
		return nil, ErrNoFiles
	}
	if allowed.Len() == 0 {
		return nil, ErrNoSelection
	}
	if len(renames) != len(sources) {
		return nil, fmt.Errorf("%w: %d maps for %d sources", ErrRenameCount, len(renames), len(sources))
	}
	w := opts.Window
	if w.Start != nil && w.End != nil && w.Start.After(*w.End) {
		return nil, ErrInvalidWindow
	}

	label := opts.timeColumn()
	res := &Result{}
	var timeKey models.Column
	var parts [][]models.Column

	for i := range sources {
		src := pruneEmpty(&sources[i])
		cols := src.Columns

		if i == 0 {
			if len(cols) == 0 {
				return nil, fmt.Errorf("%s: no columns", sources[i].Name)
			}
			timeKey = models.Column{Name: label, Values: cols[0].Values, Time: cols[0].Time}
			cols = cols[1:]
		} else {
			cols = dropNamed(cols, label)
			if len(cols) > 0 && cols[0].Time {
				cols = cols[1:]
			}
		}

		part := make([]models.Column, 0, len(cols))
		for _, col := range cols {
			name := col.Name
			if target, ok := renames[i][name]; ok {
				name = target
			}
			if !allowed.Has(name) {
				continue
			}
			part = append(part, models.Column{Name: name, Values: col.Values, Time: col.Time})
		}
		parts = append(parts, part)
	}

	keyRows := len(timeKey.Values)
	rows := keyRows
	for i, part := range parts {
		n := sources[i].RowCount()
		if n != keyRows {
			res.Diagnostics = append(res.Diagnostics, models.Diagnostic{
				Kind:    models.DiagColumnAlignment,
				File:    sources[i].Name,
				Message: fmt.Sprintf("has %d rows, time key has %d; rows aligned by position", n, keyRows),
			})
		}
		for _, col := range part {
			if len(col.Values) > rows {
				rows = len(col.Values)
			}
		}
	}

	merged := &models.Table{Columns: []models.Column{padded(timeKey, rows)}}
	seen := map[string]bool{label: true}
	for i, part := range parts {
		for _, col := range part {
			if seen[col.Name] {
				res.Diagnostics = append(res.Diagnostics, models.Diagnostic{
					Kind:    models.DiagDuplicateColumn,
					File:    sources[i].Name,
					Column:  col.Name,
					Message: "column name already present in merged table",
				})
			}
			seen[col.Name] = true
			merged.Columns = append(merged.Columns, padded(col, rows))
		}
	}

	for _, name := range allowed.Sorted() {
		if !seen[name] {
			res.Diagnostics = append(res.Diagnostics, models.Diagnostic{
				Kind:    models.DiagUnmatchedColumn,
				Column:  name,
				Message: "selected column not produced by any source file",
			})
		}
	}

	if !w.IsZero() {
		merged = filterWindow(merged, w)
	}
	// the time key stays at column 0 even when the window leaves no rows
	data := pruneEmpty(&models.Table{Columns: merged.Columns[1:]})
	merged.Columns = append(merged.Columns[:1], data.Columns...)
	res.Table = merged
	return res, nil
}

// TimeRange returns the earliest and latest time across the tables. Each table's
// time key is the column labelled timeColumn, or column 0 when there is none.
// ok is false when no cell parses as a time.
func TimeRange(tables []models.Table, timeColumn string) (first, last time.Time, ok bool) {
	if timeColumn == "" {
		timeColumn = DefaultTimeColumn
	}
	for i := range tables {
		tbl := &tables[i]
		if len(tbl.Columns) == 0 {
			continue
		}
		idx := tbl.Index(timeColumn)
		if idx < 0 {
			idx = 0
		}
		for _, v := range tbl.Columns[idx].Values {
			t, parsed := models.ParseTime(v)
			if !parsed {
				continue
			}
			if !ok || t.Before(first) {
				first = t
			}
			if !ok || t.After(last) {
				last = t
			}
			ok = true
		}
	}
	return first, last, ok
}

// filterWindow keeps the rows whose time key parses and lies inside w.
func filterWindow(tbl *models.Table, w models.TimeWindow) *models.Table {
	var keep []int
	for r, v := range tbl.Columns[0].Values {
		if t, ok := models.ParseTime(v); ok && w.Contains(t) {
			keep = append(keep, r)
		}
	}

	out := &models.Table{Name: tbl.Name, Columns: make([]models.Column, len(tbl.Columns))}
	for i, col := range tbl.Columns {
		values := make([]string, len(keep))
		for j, r := range keep {
			values[j] = col.Values[r]
		}
		out.Columns[i] = models.Column{Name: col.Name, Values: values, Time: col.Time}
	}
	return out
}

// pruneEmpty returns tbl without its fully empty columns.
func pruneEmpty(tbl *models.Table) *models.Table {
	out := &models.Table{Name: tbl.Name}
	for _, col := range tbl.Columns {
		if !col.IsEmpty() {
			out.Columns = append(out.Columns, col)
		}
	}
	return out
}

func dropNamed(cols []models.Column, name string) []models.Column {
	out := cols[:0:0]
	for _, col := range cols {
		if col.Name != name {
			out = append(out, col)
		}
	}
	return out
}

func padded(col models.Column, rows int) models.Column {
	values := make([]string, rows)
	copy(values, col.Values)
	return models.Column{Name: col.Name, Values: values, Time: col.Time}
}
