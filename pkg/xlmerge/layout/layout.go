// Package layout derives presentation instructions for an annotated table:
// node column groups, merged range headers, colour-scale runs and column widths.
package layout

import (
	"github.com/mattn/go-runewidth"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/annotate"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/merger"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/rules"
)

// Options configures the planner. Zero values fall back to the defaults.
type Options struct {
	// TimeColumn is the label of the time key column.
	TimeColumn string
	// Markers names the marker columns added by annotate.
	Markers annotate.Markers
	// MinWidth and MaxWidth bound column widths in characters.
	MinWidth float64
	MaxWidth float64
	// SampleRows is the number of data rows measured for column widths.
	SampleRows int
}

// DefaultOptions returns the standard planner settings.
func DefaultOptions() Options {
	return Options{
		TimeColumn: merger.DefaultTimeColumn,
		Markers:    annotate.DefaultMarkers(),
		MinWidth:   10,
		MaxWidth:   50,
		SampleRows: 100,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TimeColumn == "" {
		o.TimeColumn = d.TimeColumn
	}
	if o.Markers.Suffix == "" {
		o.Markers = d.Markers
	}
	if o.MinWidth <= 0 {
		o.MinWidth = d.MinWidth
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = d.MaxWidth
	}
	if o.SampleRows <= 0 {
		o.SampleRows = d.SampleRows
	}
	return o
}

// Plan computes the layout of tbl using the node and range information of rt.
func Plan(tbl *models.Table, rt *rules.Table, opts Options) models.LayoutPlan {
	opts = opts.withDefaults()
	return models.LayoutPlan{
		Groups:      Groups(tbl, rt, opts.Markers),
		HeaderSpans: HeaderSpans(tbl, rt, opts.Markers),
		Runs:        Runs(tbl, opts),
		Widths:      Widths(tbl, opts),
		ColorScale:  models.DefaultColorScale(),
	}
}

// Groups partitions the columns into contiguous node bands. A column whose base
// name has no node neither opens nor closes a band. The last open band ends at
// the last column.
func Groups(tbl *models.Table, rt *rules.Table, markers annotate.Markers) []models.NodeGroup {
	var groups []models.NodeGroup
	var cur *models.NodeGroup

	for i, col := range tbl.Columns {
		node, ok := rt.NodeOf(markers.BaseName(col.Name))
		if !ok || node == "" {
			continue
		}
		if cur != nil && cur.Node == node {
			continue
		}
		if cur != nil {
			cur.End = i - 1
			groups = append(groups, *cur)
		}
		cur = &models.NodeGroup{Node: node, Start: i}
	}
	if cur != nil {
		cur.End = len(tbl.Columns) - 1
		groups = append(groups, *cur)
	}
	return groups
}

// HeaderSpans returns one merged header per column with range text, covering
// the value column and its marker column.
func HeaderSpans(tbl *models.Table, rt *rules.Table, markers annotate.Markers) []models.HeaderSpan {
	var spans []models.HeaderSpan
	done := make(map[string]bool)

	for i, col := range tbl.Columns {
		base := markers.BaseName(col.Name)
		if done[base] {
			continue
		}
		text, ok := rt.RangeOf(base)
		if !ok || text == "" {
			continue
		}
		done[base] = true

		span := models.HeaderSpan{Column: base, Text: text, Start: i, End: i}
		for j := i + 1; j < len(tbl.Columns); j++ {
			if markers.BaseName(tbl.Columns[j].Name) != base {
				break
			}
			span.End = j
		}
		spans = append(spans, span)
	}
	return spans
}

// Runs finds the stretches of non-zero numeric values in every data column.
// The time key and marker columns are skipped.
func Runs(tbl *models.Table, opts Options) []models.ColumnRuns {
	opts = opts.withDefaults()
	var out []models.ColumnRuns
	for i, col := range tbl.Columns {
		if col.Time || col.Name == opts.TimeColumn || opts.Markers.IsMarker(col.Name) {
			continue
		}
		runs := NonZeroRuns(col.Values)
		if len(runs) == 0 {
			continue
		}
		out = append(out, models.ColumnRuns{Column: i, Name: col.Name, Runs: runs})
	}
	return out
}

// NonZeroRuns returns the maximal runs of numeric non-zero cells. Zero,
// non-numeric and missing cells end a run.
func NonZeroRuns(values []string) []models.Run {
	var runs []models.Run
	start := -1
	for i, v := range values {
		f, ok := models.ParseNumber(v)
		if ok && f != 0 {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, models.Run{Start: start, End: i - 1})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, models.Run{Start: start, End: len(values) - 1})
	}
	return runs
}

// cellWidth measures text in terminal cells; ambiguous-width runes such as
// Cyrillic count as one regardless of the locale.
var cellWidth = &runewidth.Condition{EastAsianWidth: false}

// Widths sizes each column to its widest header or sampled cell plus padding.
// Wide runes (CJK) count as two characters.
func Widths(tbl *models.Table, opts Options) []float64 {
	opts = opts.withDefaults()
	widths := make([]float64, len(tbl.Columns))
	for i, col := range tbl.Columns {
		n := cellWidth.StringWidth(col.Name)
		for r, v := range col.Values {
			if r >= opts.SampleRows {
				break
			}
			if l := cellWidth.StringWidth(v); l > n {
				n = l
			}
		}
		w := float64(n + 2)
		if w < opts.MinWidth {
			w = opts.MinWidth
		}
		if w > opts.MaxWidth {
			w = opts.MaxWidth
		}
		widths[i] = w
	}
	return widths
}
