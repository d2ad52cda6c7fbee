// Package xlmerge merges time-indexed spreadsheet exports into one annotated workbook
// driven by a column naming rule table.
package xlmerge

import (
	"log/slog"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/annotate"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/layout"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/merger"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/output"
)

// Options configures a merge.
type Options struct {
	// RulesPath is the rule table file (.xlsx or .csv).
	RulesPath string
	// TimeColumn is the label of the time key column.
	TimeColumn string
	// Selection holds the chosen parameters, nodes and time window.
	Selection models.Selection
	// Markers names the out-of-range marker columns.
	Markers annotate.Markers
	// Layout tunes column widths. Its TimeColumn and Markers are taken from these options.
	Layout layout.Options
	// Render configures the written workbook.
	Render output.Options
	// Logger receives progress and diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default merge options. The selection is empty and must be filled in.
func DefaultOptions() Options {
	return Options{
		TimeColumn: merger.DefaultTimeColumn,
		Markers:    annotate.DefaultMarkers(),
		Layout:     layout.DefaultOptions(),
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) timeColumn() string {
	if o.TimeColumn != "" {
		return o.TimeColumn
	}
	return merger.DefaultTimeColumn
}

func (o Options) markers() annotate.Markers {
	if o.Markers.Suffix != "" {
		return o.Markers
	}
	return annotate.DefaultMarkers()
}

func (o Options) layoutOptions() layout.Options {
	lo := o.Layout
	lo.TimeColumn = o.timeColumn()
	lo.Markers = o.markers()
	return lo
}
