package xlmerge

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/annotate"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/layout"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/merger"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/output"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/resolver"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/rules"
)

// Result is an annotated merged table with its layout plan.
type Result struct {
	Table        *models.Table            `json:"table"`
	Plan         models.LayoutPlan        `json:"plan"`
	ColumnToNode map[string]string        `json:"column_to_node"`
	Limits       map[string]models.Limits `json:"limits,omitempty"`
	Diagnostics  []models.Diagnostic      `json:"diagnostics,omitempty"`

	render output.Options
}

// WriteXLSX renders the result to an xlsx workbook at path.
func (r *Result) WriteXLSX(path string) error {
	if err := output.WriteXLSX(path, r.Table, r.Plan, r.render); err != nil {
		return NewSourceError(path, "write", err)
	}
	return nil
}

// Merge reads the source files, merges the selected columns and annotates the result.
// The selection is checked before any file is read.
func Merge(paths []string, opts Options) (*Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	sel := opts.Selection
	if sel.Parameters.Len() == 0 || sel.Nodes.Len() == 0 {
		return nil, ErrNoSelection
	}
	if w := sel.Window; w.Start != nil && w.End != nil && w.Start.After(*w.End) {
		return nil, ErrInvalidWindow
	}

	log := opts.logger()
	rt, err := rules.Load(opts.RulesPath)
	if err != nil {
		return nil, err
	}
	diags := rt.Diagnostics()

	allowed := resolver.AllowedColumns(sel.Parameters, sel.Nodes, rt)
	if allowed.Len() == 0 {
		return nil, ErrNoSelection
	}
	log.Debug("selection resolved",
		slog.Int("parameters", sel.Parameters.Len()),
		slog.Int("nodes", sel.Nodes.Len()),
		slog.Int("columns", allowed.Len()))

	sources, readDiags, err := readSources(paths)
	if err != nil {
		return nil, err
	}
	diags = append(diags, readDiags...)

	renames := make([]resolver.RenameMap, len(paths))
	for i, path := range paths {
		renames[i] = resolver.ResolveForFile(path, rt, sel.Parameters)
		log.Debug("source read",
			slog.String("file", filepath.Base(path)),
			slog.Int("columns", len(sources[i].Columns)),
			slog.Int("rows", sources[i].RowCount()),
			slog.Int("renames", len(renames[i])))
	}

	merged, err := merger.Merge(sources, renames, allowed, merger.Options{
		TimeColumn: opts.timeColumn(),
		Window:     sel.Window,
	})
	if err != nil {
		return nil, err
	}
	diags = append(diags, merged.Diagnostics...)

	annotated, nodes := annotate.Annotate(merged.Table, rt, opts.markers())
	plan := layout.Plan(annotated, rt, opts.layoutOptions())

	logDiagnostics(log, diags)
	log.Info("merge complete",
		slog.Int("files", len(paths)),
		slog.Int("columns", len(annotated.Columns)),
		slog.Int("rows", annotated.RowCount()))

	return &Result{
		Table:        annotated,
		Plan:         plan,
		ColumnToNode: nodes,
		Limits:       tableLimits(annotated, rt),
		Diagnostics:  diags,
		render:       opts.Render,
	}, nil
}

func logDiagnostics(log *slog.Logger, diags []models.Diagnostic) {
	for _, d := range diags {
		level := slog.LevelWarn
		if d.Kind == models.DiagUnmatchedColumn {
			level = slog.LevelInfo
		}
		log.Log(context.Background(), level, d.Message,
			slog.String("kind", string(d.Kind)),
			slog.String("file", d.File),
			slog.Int("row", d.Row),
			slog.String("column", d.Column))
	}
}

// DefaultSelection selects every parameter of the rule table and every node
// whose rules match one of the files.
func DefaultSelection(rt *rules.Table, files []string) models.Selection {
	return models.Selection{
		Parameters: models.NewSet(rt.Parameters()...),
		Nodes:      models.NewSet(resolver.NodesForFiles(files, rt)...),
	}
}

// Parameters lists the parameters of a rule table in order of first appearance.
func Parameters(rulesPath string) ([]string, error) {
	rt, err := rules.Load(rulesPath)
	if err != nil {
		return nil, err
	}
	return rt.Parameters(), nil
}

// Nodes lists the nodes whose rules match any of the files.
func Nodes(rulesPath string, files []string) ([]string, error) {
	rt, err := rules.Load(rulesPath)
	if err != nil {
		return nil, err
	}
	return resolver.NodesForFiles(files, rt), nil
}

// TimeRange reads the files and returns the earliest and latest time key.
// ok is false when no file has a parseable time.
func TimeRange(files []string, timeColumn string) (first, last time.Time, ok bool, err error) {
	tables, _, err := readSources(files)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	first, last, ok = merger.TimeRange(tables, timeColumn)
	return first, last, ok, nil
}

// tableLimits returns the limits of the columns present in tbl.
func tableLimits(tbl *models.Table, rt *rules.Table) map[string]models.Limits {
	out := make(map[string]models.Limits)
	for name, l := range rt.ParamLimits() {
		if tbl.Index(name) >= 0 {
			out[name] = l
		}
	}
	return out
}
