// Package rules loads and queries the column naming rule table.
//
// The rule table has a fixed positional schema:
//
//	[0] file pattern  [1] source column  [2] target column  [3] node  [4] parameter
//	[5] min           [6] max            [7] unit
//
// The first row is a header. Columns beyond the eighth are ignored.
package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/parser"
)

// Column positions of the rule table.
const (
	ColFilePattern = iota
	ColSource
	ColTarget
	ColNode
	ColParameter
	ColMin
	ColMax
	ColUnit
)

// MinColumns is the number of columns every rule file must have.
const MinColumns = 5

// Table is the parsed rule table with its lookup indices. It is immutable once built.
type Table struct {
	name string
	rows []models.RuleRow

	columnToNode   map[string]string
	paramToColumns map[string]models.Set
	nodeToColumns  map[string]models.Set
	paramLimits    map[string]models.Limits
	paramRanges    map[string]string
	parameters     []string

	diags []models.Diagnostic
}

// Load reads a rule table from an xlsx or CSV file.
func Load(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &RuleLoadError{Path: path, Err: err}
	}
	rows, err := parser.ReadGrid(path)
	if err != nil {
		return nil, &RuleLoadError{Path: path, Err: err}
	}
	return Parse(path, rows)
}

// Parse builds a rule table from raw rows, the first of which is the header.
// Rows with unusable cells are skipped or partially used and reported in Diagnostics.
func Parse(path string, rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, &RuleLoadError{Path: path, Err: ErrEmptyRuleTable}
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	if width < MinColumns {
		return nil, &RuleLoadError{
			Path: path,
			Row:  1,
			Err:  fmt.Errorf("%w: got %d, need at least %d", ErrTooFewColumns, width, MinColumns),
		}
	}

	t := &Table{
		name:           filepath.Base(path),
		columnToNode:   make(map[string]string),
		paramToColumns: make(map[string]models.Set),
		nodeToColumns:  make(map[string]models.Set),
		paramLimits:    make(map[string]models.Limits),
		paramRanges:    make(map[string]string),
	}
	seenParams := make(map[string]bool)

	for i, r := range rows[1:] {
		line := i + 2
		row, ok := t.parseRow(line, r)
		if !ok {
			continue
		}
		t.rows = append(t.rows, row)
		t.index(row)
		if row.Parameter != "" && !seenParams[row.Parameter] {
			seenParams[row.Parameter] = true
			t.parameters = append(t.parameters, row.Parameter)
		}
	}

	return t, nil
}

func cellAt(r []string, idx int) string {
	if idx < len(r) {
		return strings.TrimSpace(r[idx])
	}
	return ""
}

func (t *Table) parseRow(line int, r []string) (models.RuleRow, bool) {
	blank := true
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			blank = false
			break
		}
	}
	if blank {
		return models.RuleRow{}, false
	}

	row := models.RuleRow{
		Line:         line,
		FilePattern:  cellAt(r, ColFilePattern),
		SourceColumn: cellAt(r, ColSource),
		TargetColumn: cellAt(r, ColTarget),
		Node:         cellAt(r, ColNode),
		Parameter:    cellAt(r, ColParameter),
		MinText:      cellAt(r, ColMin),
		MaxText:      cellAt(r, ColMax),
		Unit:         cellAt(r, ColUnit),
	}
	if row.TargetColumn == "" {
		t.warn(line, "", "row has no target column name; skipped")
		return row, false
	}

	if row.MinText != "" {
		if v, ok := models.ParseNumber(row.MinText); ok {
			row.Min = &v
		} else {
			t.warn(line, row.TargetColumn, fmt.Sprintf("invalid min value %q ignored", row.MinText))
		}
	}
	if row.MaxText != "" {
		if v, ok := models.ParseNumber(row.MaxText); ok {
			row.Max = &v
		} else {
			t.warn(line, row.TargetColumn, fmt.Sprintf("invalid max value %q ignored", row.MaxText))
		}
	}
	return row, true
}

// index adds a row to the lookup maps. Rows are indexed in file order, so a
// later row overrides the node, limits and range text of an earlier row with
// the same target column. A later row without limits keeps the earlier limits.
func (t *Table) index(row models.RuleRow) {
	target := row.TargetColumn
	if row.Node != "" {
		t.columnToNode[target] = row.Node
	}
	if row.Node != "" && row.Parameter != "" {
		addTo(t.paramToColumns, row.Parameter, target)
		addTo(t.nodeToColumns, row.Node, target)
	}
	if row.Min != nil && row.Max != nil {
		t.paramLimits[target] = models.Limits{Min: *row.Min, Max: *row.Max}
		t.paramRanges[target] = displayRange(row)
	}
}

func addTo(m map[string]models.Set, key, item string) {
	s, ok := m[key]
	if !ok {
		s = models.NewSet()
		m[key] = s
	}
	s.Add(item)
}

func (t *Table) warn(line int, column, msg string) {
	t.diags = append(t.diags, models.Diagnostic{
		Kind:    models.DiagRowParse,
		File:    t.name,
		Row:     line,
		Column:  column,
		Message: msg,
	})
}

// Name returns the base name of the rule file.
func (t *Table) Name() string { return t.name }

// Rows returns the rule rows in file order.
func (t *Table) Rows() []models.RuleRow {
	return append([]models.RuleRow(nil), t.rows...)
}

// Diagnostics returns the row problems found while parsing.
func (t *Table) Diagnostics() []models.Diagnostic {
	return append([]models.Diagnostic(nil), t.diags...)
}

// Parameters returns the distinct parameter names in order of first appearance.
func (t *Table) Parameters() []string {
	return append([]string(nil), t.parameters...)
}

// NodeOf returns the node a target column belongs to.
func (t *Table) NodeOf(column string) (string, bool) {
	n, ok := t.columnToNode[column]
	return n, ok
}

// LimitsOf returns the min/max limits of a target column.
func (t *Table) LimitsOf(column string) (models.Limits, bool) {
	l, ok := t.paramLimits[column]
	return l, ok
}

// RangeOf returns the range display text of a target column.
func (t *Table) RangeOf(column string) (string, bool) {
	r, ok := t.paramRanges[column]
	return r, ok
}

// ColumnToNode returns a copy of the target column to node index.
func (t *Table) ColumnToNode() map[string]string {
	out := make(map[string]string, len(t.columnToNode))
	for k, v := range t.columnToNode {
		out[k] = v
	}
	return out
}

// ParamLimits returns a copy of the target column to limits index.
func (t *Table) ParamLimits() map[string]models.Limits {
	out := make(map[string]models.Limits, len(t.paramLimits))
	for k, v := range t.paramLimits {
		out[k] = v
	}
	return out
}

// ParamRanges returns a copy of the target column to range text index.
func (t *Table) ParamRanges() map[string]string {
	out := make(map[string]string, len(t.paramRanges))
	for k, v := range t.paramRanges {
		out[k] = v
	}
	return out
}

// ColumnsForParameters returns the union of target columns of the given parameters.
func (t *Table) ColumnsForParameters(params models.Set) models.Set {
	return union(t.paramToColumns, params)
}

// ColumnsForNodes returns the union of target columns of the given nodes.
func (t *Table) ColumnsForNodes(nodes models.Set) models.Set {
	return union(t.nodeToColumns, nodes)
}

func union(index map[string]models.Set, keys models.Set) models.Set {
	out := models.NewSet()
	for k := range keys {
		for col := range index[k] {
			out.Add(col)
		}
	}
	return out
}
