// Package resolver derives per-file column renames and the set of retained columns from the rule table.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/rules"
	"golang.org/x/text/cases"
)

// RenameMap maps source column names to target column names for one file.
type RenameMap map[string]string

// fold normalises text for case-insensitive comparison.
func fold(s string) string {
	return cases.Fold().String(s)
}

// MatchesFile reports whether a rule file pattern applies to filename.
// The pattern must be non-empty and occur, ignoring case, in the file's base name.
func MatchesFile(pattern, filename string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}
	return strings.Contains(fold(filepath.Base(filename)), fold(pattern))
}

// ResolveForFile returns the renames that apply to filename for the selected parameters.
// When several rows rename the same source column, the later row in the rule table wins.
func ResolveForFile(filename string, rt *rules.Table, parameters models.Set) RenameMap {
	renames := make(RenameMap)
	for _, row := range rt.Rows() {
		if row.SourceColumn == "" || row.TargetColumn == "" || row.Parameter == "" {
			continue
		}
		if !parameters.Has(row.Parameter) || !MatchesFile(row.FilePattern, filename) {
			continue
		}
		renames[row.SourceColumn] = row.TargetColumn
	}
	return renames
}

// AllowedColumns returns the target columns selected by both facets: a column is kept
// only if one of its parameters and one of its nodes are selected. Narrowing either
// selection can only shrink the result.
func AllowedColumns(parameters, nodes models.Set, rt *rules.Table) models.Set {
	byParam := rt.ColumnsForParameters(parameters)
	byNode := rt.ColumnsForNodes(nodes)

	allowed := models.NewSet()
	for col := range byParam {
		if byNode.Has(col) {
			allowed.Add(col)
		}
	}
	return allowed
}

// NodesForFiles returns the sorted nodes of rule rows whose pattern matches any of the files.
func NodesForFiles(files []string, rt *rules.Table) []string {
	nodes := models.NewSet()
	for _, row := range rt.Rows() {
		if row.Node == "" {
			continue
		}
		for _, file := range files {
			if MatchesFile(row.FilePattern, file) {
				nodes.Add(row.Node)
				break
			}
		}
	}
	return nodes.Sorted()
}
