package models

import "fmt"

// DiagnosticKind classifies a non-fatal problem found while merging.
type DiagnosticKind string

const (
	// DiagRowParse marks a rule row that was skipped or partially used.
	DiagRowParse DiagnosticKind = "row_parse"
	// DiagColumnAlignment marks a source file whose shape did not line up with the others.
	DiagColumnAlignment DiagnosticKind = "column_alignment"
	// DiagDuplicateColumn marks a column name that appears more than once in the output.
	DiagDuplicateColumn DiagnosticKind = "duplicate_column"
	// DiagUnmatchedColumn marks a selected column that no source file produced.
	DiagUnmatchedColumn DiagnosticKind = "unmatched_column"
)

// Diagnostic describes a warning collected during an operation.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	File    string         `json:"file,omitempty"`
	Row     int            `json:"row,omitempty"`
	Column  string         `json:"column,omitempty"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	loc := d.File
	if d.Row > 0 {
		loc = fmt.Sprintf("%s:%d", loc, d.Row)
	}
	if d.Column != "" {
		loc = fmt.Sprintf("%s [%s]", loc, d.Column)
	}
	return fmt.Sprintf("%s %s: %s", d.Kind, loc, d.Message)
}
