package models

// RuleRow is one row of the column naming rule table.
type RuleRow struct {
	// Line is the 1-based spreadsheet row the rule was read from.
	Line int `json:"line"`
	// FilePattern is matched case-insensitively against source file base names.
	FilePattern string `json:"file_pattern"`
	// SourceColumn is the column name as exported in the source file.
	SourceColumn string `json:"source_column"`
	// TargetColumn is the column name in the merged table.
	TargetColumn string `json:"target_column"`
	// Node is the measurement node the column belongs to.
	Node string `json:"node"`
	// Parameter is the physical quantity the column measures.
	Parameter string `json:"parameter"`
	// Min is the lower limit (nil if absent or malformed).
	Min *float64 `json:"min,omitempty"`
	// Max is the upper limit (nil if absent or malformed).
	Max *float64 `json:"max,omitempty"`
	// MinText is the lower limit as written in the rule file.
	MinText string `json:"min_text,omitempty"`
	// MaxText is the upper limit as written in the rule file.
	MaxText string `json:"max_text,omitempty"`
	// Unit is the explicit measurement unit, if any.
	Unit string `json:"unit,omitempty"`
}

// Limits holds the accepted value range of a column.
type Limits struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
