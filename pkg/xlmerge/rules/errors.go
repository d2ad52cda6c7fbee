package rules

import (
	"errors"
	"fmt"
)

// ErrEmptyRuleTable indicates a rule file without a header row.
var ErrEmptyRuleTable = errors.New("rule table is empty")

// ErrTooFewColumns indicates a rule file narrower than the fixed schema requires.
var ErrTooFewColumns = errors.New("rule table has too few columns")

// RuleLoadError represents a failure to load the rule table.
type RuleLoadError struct {
	Path string
	Row  int // 1-based spreadsheet row, 0 for file-level failures
	Err  error
}

func (e *RuleLoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("rule table %q row %d: %v", e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("rule table %q: %v", e.Path, e.Err)
}

func (e *RuleLoadError) Unwrap() error {
	return e.Err
}
