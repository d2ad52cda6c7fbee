package rules

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
)

// unitKeyword maps a parameter name fragment to its display unit.
type unitKeyword struct {
	keyword string
	unit    string
}

// unitKeywords is checked in order; the first fragment found in the parameter name wins.
var unitKeywords = []unitKeyword{
	{"перепад давления", "кгс/см2"},
	{"расход", "тыс. м3/ч"},
	{"температура", "°C"},
}

// InferUnit guesses the unit of a parameter from its name. It returns "" when nothing matches.
func InferUnit(name string) string {
	lower := strings.ToLower(name)
	for _, kw := range unitKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.unit
		}
	}
	return ""
}

// unitOf returns the explicit unit of a row, falling back to inference from the
// parameter name (or the target name when the parameter is blank).
func unitOf(row models.RuleRow) string {
	if row.Unit != "" {
		return row.Unit
	}
	name := row.Parameter
	if name == "" {
		name = row.TargetColumn
	}
	return InferUnit(name)
}

// displayRange renders the header text for a row with both limits, e.g. "(10 ... 50 °C)".
func displayRange(row models.RuleRow) string {
	if unit := unitOf(row); unit != "" {
		return fmt.Sprintf("(%s ... %s %s)", row.MinText, row.MaxText, unit)
	}
	return fmt.Sprintf("(%s ... %s)", row.MinText, row.MaxText)
}
