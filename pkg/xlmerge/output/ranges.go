package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Area represents cell coordinate bounds on the rendered sheet.
type Area struct {
	// R1 is the start row (1-based).
	R1 int
	// C1 is the start column (1-based).
	C1 int
	// R2 is the end row (1-based, inclusive).
	R2 int
	// C2 is the end column (1-based, inclusive).
	C2 int
}

// Ref returns the area as an A1-style range such as "B3:B10".
func (a Area) Ref() (string, error) {
	start, err := excelize.CoordinatesToCellName(a.C1, a.R1)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(a.C2, a.R2)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", start, end), nil
}
