package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
)

// cropToData cuts rows down to the bounding box of non-empty cells and pads every
// row to the box width. It also returns the 0-based offsets of the box.
func cropToData(rows [][]string) (grid [][]string, minRow, minCol int) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return nil, 0, 0
	}

	width := maxCol - minCol + 1
	grid = make([][]string, 0, maxRow-minRow+1)
	for rowIdx := minRow; rowIdx <= maxRow; rowIdx++ {
		out := make([]string, width)
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			out[colIdx-minCol] = strings.TrimSpace(row[colIdx])
		}
		grid = append(grid, out)
	}
	return grid, minRow, minCol
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// buildTable turns a header row and data rows of equal width into a table.
// Blank headers become "Unnamed: N" and repeated headers get a ".N" suffix.
func buildTable(header []string, data [][]string) (*models.Table, []models.Diagnostic) {
	var diags []models.Diagnostic
	tbl := &models.Table{Columns: make([]models.Column, len(header))}

	seen := make(map[string]int)
	for ci, name := range header {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", ci)
			diags = append(diags, models.Diagnostic{
				Kind:    models.DiagColumnAlignment,
				Column:  name,
				Message: "column has data but no header",
			})
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}

		values := make([]string, len(data))
		for ri, row := range data {
			if ci < len(row) {
				values[ri] = row[ci]
			}
		}
		tbl.Columns[ci] = models.Column{Name: name, Values: values}
	}

	return tbl, diags
}
