package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads a worksheet into a table.
// The first row of the used range is the header; date-formatted columns become time columns.
func ReadSheet(f *excelize.File, sheetName string) (*models.Table, []models.Diagnostic, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, err
	}

	grid, minRow, minCol := cropToData(rows)
	if len(grid) == 0 {
		return &models.Table{}, nil, nil
	}

	tbl, diags := buildTable(grid[0], grid[1:])

	date1904 := is1904(f)
	for ci := range tbl.Columns {
		col := &tbl.Columns[ci]
		ri := firstValue(col.Values)
		if ri < 0 {
			continue
		}
		// 1-based sheet coordinates: header sits at minRow+1, data starts one row below.
		cell, err := excelize.CoordinatesToCellName(minCol+ci+1, minRow+ri+2)
		if err != nil || !isDateCell(f, sheetName, cell) {
			continue
		}
		convertSerials(col, date1904)
	}
	for ci := range tbl.Columns {
		if !tbl.Columns[ci].Time {
			detectTextTime(&tbl.Columns[ci])
		}
	}

	return tbl, diags, nil
}

// ReadRows returns the raw cell values of a sheet. Number formats are ignored so
// that a limit styled "#,##0" reads as "1000", not "1,000".
func ReadRows(f *excelize.File, sheetName string) ([][]string, error) {
	return f.GetRows(sheetName, excelize.Options{RawCellValue: true})
}

// convertSerials rewrites spreadsheet date serials in col to canonical time text.
func convertSerials(col *models.Column, date1904 bool) {
	for i, v := range col.Values {
		if v == "" {
			continue
		}
		serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			continue
		}
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			continue
		}
		col.Values[i] = models.FormatTime(t.Round(time.Second))
	}
	col.Time = true
}

func firstValue(values []string) int {
	for i, v := range values {
		if v != "" {
			return i
		}
	}
	return -1
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, ok := models.ParseNumber(s); ok {
		return f
	}
	return s
}

// CellValue converts a table cell to the value written into a worksheet.
// Numbers become numeric cells so that conditional formats apply to them.
func CellValue(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return parseValue(strings.TrimSpace(s))
}
