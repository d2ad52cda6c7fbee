package rules

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/output"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/parser"
	"github.com/xuri/excelize/v2"
)

// RangeEntry is the editable range of one target column.
type RangeEntry struct {
	Target string `json:"target"`
	Min    string `json:"min"`
	Max    string `json:"max"`
}

// RangeEdit holds new limit text for a target column. Empty or non-numeric text clears the limit.
type RangeEdit struct {
	Min string
	Max string
}

// RangeEntries lists target columns that have at least one limit, sorted by name.
// Values come from the first row carrying the target.
func (t *Table) RangeEntries() []RangeEntry {
	seen := make(map[string]bool)
	var entries []RangeEntry
	for _, row := range t.rows {
		if seen[row.TargetColumn] {
			continue
		}
		seen[row.TargetColumn] = true
		if row.MinText == "" && row.MaxText == "" {
			continue
		}
		entries = append(entries, RangeEntry{Target: row.TargetColumn, Min: row.MinText, Max: row.MaxText})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Target < entries[j].Target })
	return entries
}

// SaveRanges rewrites the min and max cells of every rule row whose target column
// has an edit. All other cells are left untouched. The file is replaced atomically.
func SaveRanges(path string, edits map[string]RangeEdit) error {
	var err error
	switch parser.DetectFormat(path) {
	case parser.FormatXLSX:
		err = saveRangesXLSX(path, edits)
	case parser.FormatCSV:
		err = saveRangesCSV(path, edits)
	default:
		err = parser.ErrUnsupportedFormat
	}
	if err != nil {
		return &RuleLoadError{Path: path, Err: fmt.Errorf("save ranges: %w", err)}
	}
	return nil
}

// limitValue converts edit text to the value stored in a cell; nil clears the cell.
func limitValue(text string) (float64, bool) {
	return models.ParseNumber(text)
}

func saveRangesXLSX(path string, edits map[string]RangeEdit) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := parser.FirstSheet(f)
	rows, err := parser.ReadRows(f, sheet)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrEmptyRuleTable
	}

	for col, title := range map[int]string{ColMin: "Min", ColMax: "Max"} {
		if cellAt(rows[0], col) == "" {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellStr(sheet, cell, title); err != nil {
				return err
			}
		}
	}

	for i, r := range rows[1:] {
		edit, ok := edits[cellAt(r, ColTarget)]
		if !ok {
			continue
		}
		rowNum := i + 2
		for col, text := range map[int]string{ColMin: edit.Min, ColMax: edit.Max} {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if v, ok := limitValue(text); ok {
				err = f.SetCellFloat(sheet, cell, v, -1, 64)
			} else {
				err = f.SetCellValue(sheet, cell, nil)
			}
			if err != nil {
				return err
			}
		}
	}

	return output.WriteFileAtomic(path, func(w io.Writer) error {
		return f.Write(w)
	})
}

func saveRangesCSV(path string, edits map[string]RangeEdit) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	hasBOM := bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	rows, err := parser.ReadCSVRows(path)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrEmptyRuleTable
	}
	delim := ','
	if first, _, _ := strings.Cut(string(data), "\n"); strings.Count(first, ";") > strings.Count(first, ",") {
		delim = ';'
	}

	for i := range rows {
		if i == 0 {
			continue
		}
		edit, ok := edits[cellAt(rows[i], ColTarget)]
		if !ok {
			continue
		}
		for len(rows[i]) <= ColMax {
			rows[i] = append(rows[i], "")
		}
		rows[i][ColMin] = csvLimit(edit.Min)
		rows[i][ColMax] = csvLimit(edit.Max)
	}

	return output.WriteFileAtomic(path, func(w io.Writer) error {
		if hasBOM {
			if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
				return err
			}
		}
		cw := csv.NewWriter(w)
		cw.Comma = delim
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		return cw.Error()
	})
}

func csvLimit(text string) string {
	if _, ok := limitValue(text); !ok {
		return ""
	}
	return strings.TrimSpace(text)
}
