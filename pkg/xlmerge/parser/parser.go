// Package parser reads spreadsheet files into tables.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat indicates a file extension the readers cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format identifies a supported file kind.
type Format int

const (
	FormatUnknown Format = iota
	FormatXLSX
	FormatCSV
)

// DetectFormat returns the format implied by the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".csv":
		return FormatCSV
	default:
		return FormatUnknown
	}
}

// ReadFile reads the first sheet of an xlsx file, or a CSV file, into a table.
func ReadFile(path string) (*models.Table, []models.Diagnostic, error) {
	var (
		tbl   *models.Table
		diags []models.Diagnostic
		err   error
	)
	switch DetectFormat(path) {
	case FormatXLSX:
		tbl, diags, err = readXLSX(path)
	case FormatCSV:
		tbl, diags, err = ReadCSV(path)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, nil, err
	}

	tbl.Name = filepath.Base(path)
	for i := range diags {
		diags[i].File = tbl.Name
	}
	return tbl, diags, nil
}

// ReadGrid returns the raw cell values of the first sheet of an xlsx file, or the records of a CSV file.
func ReadGrid(path string) ([][]string, error) {
	switch DetectFormat(path) {
	case FormatXLSX:
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadRows(f, FirstSheet(f))
	case FormatCSV:
		return ReadCSVRows(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FirstSheet returns the name of the first worksheet.
func FirstSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	return sheets[0]
}

func readXLSX(path string) (*models.Table, []models.Diagnostic, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheet := FirstSheet(f)
	if sheet == "" {
		return &models.Table{}, nil, nil
	}
	return ReadSheet(f, sheet)
}
