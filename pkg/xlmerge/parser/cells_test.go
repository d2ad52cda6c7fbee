package parser

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/xuri/excelize/v2"
)

func TestReadFileXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Время")
	f.SetCellValue(sheetName, "B1", "FT-101")
	f.SetCellValue(sheetName, "C1", "Status")
	f.SetCellValue(sheetName, "A2", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC))
	f.SetCellValue(sheetName, "B2", 100)
	f.SetCellValue(sheetName, "C2", "ok")
	f.SetCellValue(sheetName, "A3", time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC))
	f.SetCellValue(sheetName, "B3", 200.5)

	tmpFile := filepath.Join(t.TempDir(), "unit1.xlsx")
	require.NoError(t, f.SaveAs(tmpFile))

	tbl, diags, err := ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Empty(t, diags)

	assert.Equal(t, "unit1.xlsx", tbl.Name)
	assert.Equal(t, []string{"Время", "FT-101", "Status"}, tbl.Names())
	assert.Equal(t, 2, tbl.RowCount())

	assert.True(t, tbl.Columns[0].Time)
	assert.Equal(t, []string{"2024-01-02 10:00:00", "2024-01-02 11:00:00"}, tbl.Columns[0].Values)
	assert.False(t, tbl.Columns[1].Time)
	assert.Equal(t, []string{"100", "200.5"}, tbl.Columns[1].Values)
	assert.Equal(t, []string{"ok", ""}, tbl.Columns[2].Values)
}

func TestReadFileCropsAndNamesColumns(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "B2", "A")
	f.SetCellValue(sheetName, "C2", "A")
	f.SetCellValue(sheetName, "B3", 1)
	f.SetCellValue(sheetName, "C3", 2)
	f.SetCellValue(sheetName, "D3", 3)

	tmpFile := filepath.Join(t.TempDir(), "offset.xlsx")
	require.NoError(t, f.SaveAs(tmpFile))

	tbl, diags, err := ReadFile(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "A.1", "Unnamed: 2"}, tbl.Names())
	assert.Equal(t, []string{"3"}, tbl.Columns[2].Values)
	require.Len(t, diags, 1)
	assert.Equal(t, models.DiagColumnAlignment, diags[0].Kind)
	assert.Equal(t, "offset.xlsx", diags[0].File)
}

func TestReadFileCSV(t *testing.T) {
	content := "\xEF\xBB\xBFВремя;Flow;Note\n02.01.2024 10:00;1,5;a\n02.01.2024 11:00;0;\n"
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	tbl, _, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Время", "Flow", "Note"}, tbl.Names())
	assert.True(t, tbl.Columns[0].Time)
	assert.Equal(t, "2024-01-02 10:00:00", tbl.Columns[0].Values[0])
	assert.False(t, tbl.Columns[1].Time)
	assert.Equal(t, []string{"1,5", "0"}, tbl.Columns[1].Values)
}

func TestReadFileUnsupported(t *testing.T) {
	_, _, err := ReadFile("legacy.xls")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"12,5", 12.5},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		assert.Equal(t, tt.expected, result, "parseValue(%q)", tt.input)
	}
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"yyyy-mm-dd hh:mm:ss", true},
		{"dd.mm.yyyy", true},
		{"[$-409]h:mm AM/PM", true},
		{"0.00", false},
		{"#,##0", false},
		{`0.0 "pcs"`, false},
		{"General", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isDateFormatCode(tt.code), "isDateFormatCode(%q)", tt.code)
	}
}
