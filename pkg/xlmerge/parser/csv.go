package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSVRows reads all records of a CSV file.
// The delimiter (',' or ';') is guessed from the first line and a UTF-8 BOM is skipped.
func ReadCSVRows(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseCSV(bytes.TrimPrefix(data, utf8BOM))
}

func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = guessDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func guessDelimiter(data []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !sc.Scan() {
		return ','
	}
	line := sc.Text()
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

// ReadCSV reads a CSV file into a table. Text columns whose values are all dates become time columns.
func ReadCSV(path string) (*models.Table, []models.Diagnostic, error) {
	rows, err := ReadCSVRows(path)
	if err != nil {
		return nil, nil, err
	}
	grid, _, _ := cropToData(rows)
	if len(grid) == 0 {
		return &models.Table{}, nil, nil
	}
	tbl, diags := buildTable(grid[0], grid[1:])
	for ci := range tbl.Columns {
		detectTextTime(&tbl.Columns[ci])
	}
	return tbl, diags, nil
}
