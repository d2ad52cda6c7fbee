package parser

import (
	"strings"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/xuri/excelize/v2"
)

// builtInDateFormats holds the built-in number format IDs that render dates or times.
var builtInDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateCell reports whether the cell's number format displays a date or time.
func isDateCell(f *excelize.File, sheetName, cell string) bool {
	idx, err := f.GetCellStyle(sheetName, cell)
	if err != nil || idx == 0 {
		return false
	}
	style, err := f.GetStyle(idx)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return builtInDateFormats[style.NumFmt]
}

// isDateFormatCode reports whether a custom format code contains date or time tokens.
// Quoted literals, escaped characters and bracketed sections (colours, locales) are ignored.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	cleaned := strings.ToLower(b.String())
	if cleaned == "general" {
		return false
	}
	return strings.ContainsAny(cleaned, "ydhs") || strings.Contains(cleaned, "mm")
}

func is1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

// detectTextTime marks a text column as a time column when every non-empty cell
// parses as a date/time, normalising the cells to the canonical layout.
func detectTextTime(col *models.Column) {
	parsed := make([]string, len(col.Values))
	found := false
	for i, v := range col.Values {
		if v == "" {
			continue
		}
		if _, isNum := models.ParseNumber(v); isNum {
			return
		}
		t, ok := models.ParseTime(v)
		if !ok {
			return
		}
		parsed[i] = models.FormatTime(t)
		found = true
	}
	if !found {
		return
	}
	col.Values = parsed
	col.Time = true
}
