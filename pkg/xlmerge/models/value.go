package models

import (
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the canonical layout used for time cells.
const TimeLayout = "2006-01-02 15:04:05"

// timeLayouts lists accepted layouts for time cells and window bounds.
var timeLayouts = []string{
	TimeLayout,
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseNumber parses a cell as a number.
// Surrounding whitespace is ignored and a comma is accepted as the decimal separator.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseTime parses a cell as a date/time using the accepted layouts.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTime renders t in the canonical layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
