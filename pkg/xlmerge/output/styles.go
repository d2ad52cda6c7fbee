package output

import (
	"github.com/xuri/excelize/v2"
)

// Border line styles as numbered by excelize.
const (
	borderNone  = 0
	borderThin  = 1
	borderThick = 5
)

// styleKey identifies one combination of borders and number format.
type styleKey struct {
	left, right, top, bottom int
	time                     bool
}

// styleCache creates each distinct cell style once per workbook.
type styleCache struct {
	f          *excelize.File
	timeFormat string
	ids        map[styleKey]int
}

func newStyleCache(f *excelize.File, timeFormat string) *styleCache {
	return &styleCache{f: f, timeFormat: timeFormat, ids: make(map[styleKey]int)}
}

func (c *styleCache) get(k styleKey) (int, error) {
	if id, ok := c.ids[k]; ok {
		return id, nil
	}

	style := &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}
	for _, b := range []struct {
		side  string
		style int
	}{
		{"left", k.left}, {"right", k.right}, {"top", k.top}, {"bottom", k.bottom},
	} {
		if b.style != borderNone {
			style.Border = append(style.Border, excelize.Border{Type: b.side, Color: "000000", Style: b.style})
		}
	}
	if k.time {
		format := c.timeFormat
		style.CustomNumFmt = &format
	}

	id, err := c.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	c.ids[k] = id
	return id, nil
}
