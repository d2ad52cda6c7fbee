package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/parser"
	"github.com/xuri/excelize/v2"
)

// Rows of the rendered sheet (1-based).
const (
	RangeRow     = 1 // merged range headers
	HeaderRow    = 2 // column names
	FirstDataRow = 3
)

// Options configures the rendered workbook.
type Options struct {
	// SheetName is the worksheet name (default "Sheet1").
	SheetName string
	// TimeFormat is the number format of time cells (default "yyyy-mm-dd hh:mm:ss").
	TimeFormat string
}

func (o Options) sheetName() string {
	if o.SheetName == "" {
		return "Sheet1"
	}
	return o.SheetName
}

func (o Options) timeFormat() string {
	if o.TimeFormat == "" {
		return "yyyy-mm-dd hh:mm:ss"
	}
	return o.TimeFormat
}

// WriteXLSX renders the table with its layout plan and atomically writes it to path.
func WriteXLSX(path string, tbl *models.Table, plan models.LayoutPlan, opts Options) error {
	f, err := Render(tbl, plan, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteFileAtomic(path, func(w io.Writer) error {
		return f.Write(w)
	})
}

// Render builds a workbook holding the table formatted according to the plan.
// The caller must close the returned file.
func Render(tbl *models.Table, plan models.LayoutPlan, opts Options) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := opts.sheetName()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := render(f, sheet, tbl, plan, opts); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func render(f *excelize.File, sheet string, tbl *models.Table, plan models.LayoutPlan, opts Options) error {
	if len(tbl.Columns) == 0 {
		return nil
	}

	header := make([]interface{}, len(tbl.Columns))
	for ci, col := range tbl.Columns {
		header[ci] = col.Name
	}
	if err := f.SetSheetRow(sheet, cellName(1, HeaderRow), &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rowCount := tbl.RowCount()
	for ri := 0; ri < rowCount; ri++ {
		vals := make([]interface{}, len(tbl.Columns))
		for ci, col := range tbl.Columns {
			vals[ci] = cellValue(col, ri)
		}
		if err := f.SetSheetRow(sheet, cellName(1, FirstDataRow+ri), &vals); err != nil {
			return fmt.Errorf("write row %d: %w", ri+1, err)
		}
	}

	for _, span := range plan.HeaderSpans {
		start := cellName(span.Start+1, RangeRow)
		if span.End > span.Start {
			if err := f.MergeCell(sheet, start, cellName(span.End+1, RangeRow)); err != nil {
				return fmt.Errorf("merge header %q: %w", span.Column, err)
			}
		}
		if err := f.SetCellStr(sheet, start, span.Text); err != nil {
			return err
		}
	}

	lastRow := HeaderRow + rowCount
	if err := applyStyles(f, sheet, tbl, plan, lastRow, opts.timeFormat()); err != nil {
		return fmt.Errorf("apply styles: %w", err)
	}

	scale := colorScale(plan.ColorScale)
	for _, cr := range plan.Runs {
		for _, run := range cr.Runs {
			ref, err := Area{
				C1: cr.Column + 1, R1: FirstDataRow + run.Start,
				C2: cr.Column + 1, R2: FirstDataRow + run.End,
			}.Ref()
			if err != nil {
				return err
			}
			if err := f.SetConditionalFormat(sheet, ref, scale); err != nil {
				return fmt.Errorf("colour scale %s: %w", ref, err)
			}
		}
	}

	for ci, w := range plan.Widths {
		col, err := excelize.ColumnNumberToName(ci + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      HeaderRow,
		TopLeftCell: cellName(2, FirstDataRow),
		ActivePane:  "bottomRight",
	})
}

// applyStyles sets borders, alignment and number formats column by column.
// Group starts get a thick left edge and group ends a thick right edge; the sheet
// gets a thick top and bottom and a thin line under the column names.
func applyStyles(f *excelize.File, sheet string, tbl *models.Table, plan models.LayoutPlan, lastRow int, timeFormat string) error {
	starts := make(map[int]bool)
	ends := make(map[int]bool)
	for _, g := range plan.Groups {
		starts[g.Start] = true
		ends[g.End] = true
	}

	styles := newStyleCache(f, timeFormat)
	for ci, col := range tbl.Columns {
		base := styleKey{}
		if starts[ci] {
			base.left = borderThick
		}
		if ends[ci] {
			base.right = borderThick
		}

		for _, seg := range rowSegments(lastRow) {
			k := base
			switch {
			case seg[1] == lastRow:
				k.bottom = borderThick
			case seg[0] == HeaderRow:
				k.bottom = borderThin
			}
			if seg[0] == RangeRow {
				k.top = borderThick
			}
			k.time = col.Time && seg[0] >= FirstDataRow

			id, err := styles.get(k)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cellName(ci+1, seg[0]), cellName(ci+1, seg[1]), id); err != nil {
				return err
			}
		}
	}
	return nil
}

// rowSegments splits rows 1..lastRow into runs that share a border pattern.
func rowSegments(lastRow int) [][2]int {
	segs := [][2]int{{RangeRow, RangeRow}, {HeaderRow, HeaderRow}}
	if lastRow > FirstDataRow {
		segs = append(segs, [2]int{FirstDataRow, lastRow - 1})
	}
	if lastRow >= FirstDataRow {
		segs = append(segs, [2]int{lastRow, lastRow})
	}
	return segs
}

func colorScale(cs models.ColorScale) []excelize.ConditionalFormatOptions {
	return []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "num",
		MinValue: strconv.FormatFloat(cs.MinValue, 'f', -1, 64),
		MinColor: "#" + cs.MinColor,
		MidType:  "percentile",
		MidValue: strconv.Itoa(cs.MidPercentile),
		MidColor: "#" + cs.MidColor,
		MaxType:  "max",
		MaxColor: "#" + cs.MaxColor,
	}}
}

func cellValue(col models.Column, row int) interface{} {
	if row >= len(col.Values) || col.Values[row] == "" {
		return nil
	}
	v := col.Values[row]
	if col.Time {
		if t, ok := models.ParseTime(v); ok {
			return t
		}
		return v
	}
	return parser.CellValue(v)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
