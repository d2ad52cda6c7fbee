package models

// NodeGroup is a contiguous band of columns belonging to one node.
type NodeGroup struct {
	// Node is the measurement node name.
	Node string `json:"node"`
	// Start is the first column index (0-based).
	Start int `json:"start"`
	// End is the last column index (0-based, inclusive).
	End int `json:"end"`
}

// HeaderSpan is a merged header cell above a value column and its marker column.
type HeaderSpan struct {
	// Column is the base column name.
	Column string `json:"column"`
	// Text is the range display text written into the merged cell.
	Text string `json:"text"`
	// Start is the first column index (0-based).
	Start int `json:"start"`
	// End is the last column index (0-based, inclusive).
	End int `json:"end"`
}

// Run is a contiguous stretch of non-zero numeric rows.
type Run struct {
	// Start is the first data row (0-based).
	Start int `json:"start"`
	// End is the last data row (0-based, inclusive).
	End int `json:"end"`
}

// ColumnRuns lists the colour-scale runs of one data column.
type ColumnRuns struct {
	// Column is the column index (0-based).
	Column int `json:"column"`
	// Name is the column name.
	Name string `json:"name"`
	// Runs contains the detected runs top to bottom.
	Runs []Run `json:"runs"`
}

// ColorScale describes the 3-stop colour scale applied to each run.
type ColorScale struct {
	MinValue      float64 `json:"min_value"`
	MinColor      string  `json:"min_color"`
	MidPercentile int     `json:"mid_percentile"`
	MidColor      string  `json:"mid_color"`
	MaxColor      string  `json:"max_color"`
}

// DefaultColorScale returns the red/yellow/green scale used for data columns.
// The minimum stop sits just above zero so offline readings stay unscaled.
func DefaultColorScale() ColorScale {
	return ColorScale{
		MinValue:      0.000001,
		MinColor:      "FF0000",
		MidPercentile: 50,
		MidColor:      "FFFF00",
		MaxColor:      "92D050",
	}
}

// LayoutPlan holds the presentation instructions for a merged table.
type LayoutPlan struct {
	// Groups partitions the columns into node bands.
	Groups []NodeGroup `json:"groups,omitempty"`
	// HeaderSpans lists merged range headers in column order.
	HeaderSpans []HeaderSpan `json:"header_spans,omitempty"`
	// Runs lists colour-scale runs per data column.
	Runs []ColumnRuns `json:"runs,omitempty"`
	// Widths holds one width (in characters) per column.
	Widths []float64 `json:"widths,omitempty"`
	// ColorScale is the scale applied to every run.
	ColorScale ColorScale `json:"color_scale"`
}
