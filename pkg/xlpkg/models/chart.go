package models

// ChartSeries holds the formula references behind one plotted series.
type ChartSeries struct {
	Name      string `json:"name"`
	NameRange string `json:"name_range,omitempty"`
	XRange    string `json:"x_range,omitempty"`
	YRange    string `json:"y_range,omitempty"`
}

// Chart describes a chart part placed on a sheet through a graphic frame.
//
// L and T are pixel offsets from the frame transform. W and H are only set
// in verbose mode. Anchor is the cell under the frame's top-left corner.
type Chart struct {
	Name       string        `json:"name"`
	Path       string        `json:"path,omitempty"`
	ChartType  string        `json:"chart_type"`
	Title      string        `json:"title,omitempty"`
	YAxisTitle string        `json:"y_axis_title,omitempty"`
	YAxisRange []float64     `json:"y_axis_range,omitempty"`
	Series     []ChartSeries `json:"series"`
	Anchor     string        `json:"anchor,omitempty"`
	L          int           `json:"l"`
	T          int           `json:"t"`
	W          *int          `json:"w,omitempty"`
	H          *int          `json:"h,omitempty"`
}
