package models

// ChartKind identifies how a ChartSpec is drawn.
type ChartKind string

const (
	ChartPie     ChartKind = "pie"
	ChartScatter ChartKind = "scatter"
)

// ChartSpec is a renderer-agnostic description of a chart.
type ChartSpec struct {
	Kind   ChartKind    `json:"kind"`
	Title  string       `json:"title"`
	XLabel string       `json:"x_label,omitempty"`
	YLabel string       `json:"y_label,omitempty"`
	Slices []ChartSlice `json:"slices,omitempty"`
	Points []ChartPoint `json:"points,omitempty"`
	// Groups lists the distinct point groups in first-appearance order.
	Groups []string `json:"groups,omitempty"`
}

// Empty reports whether the chart carries no data.
func (c ChartSpec) Empty() bool {
	return len(c.Slices) == 0 && len(c.Points) == 0
}

// ChartSlice is one slice of a pie chart. Color is empty when the renderer
// should pick one.
type ChartSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// ChartPoint is one point of a scatter chart.
type ChartPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Group string  `json:"group"`
	Site  string  `json:"site"`
}
