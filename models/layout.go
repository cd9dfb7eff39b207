package models

// ControlKind is the type of an input control on the dashboard.
type ControlKind string

const (
	ControlDropdown    ControlKind = "dropdown"
	ControlRangeSlider ControlKind = "range_slider"
)

// Layout describes the dashboard page as data: a heading, the input
// controls and the regions charts are drawn into.
type Layout struct {
	Title    string    `json:"title"`
	Controls []Control `json:"controls"`
	Regions  []Region  `json:"regions"`
}

// Control is one input control. Dropdowns use Options and Value; range
// sliders use Min, Max, Step, Marks and Range.
type Control struct {
	ID          string      `json:"id"`
	Kind        ControlKind `json:"kind"`
	Label       string      `json:"label"`
	Placeholder string      `json:"placeholder,omitempty"`
	Options     []string    `json:"options,omitempty"`
	Value       string      `json:"value,omitempty"`

	Min   float64       `json:"min,omitempty"`
	Max   float64       `json:"max,omitempty"`
	Step  float64       `json:"step,omitempty"`
	Marks []float64     `json:"marks,omitempty"`
	Range *PayloadRange `json:"range,omitempty"`
}

// Region is a display area bound to one chart.
type Region struct {
	ID    string    `json:"id"`
	Chart ChartKind `json:"chart"`
	Width string    `json:"width"`
}
