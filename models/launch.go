package models

import "math"

// AllSites is the site selector value that disables site filtering.
const AllSites = "All"

// Payload slider bounds. The slider is bounded independently of the data.
const (
	PayloadSliderMin  = 0
	PayloadSliderMax  = 10000
	PayloadSliderStep = 1000
)

// PayloadSliderMarks are the labelled ticks of the payload slider.
var PayloadSliderMarks = []float64{0, 2500, 5000, 7500, 10000}

// Outcome values of a launch record.
const (
	OutcomeFailure = 0
	OutcomeSuccess = 1
)

// RawLaunch holds one unparsed row exactly as read from the dataset file.
// It is turned into a LaunchRecord by the cleaner.
type RawLaunch struct {
	Row             int
	LaunchSite      string
	PayloadMass     string
	Outcome         string
	BoosterCategory string
}

// LaunchRecord is one row of the launch dataset. Records are never mutated
// after the dataset is loaded.
type LaunchRecord struct {
	LaunchSite      string  `db:"launch_site" json:"launch_site"`
	PayloadMassKg   float64 `db:"payload_mass_kg" json:"payload_mass_kg"`
	Outcome         int     `db:"outcome" json:"outcome"`
	BoosterCategory string  `db:"booster_category" json:"booster_category"`
}

// Succeeded reports whether the launch outcome is a success.
func (r *LaunchRecord) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// PayloadRange is a closed interval of payload masses in kilograms.
type PayloadRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultPayloadRange covers the whole payload slider.
func DefaultPayloadRange() PayloadRange {
	return PayloadRange{Min: PayloadSliderMin, Max: PayloadSliderMax}
}

// Contains reports whether v lies in the range, both ends inclusive.
func (r PayloadRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Valid reports whether the range is a usable, non-empty interval.
func (r PayloadRange) Valid() bool {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) {
		return false
	}
	return r.Min >= 0 && r.Min <= r.Max
}

// SiteOutcomeSummary is the aggregate behind the proportions chart.
//
// With Site == AllSites, Totals maps each launch site to its number of
// successful launches. For a single site, Totals maps the outcome label
// ("0" or "1") to the number of launches with that outcome.
type SiteOutcomeSummary struct {
	Site   string         `json:"site"`
	Totals map[string]int `json:"totals"`
}

// Total returns the sum of all buckets.
func (s SiteOutcomeSummary) Total() int {
	n := 0
	for _, v := range s.Totals {
		n += v
	}
	return n
}

// FilteredPayloadSet is the subset of records behind the scatter chart.
// Records keep their dataset order.
type FilteredPayloadSet struct {
	Site    string          `json:"site"`
	Range   PayloadRange    `json:"range"`
	Records []*LaunchRecord `json:"records"`
}

// SelectionState is the state of the dashboard controls for one session.
type SelectionState struct {
	Site    string       `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// DefaultSelection is the state a new session starts in.
func DefaultSelection() SelectionState {
	return SelectionState{Site: AllSites, Payload: DefaultPayloadRange()}
}

// PayloadSummary holds descriptive statistics of payload masses.
type PayloadSummary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}
