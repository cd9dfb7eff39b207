package services

import (
	"strconv"
	"sync"

	"spacex-dashboard/models"
)

// OutcomeBinding computes the proportions chart for a site selection.
func OutcomeBinding(ds *Dataset, site string) models.ChartSpec {
	return RenderOutcomeChart(SummarizeOutcomes(ds.Records(), site), site)
}

// ScatterBinding computes the scatter chart for a site and payload range.
func ScatterBinding(ds *Dataset, site string, rng models.PayloadRange) models.ChartSpec {
	return RenderScatterChart(FilterPayload(ds.Records(), site, rng), site)
}

// ViewController owns the control state of one dashboard session and
// recomputes the charts from it. Every call recomputes from scratch.
type ViewController struct {
	dataset *Dataset

	mu    sync.Mutex
	state models.SelectionState
}

// NewViewController starts a session in the default selection.
func NewViewController(ds *Dataset) *ViewController {
	return &ViewController{dataset: ds, state: models.DefaultSelection()}
}

// State returns a copy of the current selection.
func (vc *ViewController) State() models.SelectionState {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.state
}

// SelectSite applies a new site selection and returns the recomputed
// outcome and scatter charts. Sites not present in the dataset are
// rejected with *models.InvalidSelectionError and leave the state as is.
func (vc *ViewController) SelectSite(site string) (models.ChartSpec, models.ChartSpec, error) {
	if err := vc.checkSite(site); err != nil {
		return models.ChartSpec{}, models.ChartSpec{}, err
	}

	vc.mu.Lock()
	vc.state.Site = site
	state := vc.state
	vc.mu.Unlock()

	return OutcomeBinding(vc.dataset, state.Site), ScatterBinding(vc.dataset, state.Site, state.Payload), nil
}

// SelectPayloadRange applies a new payload range and returns the
// recomputed scatter chart. Ranges with Min > Max, a negative bound or NaN
// are rejected with *models.InvalidSelectionError.
func (vc *ViewController) SelectPayloadRange(rng models.PayloadRange) (models.ChartSpec, error) {
	if err := checkRange(rng); err != nil {
		return models.ChartSpec{}, err
	}

	vc.mu.Lock()
	vc.state.Payload = rng
	state := vc.state
	vc.mu.Unlock()

	return ScatterBinding(vc.dataset, state.Site, state.Payload), nil
}

// Select replaces site and payload range together. Both are validated
// before either is applied, so a rejected selection changes nothing.
func (vc *ViewController) Select(next models.SelectionState) (models.ChartSpec, models.ChartSpec, error) {
	if err := vc.checkSite(next.Site); err != nil {
		return models.ChartSpec{}, models.ChartSpec{}, err
	}
	if err := checkRange(next.Payload); err != nil {
		return models.ChartSpec{}, models.ChartSpec{}, err
	}

	vc.mu.Lock()
	vc.state = next
	vc.mu.Unlock()

	return OutcomeBinding(vc.dataset, next.Site), ScatterBinding(vc.dataset, next.Site, next.Payload), nil
}

func (vc *ViewController) checkSite(site string) error {
	if vc.dataset.HasSite(site) {
		return nil
	}
	return &models.InvalidSelectionError{
		Field:  "site",
		Value:  site,
		Reason: "not a known launch site",
	}
}

func checkRange(rng models.PayloadRange) error {
	if rng.Valid() {
		return nil
	}
	return &models.InvalidSelectionError{
		Field:  "payload range",
		Value:  formatRange(rng),
		Reason: "want 0 <= min <= max",
	}
}

// OutcomeChart recomputes the proportions chart for the current state.
func (vc *ViewController) OutcomeChart() models.ChartSpec {
	state := vc.State()
	return OutcomeBinding(vc.dataset, state.Site)
}

// ScatterChart recomputes the scatter chart for the current state.
func (vc *ViewController) ScatterChart() models.ChartSpec {
	state := vc.State()
	return ScatterBinding(vc.dataset, state.Site, state.Payload)
}

// Filtered returns the records behind the current scatter chart.
func (vc *ViewController) Filtered() models.FilteredPayloadSet {
	state := vc.State()
	return FilterPayload(vc.dataset.Records(), state.Site, state.Payload)
}

func formatRange(rng models.PayloadRange) string {
	return "[" + strconv.FormatFloat(rng.Min, 'f', -1, 64) + ", " +
		strconv.FormatFloat(rng.Max, 'f', -1, 64) + "]"
}
