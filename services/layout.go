package services

import "spacex-dashboard/models"

// Control and region identifiers used by the page and its scripts.
const (
	SiteDropdownID  = "site-dropdown"
	PayloadSliderID = "payload-slider"
	OutcomeRegionID = "success-pie-chart"
	ScatterRegionID = "success-payload-scatter-chart"
)

// DefaultLayout describes the dashboard page for a session in state.
func DefaultLayout(ds *Dataset, state models.SelectionState) models.Layout {
	rng := state.Payload
	return models.Layout{
		Title: "SpaceX Launch Records Dashboard",
		Controls: []models.Control{
			{
				ID:          SiteDropdownID,
				Kind:        models.ControlDropdown,
				Label:       "Launch Site Selection",
				Placeholder: "Select a Launch Site (Default = All Sites)",
				Options:     ds.Sites(),
				Value:       state.Site,
			},
			{
				ID:    PayloadSliderID,
				Kind:  models.ControlRangeSlider,
				Label: "Payload range (Kg):",
				Min:   models.PayloadSliderMin,
				Max:   models.PayloadSliderMax,
				Step:  models.PayloadSliderStep,
				Marks: append([]float64(nil), models.PayloadSliderMarks...),
				Range: &rng,
			},
		},
		Regions: []models.Region{
			{ID: OutcomeRegionID, Chart: models.ChartPie, Width: "60%"},
			{ID: ScatterRegionID, Chart: models.ChartScatter, Width: "95%"},
		},
	}
}
