package services

import (
	"sort"

	"spacex-dashboard/models"
)

// Chart titles and axis labels.
const (
	TitleAllSitesOutcome = "Total Success Launches by Site"
	TitleSiteOutcomePfx  = "Success Launches at "
	// The scatter title does not follow the site selection.
	TitleScatter = "Correlation between Payload and Success for All Sites"

	LabelPayload = "Payload Mass (kg)"
	LabelOutcome = "class"
)

// Fixed slice colours for the single-site outcome chart.
const (
	ColorFailure = "red"
	ColorSuccess = "blue"
)

// RenderOutcomeChart describes the proportions chart for summary.
func RenderOutcomeChart(summary models.SiteOutcomeSummary, site string) models.ChartSpec {
	if site == models.AllSites {
		spec := models.ChartSpec{Kind: models.ChartPie, Title: TitleAllSitesOutcome}
		labels := make([]string, 0, len(summary.Totals))
		for label := range summary.Totals {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			spec.Slices = append(spec.Slices, models.ChartSlice{
				Label: label,
				Value: float64(summary.Totals[label]),
			})
		}
		return spec
	}

	spec := models.ChartSpec{Kind: models.ChartPie, Title: TitleSiteOutcomePfx + site}
	for _, bucket := range []struct {
		label string
		color string
	}{
		{"0", ColorFailure},
		{"1", ColorSuccess},
	} {
		n, ok := summary.Totals[bucket.label]
		if !ok {
			continue
		}
		spec.Slices = append(spec.Slices, models.ChartSlice{
			Label: bucket.label,
			Value: float64(n),
			Color: bucket.color,
		})
	}
	return spec
}

// RenderScatterChart describes the payload/outcome scatter chart for
// filtered. Points are coloured by booster category.
func RenderScatterChart(filtered models.FilteredPayloadSet, site string) models.ChartSpec {
	spec := models.ChartSpec{
		Kind:   models.ChartScatter,
		Title:  TitleScatter,
		XLabel: LabelPayload,
		YLabel: LabelOutcome,
	}

	seen := make(map[string]struct{})
	for _, r := range filtered.Records {
		spec.Points = append(spec.Points, models.ChartPoint{
			X:     r.PayloadMassKg,
			Y:     float64(r.Outcome),
			Group: r.BoosterCategory,
			Site:  r.LaunchSite,
		})
		if _, ok := seen[r.BoosterCategory]; !ok {
			seen[r.BoosterCategory] = struct{}{}
			spec.Groups = append(spec.Groups, r.BoosterCategory)
		}
	}
	return spec
}
