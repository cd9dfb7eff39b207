package services

import (
	"strconv"

	"github.com/montanaflynn/stats"

	"spacex-dashboard/models"
)

// SummarizeOutcomes aggregates records for the proportions chart.
//
// For models.AllSites it sums outcomes per launch site, giving the number
// of successful launches per site. For a single site it counts that site's
// records per outcome value, keyed "0" and "1". A site without records
// yields an empty summary.
func SummarizeOutcomes(records []*models.LaunchRecord, site string) models.SiteOutcomeSummary {
	summary := models.SiteOutcomeSummary{Site: site, Totals: make(map[string]int)}

	if site == models.AllSites {
		for _, r := range records {
			summary.Totals[r.LaunchSite] += r.Outcome
		}
		return summary
	}

	for _, r := range records {
		if r.LaunchSite != site {
			continue
		}
		summary.Totals[strconv.Itoa(r.Outcome)]++
	}
	return summary
}

// FilterPayload returns the records whose payload lies in rng (inclusive)
// and, unless site is models.AllSites, that were launched from site.
// Dataset order is preserved and an empty result is valid.
func FilterPayload(records []*models.LaunchRecord, site string, rng models.PayloadRange) models.FilteredPayloadSet {
	set := models.FilteredPayloadSet{Site: site, Range: rng, Records: []*models.LaunchRecord{}}

	for _, r := range records {
		if !rng.Contains(r.PayloadMassKg) {
			continue
		}
		if site != models.AllSites && r.LaunchSite != site {
			continue
		}
		set.Records = append(set.Records, r)
	}
	return set
}

// SummarizePayload computes descriptive statistics of the payload masses.
// No records yields a zero summary.
func SummarizePayload(records []*models.LaunchRecord) models.PayloadSummary {
	if len(records) == 0 {
		return models.PayloadSummary{}
	}

	data := make(stats.Float64Data, len(records))
	for i, r := range records {
		data[i] = r.PayloadMassKg
	}

	summary := models.PayloadSummary{Count: len(records)}
	summary.Min, _ = data.Min()
	summary.Max, _ = data.Max()
	summary.Mean, _ = data.Mean()
	summary.Median, _ = data.Median()
	return summary
}
