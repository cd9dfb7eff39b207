package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"spacex-dashboard/models"
	"spacex-dashboard/utils"
)

type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

func (s *ReportService) Generate(ds *Dataset) *models.DatasetReport {
	report := &models.DatasetReport{
		Source:            ds.Source(),
		BoosterCategories: make(map[string]int),
	}

	records := ds.Records()
	report.TotalLaunches = len(records)

	bySite := make(map[string]*models.SiteReport)
	for _, r := range records {
		site, ok := bySite[r.LaunchSite]
		if !ok {
			site = &models.SiteReport{Site: r.LaunchSite}
			bySite[r.LaunchSite] = site
		}
		site.Launches++
		site.Successes += r.Outcome
		report.Successes += r.Outcome
		report.BoosterCategories[r.BoosterCategory]++
	}

	// Sites in selector order
	for _, name := range ds.Sites() {
		if site, ok := bySite[name]; ok {
			report.Sites = append(report.Sites, *site)
		}
	}

	report.Payload = SummarizePayload(records)
	s.logger.Debug("[report] %d launches across %d sites", report.TotalLaunches, len(report.Sites))
	return report
}

func (s *ReportService) Print(w io.Writer, r *models.DatasetReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  🚀 LAUNCH DATASET OVERVIEW\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Source            : \033[1m%s\033[0m\n", r.Source)
	fmt.Fprintf(w, "  Total launches    : \033[1m%d\033[0m\n", r.TotalLaunches)
	fmt.Fprintf(w, "  Successful        : \033[1m%d\033[0m\n", r.Successes)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Payload Mass (kg)\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.Payload.Count > 0 {
		fmt.Fprintf(w, "  Minimum : \033[1;32m%.0f\033[0m\n", r.Payload.Min)
		fmt.Fprintf(w, "  Maximum : \033[1;32m%.0f\033[0m\n", r.Payload.Max)
		fmt.Fprintf(w, "  Mean    : \033[1;32m%.1f\033[0m\n", r.Payload.Mean)
		fmt.Fprintf(w, "  Median  : \033[1;32m%.1f\033[0m\n", r.Payload.Median)
	} else {
		fmt.Fprintf(w, "  No payload data available\n")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Launches by Site\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	for _, site := range r.Sites {
		bar := strings.Repeat("█", site.Successes)
		fmt.Fprintf(w, "  %-16s %s (%d/%d, %.0f%%)\n",
			truncate(site.Site, 16), bar, site.Successes, site.Launches, site.SuccessRate()*100)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Booster Categories\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	type catCount struct {
		name  string
		count int
	}
	var cats []catCount
	for name, n := range r.BoosterCategories {
		cats = append(cats, catCount{name, n})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].count != cats[j].count {
			return cats[i].count > cats[j].count
		}
		return cats[i].name < cats[j].name
	})
	for _, c := range cats {
		fmt.Fprintf(w, "  %-16s %d\n", truncate(c.name, 16), c.count)
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
