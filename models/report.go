package models

// SiteReport holds launch totals for one site.
type SiteReport struct {
	Site      string
	Launches  int
	Successes int
}

// SuccessRate returns successes as a fraction of launches.
func (s SiteReport) SuccessRate() float64 {
	if s.Launches == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Launches)
}

// DatasetReport holds the overview printed when the dashboard starts.
type DatasetReport struct {
	Source            string
	TotalLaunches     int
	Successes         int
	Sites             []SiteReport
	Payload           PayloadSummary
	BoosterCategories map[string]int
}
