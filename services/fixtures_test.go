package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spacex-dashboard/models"
)

func rec(site string, payload float64, outcome int, booster string) *models.LaunchRecord {
	return &models.LaunchRecord{
		LaunchSite:      site,
		PayloadMassKg:   payload,
		Outcome:         outcome,
		BoosterCategory: booster,
	}
}

// threeSites has outcomes A:[1,0], B:[1], C:[0,0,1].
func threeSites() []*models.LaunchRecord {
	return []*models.LaunchRecord{
		rec("A", 500, 1, "v1.0"),
		rec("A", 6000, 0, "v1.1"),
		rec("B", 3000, 1, "FT"),
		rec("C", 2500, 0, "FT"),
		rec("C", 9600, 0, "B4"),
		rec("C", 4000, 1, "B5"),
	}
}

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := NewDataset("fixture", threeSites())
	require.NoError(t, err)
	return ds
}
