package storage

import "spacex-dashboard/models"

// Column headers of the launch dataset. Matching is case-insensitive and
// ignores surrounding whitespace; other columns are ignored.
const (
	ColumnLaunchSite      = "Launch Site"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnOutcome         = "class"
	ColumnBoosterCategory = "Booster Version Category"
)

// RequiredColumns lists the columns every dataset file must provide.
var RequiredColumns = []string{
	ColumnLaunchSite,
	ColumnPayloadMass,
	ColumnOutcome,
	ColumnBoosterCategory,
}

// LaunchReader is the interface any dataset file format must satisfy.
type LaunchReader interface {
	ReadRaw() ([]*models.RawLaunch, error)
	// Source names where the rows come from, for logs and errors.
	Source() string
}

// LaunchWriter is the interface for persisting cleaned launch records.
type LaunchWriter interface {
	ReplaceAll(records []*models.LaunchRecord) error
	Close() error
}
