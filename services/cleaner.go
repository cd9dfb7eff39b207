package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"spacex-dashboard/models"
	"spacex-dashboard/utils"
)

// Cleaner turns RawLaunch rows into validated LaunchRecords. Unlike a
// lenient scrape cleaner it never drops rows: the dataset is a fixed input
// and any malformed row makes the whole load fail.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses raw rows read from source. The first malformed row is
// reported as a *models.DataLoadError.
func (c *Cleaner) Clean(source string, raw []*models.RawLaunch) ([]*models.LaunchRecord, error) {
	result := make([]*models.LaunchRecord, 0, len(raw))

	for _, r := range raw {
		site := normaliseText(r.LaunchSite)
		if site == "" {
			return nil, rowError(source, r.Row, "empty launch site", nil)
		}

		payload, err := parsePayload(r.PayloadMass)
		if err != nil {
			return nil, rowError(source, r.Row, fmt.Sprintf("payload mass %q", r.PayloadMass), err)
		}

		outcome, err := parseOutcome(r.Outcome)
		if err != nil {
			return nil, rowError(source, r.Row, fmt.Sprintf("outcome %q", r.Outcome), err)
		}

		booster := normaliseText(r.BoosterCategory)
		if booster == "" {
			c.logger.Debug("[cleaner] Row %d has no booster category", r.Row)
		}

		result = append(result, &models.LaunchRecord{
			LaunchSite:      site,
			PayloadMassKg:   payload,
			Outcome:         outcome,
			BoosterCategory: booster,
		})
	}

	c.logger.Info("[cleaner] Parsed %d launch records from %s", len(result), source)
	return result, nil
}

func rowError(source string, row int, reason string, err error) error {
	return &models.DataLoadError{Path: source, Row: row, Reason: reason, Err: err}
}

// parsePayload accepts a non-negative decimal number, optionally with
// thousands separators ("1,234.5").
func parsePayload(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("must be a non-negative number")
	}
	return v, nil
}

// parseOutcome accepts 0 or 1, also written as "0.0"/"1.0" by spreadsheet
// exports.
func parseOutcome(raw string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	switch v {
	case models.OutcomeFailure:
		return models.OutcomeFailure, nil
	case models.OutcomeSuccess:
		return models.OutcomeSuccess, nil
	default:
		return 0, fmt.Errorf("must be 0 or 1")
	}
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
