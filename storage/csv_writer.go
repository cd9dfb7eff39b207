package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"spacex-dashboard/models"
)

// CSVWriter writes launch records in the dataset's own column layout.
type CSVWriter struct {
	writer *csv.Writer
}

// NewCSVWriter wraps w and writes the header row.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(RequiredColumns); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	return &CSVWriter{writer: cw}, nil
}

// Write appends records and flushes them to the underlying writer.
func (c *CSVWriter) Write(records []*models.LaunchRecord) error {
	for _, r := range records {
		row := []string{
			r.LaunchSite,
			strconv.FormatFloat(r.PayloadMassKg, 'f', -1, 64),
			strconv.Itoa(r.Outcome),
			r.BoosterCategory,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}
