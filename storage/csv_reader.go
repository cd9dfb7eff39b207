package storage

import (
	"encoding/csv"
	"os"

	"spacex-dashboard/models"
)

// CSVReader reads launch rows from a comma-separated file with a header row.
type CSVReader struct {
	path string
}

// NewCSVReader creates a reader for the CSV file at path.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

func (r *CSVReader) Source() string { return r.path }

// ReadRaw reads the whole file. Missing files, unparsable CSV and missing
// columns are reported as *models.DataLoadError.
func (r *CSVReader) ReadRaw() ([]*models.RawLaunch, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, &models.DataLoadError{Path: r.path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &models.DataLoadError{Path: r.path, Reason: "malformed CSV", Err: err}
	}
	return rowsToRaw(r.path, rows)
}
