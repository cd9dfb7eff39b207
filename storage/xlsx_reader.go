package storage

import (
	"github.com/xuri/excelize/v2"

	"spacex-dashboard/models"
)

// XLSXReader reads launch rows from the first sheet of an Excel workbook.
type XLSXReader struct {
	path  string
	sheet string
}

// NewXLSXReader creates a reader for the workbook at path. An empty sheet
// name selects the first sheet.
func NewXLSXReader(path, sheet string) *XLSXReader {
	return &XLSXReader{path: path, sheet: sheet}
}

func (r *XLSXReader) Source() string { return r.path }

// ReadRaw reads every row of the selected sheet.
func (r *XLSXReader) ReadRaw() ([]*models.RawLaunch, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, &models.DataLoadError{Path: r.path, Reason: "cannot open workbook", Err: err}
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &models.DataLoadError{Path: r.path, Reason: "workbook has no sheets"}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &models.DataLoadError{Path: r.path, Reason: "cannot read sheet " + sheet, Err: err}
	}
	return rowsToRaw(r.path, rows)
}
