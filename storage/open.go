package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"spacex-dashboard/models"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Open returns a reader for the dataset file at path, choosing the format
// from the file content and falling back to the extension.
func Open(path string) (LaunchReader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &models.DataLoadError{Path: path, Reason: "cannot open file", Err: err}
	}

	if isXLSX(path) {
		return NewXLSXReader(path, ""), nil
	}
	return NewCSVReader(path), nil
}

func isXLSX(path string) bool {
	if m, err := mimetype.DetectFile(path); err == nil {
		if m.Is(xlsxMIME) {
			return true
		}
		if m.Is("text/csv") || m.Is("text/plain") {
			return false
		}
	}
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}
