package storage

import (
	"strings"

	"spacex-dashboard/models"
)

// rowsToRaw converts a header row plus data rows into RawLaunch values.
// Row numbers are 1-based file lines, so the first data row is 2.
func rowsToRaw(path string, rows [][]string) ([]*models.RawLaunch, error) {
	if len(rows) == 0 {
		return nil, &models.DataLoadError{Path: path, Reason: "file has no header row"}
	}

	idx, missing := columnIndex(rows[0])
	if len(missing) > 0 {
		return nil, &models.DataLoadError{
			Path:   path,
			Reason: "missing required columns: " + strings.Join(missing, ", "),
		}
	}

	raw := make([]*models.RawLaunch, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		raw = append(raw, &models.RawLaunch{
			Row:             i + 2,
			LaunchSite:      cell(row, idx[ColumnLaunchSite]),
			PayloadMass:     cell(row, idx[ColumnPayloadMass]),
			Outcome:         cell(row, idx[ColumnOutcome]),
			BoosterCategory: cell(row, idx[ColumnBoosterCategory]),
		})
	}
	return raw, nil
}

// columnIndex locates the required columns in a header row and returns
// the names of any that are absent.
func columnIndex(header []string) (map[string]int, []string) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := normaliseHeader(h)
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	idx := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		pos, ok := positions[normaliseHeader(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = pos
	}
	return idx, missing
}

func normaliseHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
