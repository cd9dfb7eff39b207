package models

import "fmt"

// DataLoadError reports a dataset that could not be loaded: a missing or
// unreadable file, a missing column, or a malformed row. Row is 0 when the
// problem is not tied to a single row.
type DataLoadError struct {
	Path   string
	Row    int
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	msg := "dataset " + e.Path
	if e.Row > 0 {
		msg += fmt.Sprintf(" row %d", e.Row)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// InvalidSelectionError reports a control value the dashboard refuses to
// apply. The previous selection stays in effect.
type InvalidSelectionError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
