package services

import (
	"errors"
	"testing"

	"spacex-dashboard/models"
	"spacex-dashboard/utils"
)

func newTestLogger() *utils.Logger { return utils.Discard() }

func TestParsePayload(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"0", 0, false},
		{"525", 525, false},
		{" 3136.5 ", 3136.5, false},
		{"15,600", 15600, false},
		{"", 0, true},
		{"heavy", 0, true},
		{"-10", 0, true},
		{"NaN", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePayload(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePayload(%q) error = %v; wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePayload(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"1", 1, false},
		{"1.0", 1, false},
		{" 0 ", 0, false},
		{"2", 0, true},
		{"yes", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseOutcome(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseOutcome(%q) error = %v; wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseOutcome(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerNormalisesText(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawLaunch{
		{Row: 2, LaunchSite: "  CCAFS   LC-40 ", PayloadMass: "500", Outcome: "1", BoosterCategory: " v1.1 "},
	}

	got, err := c.Clean("test.csv", raw)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len: got %d, want 1", len(got))
	}
	if got[0].LaunchSite != "CCAFS LC-40" {
		t.Errorf("LaunchSite: got %q, want %q", got[0].LaunchSite, "CCAFS LC-40")
	}
	if got[0].BoosterCategory != "v1.1" {
		t.Errorf("BoosterCategory: got %q, want %q", got[0].BoosterCategory, "v1.1")
	}
	if !got[0].Succeeded() {
		t.Error("record should be a success")
	}
}

func TestCleanerRejectsMalformedRow(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawLaunch{
		{Row: 2, LaunchSite: "A", PayloadMass: "500", Outcome: "1", BoosterCategory: "FT"},
		{Row: 3, LaunchSite: "A", PayloadMass: "lots", Outcome: "1", BoosterCategory: "FT"},
	}

	_, err := c.Clean("test.csv", raw)
	var loadErr *models.DataLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected DataLoadError, got %v", err)
	}
	if loadErr.Row != 3 {
		t.Errorf("Row: got %d, want 3", loadErr.Row)
	}
	if loadErr.Path != "test.csv" {
		t.Errorf("Path: got %q, want %q", loadErr.Path, "test.csv")
	}
}

func TestCleanerRejectsEmptySite(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawLaunch{{Row: 2, LaunchSite: "  ", PayloadMass: "1", Outcome: "0"}}

	if _, err := c.Clean("test.csv", raw); err == nil {
		t.Error("expected an error for an empty launch site")
	}
}
