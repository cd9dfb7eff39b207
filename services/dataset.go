package services

import (
	"sort"

	"spacex-dashboard/models"
	"spacex-dashboard/storage"
)

// Dataset is the launch table loaded at startup. It is read-only after
// construction and shared by every session.
type Dataset struct {
	source  string
	records []*models.LaunchRecord
	sites   []string
	known   map[string]struct{}

	minPayload float64
	maxPayload float64
}

// LoadDataset reads and cleans every row from reader. Any failure is a
// *models.DataLoadError.
func LoadDataset(reader storage.LaunchReader, cleaner *Cleaner) (*Dataset, error) {
	raw, err := reader.ReadRaw()
	if err != nil {
		return nil, err
	}
	records, err := cleaner.Clean(reader.Source(), raw)
	if err != nil {
		return nil, err
	}
	return NewDataset(reader.Source(), records)
}

// NewDataset builds a Dataset from already parsed records. The records
// slice is retained and must not be modified afterwards.
func NewDataset(source string, records []*models.LaunchRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, &models.DataLoadError{Path: source, Reason: "dataset has no launch records"}
	}

	ds := &Dataset{
		source:     source,
		records:    records,
		known:      make(map[string]struct{}),
		minPayload: records[0].PayloadMassKg,
		maxPayload: records[0].PayloadMassKg,
	}

	var distinct []string
	for _, r := range records {
		if _, ok := ds.known[r.LaunchSite]; !ok {
			ds.known[r.LaunchSite] = struct{}{}
			distinct = append(distinct, r.LaunchSite)
		}
		if r.PayloadMassKg < ds.minPayload {
			ds.minPayload = r.PayloadMassKg
		}
		if r.PayloadMassKg > ds.maxPayload {
			ds.maxPayload = r.PayloadMassKg
		}
	}
	sort.Strings(distinct)
	ds.sites = append([]string{models.AllSites}, distinct...)

	return ds, nil
}

// Source names where the records were loaded from.
func (d *Dataset) Source() string { return d.source }

// Records returns the shared record slice. Callers must not modify it.
func (d *Dataset) Records() []*models.LaunchRecord { return d.records }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Sites returns the site selector choices: the AllSites sentinel followed
// by the distinct launch sites in ascending order.
func (d *Dataset) Sites() []string {
	out := make([]string, len(d.sites))
	copy(out, d.sites)
	return out
}

// HasSite reports whether site is a valid selector value.
func (d *Dataset) HasSite(site string) bool {
	if site == models.AllSites {
		return true
	}
	_, ok := d.known[site]
	return ok
}

// PayloadBounds returns the observed payload range of the dataset.
func (d *Dataset) PayloadBounds() models.PayloadRange {
	return models.PayloadRange{Min: d.minPayload, Max: d.maxPayload}
}
