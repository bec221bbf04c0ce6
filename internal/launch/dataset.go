// Package launch holds the immutable launch-record dataset the dashboard is
// built on. A Dataset is constructed once and only read afterwards, so it is
// safe for concurrent use without locking.
package launch

import (
	"math"
	"sort"
	"strings"
)

// Record is one row of the launch table.
type Record struct {
	LaunchSite      string  `json:"launch_site"`
	PayloadMassKg   float64 `json:"payload_mass_kg"`
	Class           int     `json:"class"`
	BoosterCategory string  `json:"booster_version_category"`
}

// Success reports whether the launch outcome class is 1.
func (r Record) Success() bool { return r.Class == 1 }

// Dataset is an ordered, read-only collection of launch records together with
// values derived once at construction.
type Dataset struct {
	source     string
	records    []Record
	sites      []string
	siteIndex  map[string]struct{}
	minPayload float64
	maxPayload float64
}

// New validates records and builds a Dataset. The slice is copied.
func New(source string, records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, &DataLoadError{Source: source, Reason: "dataset has no launch records"}
	}
	cloned := make([]Record, len(records))
	for i, rec := range records {
		rec.LaunchSite = strings.TrimSpace(rec.LaunchSite)
		rec.BoosterCategory = strings.TrimSpace(rec.BoosterCategory)
		if err := validateRecord(rec); err != nil {
			return nil, &DataLoadError{Source: source, Row: i + 1, Reason: err.Error()}
		}
		cloned[i] = rec
	}
	return build(source, cloned), nil
}

func build(source string, records []Record) *Dataset {
	ds := &Dataset{
		source:     source,
		records:    records,
		siteIndex:  make(map[string]struct{}),
		minPayload: math.Inf(1),
		maxPayload: math.Inf(-1),
	}
	for _, rec := range records {
		if _, ok := ds.siteIndex[rec.LaunchSite]; !ok {
			ds.siteIndex[rec.LaunchSite] = struct{}{}
			ds.sites = append(ds.sites, rec.LaunchSite)
		}
		ds.minPayload = math.Min(ds.minPayload, rec.PayloadMassKg)
		ds.maxPayload = math.Max(ds.maxPayload, rec.PayloadMassKg)
	}
	sort.Strings(ds.sites)
	return ds
}

func validateRecord(rec Record) error {
	switch {
	case rec.LaunchSite == "":
		return errEmptySite
	case math.IsNaN(rec.PayloadMassKg) || math.IsInf(rec.PayloadMassKg, 0):
		return errPayloadNotFinite
	case rec.PayloadMassKg < 0:
		return errPayloadNegative
	case rec.Class != 0 && rec.Class != 1:
		return errClassRange
	}
	return nil
}

// Source returns the location the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of all records in load order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Each calls fn for every record in load order without copying the table.
func (d *Dataset) Each(fn func(Record)) {
	for _, rec := range d.records {
		fn(rec)
	}
}

// Sites returns the distinct launch sites sorted ascending.
func (d *Dataset) Sites() []string {
	return append([]string(nil), d.sites...)
}

// HasSite reports whether any record was launched from site.
func (d *Dataset) HasSite(site string) bool {
	_, ok := d.siteIndex[site]
	return ok
}

// MinPayload returns the smallest payload mass in the dataset.
func (d *Dataset) MinPayload() float64 { return d.minPayload }

// MaxPayload returns the largest payload mass in the dataset.
func (d *Dataset) MaxPayload() float64 { return d.maxPayload }
