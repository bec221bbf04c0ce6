// Package selector turns the dashboard's UI selection (launch site and payload
// range) into chart specifications. Every function here is a pure projection
// over an immutable launch.Dataset: no I/O, no shared state, and a fresh
// specification per call.
package selector

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"launchdash/internal/launch"
	"launchdash/pkg/chartapi"
)

// AllSites is the dropdown sentinel selecting every launch site.
const AllSites = "ALL"

const (
	PieTitleAll         = "Total Success Launches by Site"
	pieTitleSiteFormat  = "Success vs. Failure for site %s"
	ScatterTitleAll     = "Correlation between Payload and Launch Outcome"
	scatterTitleFormat  = "Payload vs Outcome for %s"
	PayloadAxisLabel    = "Payload Mass (kg)"
	OutcomeAxisLabel    = "Launch Outcome (1=Success, 0=Fail)"
	scatterColorKeyName = "Booster Version Category"
)

// PayloadRange is a closed payload-mass interval in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether mass lies within the range, bounds included.
func (r PayloadRange) Contains(mass float64) bool {
	return r.Low <= mass && mass <= r.High
}

func (r PayloadRange) validate() error {
	switch {
	case !finite(r.Low):
		return &ContractViolation{Field: "payload_range.low", Value: formatFloat(r.Low), Reason: "must be a finite number"}
	case !finite(r.High):
		return &ContractViolation{Field: "payload_range.high", Value: formatFloat(r.High), Reason: "must be a finite number"}
	case r.Low < 0:
		return &ContractViolation{Field: "payload_range.low", Value: formatFloat(r.Low), Reason: "must not be negative"}
	case r.Low > r.High:
		return &ContractViolation{Field: "payload_range", Value: fmt.Sprintf("[%s, %s]", formatFloat(r.Low), formatFloat(r.High)), Reason: "low must not exceed high"}
	}
	return nil
}

// PieChart builds the success pie for site. For AllSites each slice is the sum
// of outcome classes of one site (successful launches per site); for a single
// site each slice counts the records of one outcome class.
func PieChart(ds *launch.Dataset, site string) (chartapi.Pie, error) {
	if err := checkSite(ds, site); err != nil {
		return chartapi.Pie{}, err
	}
	if site == AllSites {
		return successBySite(ds), nil
	}
	return outcomeCounts(ds, site), nil
}

func successBySite(ds *launch.Dataset) chartapi.Pie {
	sums := make(map[string]float64)
	ds.Each(func(rec launch.Record) {
		sums[rec.LaunchSite] += float64(rec.Class)
	})
	sites := ds.Sites()
	slices := make([]chartapi.Slice, 0, len(sites))
	for _, s := range sites {
		slices = append(slices, chartapi.Slice{Label: s, Value: sums[s]})
	}
	return chartapi.Pie{
		Title:       PieTitleAll,
		Names:       launch.ColumnLaunchSite,
		Aggregation: chartapi.AggregationSum,
		Slices:      slices,
	}
}

func outcomeCounts(ds *launch.Dataset, site string) chartapi.Pie {
	counts := make(map[int]float64, 2)
	ds.Each(func(rec launch.Record) {
		if rec.LaunchSite == site {
			counts[rec.Class]++
		}
	})
	classes := make([]int, 0, len(counts))
	for class := range counts {
		classes = append(classes, class)
	}
	sort.Ints(classes)
	slices := make([]chartapi.Slice, 0, len(classes))
	for _, class := range classes {
		slices = append(slices, chartapi.Slice{Label: strconv.Itoa(class), Value: counts[class]})
	}
	return chartapi.Pie{
		Title:       fmt.Sprintf(pieTitleSiteFormat, site),
		Names:       launch.ColumnClass,
		Aggregation: chartapi.AggregationCount,
		Slices:      slices,
	}
}

// ScatterChart builds the payload/outcome scatter for site restricted to rng.
// Points are grouped into one series per booster category, in the order the
// categories first appear in the dataset. An empty selection yields a chart
// with no series.
func ScatterChart(ds *launch.Dataset, site string, rng PayloadRange) (chartapi.Scatter, error) {
	records, err := FilterRecords(ds, site, rng)
	if err != nil {
		return chartapi.Scatter{}, err
	}

	var series []chartapi.Series
	position := make(map[string]int)
	for _, rec := range records {
		i, ok := position[rec.BoosterCategory]
		if !ok {
			i = len(series)
			position[rec.BoosterCategory] = i
			series = append(series, chartapi.Series{Name: rec.BoosterCategory})
		}
		series[i].Points = append(series[i].Points, chartapi.Point{X: rec.PayloadMassKg, Y: float64(rec.Class)})
	}

	title := ScatterTitleAll
	if site != AllSites {
		title = fmt.Sprintf(scatterTitleFormat, site)
	}
	return chartapi.Scatter{
		Title:    title,
		ColorKey: scatterColorKeyName,
		XAxis:    chartapi.Axis{Label: PayloadAxisLabel, Min: rng.Low, Max: rng.High},
		YAxis:    chartapi.Axis{Label: OutcomeAxisLabel, Min: 0, Max: 1},
		Series:   series,
	}, nil
}

// FilterRecords returns the records within rng (inclusive) and, unless site is
// AllSites, launched from site. Load order is preserved.
func FilterRecords(ds *launch.Dataset, site string, rng PayloadRange) ([]launch.Record, error) {
	if err := checkSite(ds, site); err != nil {
		return nil, err
	}
	if err := rng.validate(); err != nil {
		return nil, err
	}
	var out []launch.Record
	ds.Each(func(rec launch.Record) {
		if !rng.Contains(rec.PayloadMassKg) {
			return
		}
		if site != AllSites && rec.LaunchSite != site {
			return
		}
		out = append(out, rec)
	})
	return out, nil
}

func checkSite(ds *launch.Dataset, site string) error {
	if ds == nil {
		return &ContractViolation{Field: "dataset", Reason: "dataset not loaded"}
	}
	if site == AllSites {
		return nil
	}
	if site == "" {
		return &ContractViolation{Field: "site", Value: site, Reason: "site is required"}
	}
	if !ds.HasSite(site) {
		return &ContractViolation{Field: "site", Value: site, Reason: "unknown launch site"}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
