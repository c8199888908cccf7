// Package stations reduces per-station record series to one sample per
// station.
package stations

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"climap/internal/geom"
)

// Record is one observation of a station.
type Record struct {
	Station string
	Year    int
	Value   float64
	Lon     float64
	Lat     float64
}

// Reduction selects how records are folded before the statistic runs.
type Reduction int

const (
	// PerRecord applies the statistic to the raw records.
	PerRecord Reduction = iota
	// YearlySum first sums each station's values per year, e.g. monthly
	// precipitation into annual totals.
	YearlySum
)

type Stat string

const (
	Mean   Stat = "mean"
	Median Stat = "median"
	Max    Stat = "max"
	Min    Stat = "min"
)

var ErrNoRecords = errors.New("stations: no records")

func ParseStat(s string) (Stat, error) {
	switch st := Stat(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return Mean, nil
	case Mean, Median, Max, Min:
		return st, nil
	}
	return "", fmt.Errorf("stations: unknown statistic %q", s)
}

func (s Stat) apply(v []float64) float64 {
	switch s {
	case Median:
		sorted := slices.Clone(v)
		sort.Float64s(sorted)
		// the empirical quantile at (i+0.5)/n is the i-th order statistic
		n := len(sorted)
		rank := func(i int) float64 { return stat.Quantile((float64(i)+0.5)/float64(n), stat.Empirical, sorted, nil) }
		return (rank((n-1)/2) + rank(n/2)) / 2
	case Max:
		return floats.Max(v)
	case Min:
		return floats.Min(v)
	}
	return stat.Mean(v, nil)
}

type series struct {
	values   []float64
	lon, lat []float64
}

// Aggregate returns one sample per station, ordered by station name. The
// location is the mean of the station's record locations.
func Aggregate(records []Record, r Reduction, s Stat) ([]geom.Sample, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if _, err := ParseStat(string(s)); err != nil {
		return nil, err
	}
	if r == YearlySum {
		records = sumYears(records)
	}
	by := map[string]*series{}
	for _, rec := range records {
		sr := by[rec.Station]
		if sr == nil {
			sr = &series{}
			by[rec.Station] = sr
		}
		sr.values = append(sr.values, rec.Value)
		sr.lon = append(sr.lon, rec.Lon)
		sr.lat = append(sr.lat, rec.Lat)
	}
	names := make([]string, 0, len(by))
	for n := range by {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]geom.Sample, 0, len(names))
	for _, n := range names {
		sr := by[n]
		out = append(out, geom.Sample{
			Value: s.apply(sr.values),
			Lon:   stat.Mean(sr.lon, nil),
			Lat:   stat.Mean(sr.lat, nil),
		})
	}
	return out, nil
}

func sumYears(records []Record) []Record {
	type key struct {
		year    int
		station string
	}
	idx := map[key]int{}
	var out []Record
	var n []int
	for _, rec := range records {
		k := key{rec.Year, rec.Station}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Record{Station: rec.Station, Year: rec.Year})
			n = append(n, 0)
		}
		out[i].Value += rec.Value
		out[i].Lon += rec.Lon
		out[i].Lat += rec.Lat
		n[i]++
	}
	for i := range out {
		out[i].Lon /= float64(n[i])
		out[i].Lat /= float64(n[i])
	}
	return out
}

// CheckContinuity keeps the records of stations having at least
// precision times the record count of the best-covered station.
func CheckContinuity(records []Record, precision float64) ([]Record, error) {
	if precision < 0 || precision > 1 {
		return nil, fmt.Errorf("stations: continuity precision %v outside [0, 1]", precision)
	}
	counts := map[string]int{}
	best := 0
	for _, r := range records {
		counts[r.Station]++
		best = max(best, counts[r.Station])
	}
	limit := float64(best) * precision
	var out []Record
	kept := map[string]bool{}
	for _, r := range records {
		if float64(counts[r.Station]) >= limit {
			out = append(out, r)
			kept[r.Station] = true
		}
	}
	log.Printf("INFO: continuity checked: %d stations before filtering, %d after", len(counts), len(kept))
	return out, nil
}
