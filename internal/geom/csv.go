package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadSamplesCSV reads value/longitude/latitude triples from a CSV file.
func LoadSamplesCSV(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSamplesCSV(f)
}

// ReadSamplesCSV parses samples. When the first row is a header, columns
// are detected by name: value|val|z, lon|lng|long|longitude|x and
// lat|latitude|y (case-insensitive). Without a header the columns are taken
// by position as value, lon, lat. Rows that do not parse, or hold NaN or
// infinite numbers, are skipped.
func ReadSamplesCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("csv: empty file")
	}
	idxVal, idxLon, idxLat := 0, 1, 2
	rows := recs
	if isHeader(recs[0]) {
		idxVal, idxLon, idxLat = -1, -1, -1
		for i, h := range recs[0] {
			switch strings.ToLower(strings.TrimSpace(h)) {
			case "value", "val", "z":
				if idxVal == -1 {
					idxVal = i
				}
			case "lon", "lng", "long", "longitude", "x":
				if idxLon == -1 {
					idxLon = i
				}
			case "lat", "latitude", "y":
				if idxLat == -1 {
					idxLat = i
				}
			}
		}
		if idxVal == -1 || idxLon == -1 || idxLat == -1 {
			return nil, errors.New("csv: value/longitude/latitude columns not found")
		}
		rows = recs[1:]
	}
	var out []Sample
	for _, row := range rows {
		if idxVal >= len(row) || idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		v, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxVal]), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err3 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil || err3 != nil || !finite(v, lon, lat) {
			continue
		}
		out = append(out, Sample{Value: v, Lon: lon, Lat: lat})
	}
	if len(out) == 0 {
		return nil, errors.New("csv: no valid samples parsed")
	}
	return out, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func isHeader(row []string) bool {
	for _, cell := range row {
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
			return true
		}
	}
	return false
}
