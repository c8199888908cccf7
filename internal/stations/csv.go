package stations

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads station records from a file; see ReadCSV.
func LoadCSV(path string, yearly bool) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, yearly)
}

// ReadCSV takes columns by position: station, value, lon, lat; with
// yearly set a leading year column comes first. A header row is skipped.
func ReadCSV(r io.Reader, yearly bool) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	off, want := 0, 4
	if yearly {
		off, want = 1, 5
	}
	var out []Record
	for _, row := range rows {
		if len(row) < want {
			continue
		}
		num := func(s string) (float64, error) { return strconv.ParseFloat(strings.TrimSpace(s), 64) }
		v, err1 := num(row[off+1])
		lon, err2 := num(row[off+2])
		lat, err3 := num(row[off+3])
		if err1 != nil || err2 != nil || err3 != nil {
			// header or malformed row
			continue
		}
		rec := Record{Station: strings.TrimSpace(row[off]), Value: v, Lon: lon, Lat: lat}
		if yearly {
			y, err := strconv.Atoi(strings.TrimSpace(row[0]))
			if err != nil {
				continue
			}
			rec.Year = y
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, errors.New("csv: no valid station records parsed")
	}
	return out, nil
}
