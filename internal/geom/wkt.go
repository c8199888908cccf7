package geom

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// LoadWKTPolygons reads a file holding one POLYGON or MULTIPOLYGON per line.
func LoadWKTPolygons(path string) (PolygonSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out PolygonSet
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		ps, err := ParseWKTPolygons(line)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	if len(out) == 0 {
		return nil, errors.New("wkt: no polygons found")
	}
	return out, nil
}

// ParseWKTPolygons parses POLYGON((...),(...)) and MULTIPOLYGON(((...)),((...)))
// into rings; every ring after the first of a polygon is a hole.
func ParseWKTPolygons(wkt string) (PolygonSet, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	switch {
	case strings.HasPrefix(up, "MULTIPOLYGON"):
		i := strings.Index(s, "(((")
		j := strings.LastIndex(s, ")))")
		if i < 0 || j <= i {
			return nil, errors.New("wkt multipolygon: invalid")
		}
		var out PolygonSet
		for _, body := range splitOn(s[i+3:j], ")),((") {
			out = append(out, wktRings(body)...)
		}
		return out, nil
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return nil, errors.New("wkt polygon: invalid")
		}
		return wktRings(s[i+2 : j]), nil
	}
	return nil, errors.New("unsupported wkt type")
}

func wktRings(body string) PolygonSet {
	var out PolygonSet
	for k, rp := range splitOn(body, "),(") {
		pts := parseTuples(rp)
		if len(pts) < 3 {
			continue
		}
		out = append(out, Polygon{Ring: closeRing(pts), Hole: k > 0})
	}
	return out
}

// splitOn splits s on sep, ignoring whitespace around the separator.
func splitOn(s, sep string) []string {
	compact := strings.Join(strings.Fields(s), " ")
	for _, r := range [][2]string{{" )", ")"}, {"( ", "("}, {" ,", ","}, {", ", ","}} {
		compact = strings.ReplaceAll(compact, r[0], r[1])
	}
	return strings.Split(compact, sep)
}

func parseTuples(block string) []Point {
	var out []Point
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.Trim(strings.TrimSpace(tup), "()"))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out
}
