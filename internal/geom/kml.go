package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

type kmlRing struct {
	Coordinates string `xml:"LinearRing>coordinates"`
}

type kmlPolygon struct {
	Outer kmlRing   `xml:"outerBoundaryIs"`
	Inner []kmlRing `xml:"innerBoundaryIs"`
}

// LoadKMLPolygons extracts every Polygon element of a KML file, wherever it
// is nested (Document, Folder, Placemark, MultiGeometry).
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKMLPolygons(path string) (PolygonSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadKMLPolygons(f)
}

func ReadKMLPolygons(r io.Reader) (PolygonSet, error) {
	dec := xml.NewDecoder(r)
	var out PolygonSet
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Polygon" {
			continue
		}
		var p kmlPolygon
		if err := dec.DecodeElement(&p, &se); err != nil {
			return nil, err
		}
		if pts := kmlCoords(p.Outer.Coordinates); len(pts) >= 3 {
			out = append(out, Polygon{Ring: closeRing(pts)})
		}
		for _, in := range p.Inner {
			if pts := kmlCoords(in.Coordinates); len(pts) >= 3 {
				out = append(out, Polygon{Ring: closeRing(pts), Hole: true})
			}
		}
	}
	if len(out) == 0 {
		return nil, errors.New("kml: no polygons found")
	}
	return out, nil
}

func kmlCoords(s string) []Point {
	var pts []Point
	// tuples are separated by whitespace
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pts = append(pts, Point{X: lon, Y: lat})
	}
	return pts
}
