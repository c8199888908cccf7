package geom

import (
	"errors"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSONPolygons reads a GeoJSON file and returns its polygon rings.
func LoadGeoJSONPolygons(path string) (PolygonSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return ParseGeoJSONPolygons(data)
}

// ParseGeoJSONPolygons decodes a FeatureCollection (or a single Feature) and
// flattens Polygon/MultiPolygon geometries into rings. Inner rings are
// flagged as holes. Features carrying ADMIN, NAME and ADM0_A3 properties get
// those as their country label.
func ParseGeoJSONPolygons(data []byte) (PolygonSet, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil || len(fc.Features) == 0 {
		f, ferr := geojson.UnmarshalFeature(data)
		if ferr != nil {
			if err != nil {
				return nil, err
			}
			return nil, ferr
		}
		fc = geojson.NewFeatureCollection().Append(f)
	}
	var out PolygonSet
	for _, f := range fc.Features {
		c := Country{
			Admin: f.Properties.MustString("ADMIN", ""),
			Name:  f.Properties.MustString("NAME", ""),
			Code:  f.Properties.MustString("ADM0_A3", ""),
		}
		out = append(out, orbPolygons(f.Geometry, c)...)
	}
	if len(out) == 0 {
		return nil, errors.New("geojson: no polygons found")
	}
	return out, nil
}

func orbPolygons(g orb.Geometry, c Country) PolygonSet {
	var out PolygonSet
	addPoly := func(p orb.Polygon) {
		for i, ring := range p {
			pts := make([]Point, 0, len(ring)+1)
			for _, v := range ring {
				pts = append(pts, Point{X: v[0], Y: v[1]})
			}
			if len(pts) < 3 {
				continue
			}
			out = append(out, Polygon{Ring: closeRing(pts), Hole: i > 0, Country: c})
		}
	}
	switch t := g.(type) {
	case orb.Polygon:
		addPoly(t)
	case orb.MultiPolygon:
		for _, p := range t {
			addPoly(p)
		}
	case orb.Collection:
		for _, sub := range t {
			out = append(out, orbPolygons(sub, c)...)
		}
	}
	return out
}
