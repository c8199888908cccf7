package boundary

import (
	"errors"
	"strings"

	"github.com/jonas-p/go-shp"

	"climap/internal/geom"
)

// LoadShapefile reads polygon records of an ESRI shapefile. Every part is
// cut further with ring-closure detection, since some writers pack several
// rings into one part. When the DBF carries ADMIN, NAME or ADM0_A3 fields
// they label the record's rings.
func LoadShapefile(path string) (geom.PolygonSet, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	fields := map[string]int{}
	for i, f := range r.Fields() {
		fields[strings.ToUpper(f.String())] = i
	}
	attr := func(row int, name string) string {
		i, ok := fields[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(r.ReadAttribute(row, i))
	}

	var out geom.PolygonSet
	for r.Next() {
		row, shape := r.Shape()
		parts, points := shapeParts(shape)
		if points == nil {
			continue
		}
		c := geom.Country{Admin: attr(row, "ADMIN"), Name: attr(row, "NAME"), Code: attr(row, "ADM0_A3")}
		var rings []geom.Polygon
		for i := range parts {
			start := int(parts[i])
			end := len(points)
			if i+1 < len(parts) {
				end = int(parts[i+1])
			}
			if start < 0 || start >= end || end > len(points) {
				continue
			}
			var pts []geom.Point
			for _, p := range points[start:end] {
				pts = append(pts, geom.Point{X: p.X, Y: p.Y})
			}
			for _, ring := range geom.SplitRings(pts, geom.ClosureTolerance) {
				rings = append(rings, geom.Polygon{Ring: ring, Country: c})
			}
		}
		// outer rings run clockwise in shapefiles
		if len(rings) > 1 {
			for i := range rings {
				rings[i].Hole = rings[i].SignedArea() > 0
			}
		}
		out = append(out, rings...)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("shapefile: no polygons found")
	}
	return out, nil
}

func shapeParts(s shp.Shape) ([]int32, []shp.Point) {
	switch p := s.(type) {
	case *shp.Polygon:
		return p.Parts, p.Points
	case *shp.PolygonZ:
		return p.Parts, p.Points
	case *shp.PolygonM:
		return p.Parts, p.Points
	}
	return nil, nil
}
