package boundary

import (
	"fmt"
	"strings"

	"github.com/ctessum/geom/proj"

	"climap/internal/geom"
)

const wgs84 = "+proj=longlat +datum=WGS84 +no_defs"

var epsg = map[string]string{
	"4326":  wgs84,
	"4258":  "+proj=longlat +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +no_defs",
	"3857":  "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +no_defs",
	"2180":  "+proj=tmerc +lat_0=0 +lon_0=19 +k=0.9993 +x_0=500000 +y_0=-5300000 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	"2176":  "+proj=tmerc +lat_0=0 +lon_0=15 +k=0.999923 +x_0=5500000 +y_0=0 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	"2177":  "+proj=tmerc +lat_0=0 +lon_0=18 +k=0.999923 +x_0=6500000 +y_0=0 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	"2178":  "+proj=tmerc +lat_0=0 +lon_0=21 +k=0.999923 +x_0=7500000 +y_0=0 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	"2179":  "+proj=tmerc +lat_0=0 +lon_0=24 +k=0.999923 +x_0=8500000 +y_0=0 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	"3035":  "+proj=laea +lat_0=52 +lon_0=10 +x_0=4321000 +y_0=3210000 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	"25832": "+proj=utm +zone=32 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	"25833": "+proj=utm +zone=33 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	"25834": "+proj=utm +zone=34 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	"25835": "+proj=utm +zone=35 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	"32633": "+proj=utm +zone=33 +datum=WGS84 +units=m +no_defs",
	"32634": "+proj=utm +zone=34 +datum=WGS84 +units=m +no_defs",
	"32635": "+proj=utm +zone=35 +datum=WGS84 +units=m +no_defs",
}

// resolveCRS turns an identifier into a definition proj.Parse accepts.
// Accepted: "EPSG:n", "epsg:n" or "n" from the built-in table, or any
// proj4 or WKT string.
func resolveCRS(crs string) (def string, geographic bool, err error) {
	s := strings.TrimSpace(crs)
	if s == "" {
		return wgs84, true, nil
	}
	code := s
	if i := strings.Index(s, ":"); i >= 0 && strings.EqualFold(s[:i], "epsg") {
		code = strings.TrimSpace(s[i+1:])
	}
	if d, ok := epsg[code]; ok {
		return d, code == "4326", nil
	}
	if strings.HasPrefix(s, "+") || strings.Contains(strings.ToUpper(s), "PROJCS[") || strings.Contains(strings.ToUpper(s), "GEOGCS[") {
		return s, false, nil
	}
	return "", false, fmt.Errorf("boundary: unknown crs %q", crs)
}

// Reproject converts every vertex from crs to EPSG:4326 lon/lat. Sets
// already in EPSG:4326 are returned unchanged.
func Reproject(set geom.PolygonSet, crs string) (geom.PolygonSet, error) {
	def, geographic, err := resolveCRS(crs)
	if err != nil {
		return nil, err
	}
	if geographic {
		return set, nil
	}
	src, err := proj.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("boundary: parse crs %q: %w", crs, err)
	}
	dst, err := proj.Parse(wgs84)
	if err != nil {
		return nil, err
	}
	tr, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("boundary: transform from %q: %w", crs, err)
	}
	out := make(geom.PolygonSet, 0, len(set))
	for _, p := range set {
		ring := make([]geom.Point, len(p.Ring))
		for i, v := range p.Ring {
			x, y, err := tr(v.X, v.Y)
			if err != nil {
				return nil, fmt.Errorf("boundary: reproject (%g, %g): %w", v.X, v.Y, err)
			}
			ring[i] = geom.Point{X: x, Y: y}
		}
		p.Ring = ring
		out = append(out, p)
	}
	return out, nil
}
