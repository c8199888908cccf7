package boundary

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jonas-p/go-shp"

	"climap/internal/geom"
)

func TestLoadCountries(t *testing.T) {
	s := NewStore("")
	tests := []struct {
		name      string
		countries []string
		rings     int
		code      string
	}{
		{"iso code", []string{"POL"}, 1, "POL"},
		{"iso code lower", []string{"pol"}, 1, "POL"},
		{"name substring", []string{"Poland"}, 1, "POL"},
		{"multi island", []string{"malta"}, 2, "MLT"},
		{"unknown", []string{"Atlantis"}, 0, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			set, err := s.Load(Source{Countries: tc.countries})
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(set) != tc.rings {
				t.Fatalf("got %d rings, want %d", len(set), tc.rings)
			}
			for _, p := range set {
				if p.Country.Code != tc.code {
					t.Errorf("code = %q, want %q", p.Country.Code, tc.code)
				}
				if p.Ring[0] != p.Ring[len(p.Ring)-1] {
					t.Errorf("ring not closed")
				}
			}
		})
	}
}

func TestLoadWorldCountries(t *testing.T) {
	s := NewStore("")
	tests := []struct {
		token string
		code  string
	}{
		{"FRANCE", "FRA"},
		{"Spain", "ESP"},
		{"italy", "ITA"},
		{"SWEDEN", "SWE"},
		{"BRAZIL", "BRA"},
		{"Ukraine", "UKR"},
		{"United States", "USA"},
		{"PSX", "PSX"},
	}
	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			set, err := s.Load(Source{Countries: []string{tc.token}})
			if err != nil {
				t.Fatal(err)
			}
			if len(set) == 0 {
				t.Fatalf("%s matched no polygons", tc.token)
			}
			for _, p := range set {
				if p.Country.Code != tc.code {
					t.Errorf("code = %q, want %q", p.Country.Code, tc.code)
				}
			}
		})
	}
	all, err := s.World()
	if err != nil {
		t.Fatal(err)
	}
	codes := map[string]bool{}
	for _, p := range all {
		if p.Country.Code == "" || p.Country.Admin == "" || p.Country.Name == "" {
			t.Fatalf("unlabelled polygon %+v", p.Country)
		}
		codes[p.Country.Code] = true
	}
	if len(codes) < 170 {
		t.Errorf("world set has %d countries", len(codes))
	}
}

func TestLoadIdempotent(t *testing.T) {
	s := NewStore("")
	a, err := s.Load(Source{Countries: []string{"POL", "Malta"}})
	if err != nil {
		t.Fatal(err)
	}
	a[0].Ring[0] = geom.Point{X: -999, Y: -999}
	b, err := s.Load(Source{Countries: []string{"POL", "Malta"}})
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewStore("").Load(Source{Countries: []string{"POL", "Malta"}})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(b, c) {
		t.Error("repeated loads differ")
	}
}

func TestLoadEurope(t *testing.T) {
	set, err := NewStore("").Load(Source{Countries: []string{"europe"}})
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, p := range set {
		seen[p.Country.Code] = true
	}
	for _, code := range []string{"POL", "DEU", "CZE", "MLT", "FRA", "ESP", "ITA", "SWE", "UKR", "KOS"} {
		if !seen[code] {
			t.Errorf("europe selection misses %s", code)
		}
	}
	// microstates below the outline resolution are the only gaps
	if len(seen) < len(europe)-4 {
		t.Errorf("europe resolved %d of %d countries", len(seen), len(europe))
	}
	if v, ok := DefaultView([]string{"Europe"}); !ok || v != EuropeView {
		t.Errorf("DefaultView = %+v, %v", v, ok)
	}
}

func TestLoadSourceErrors(t *testing.T) {
	s := NewStore("")
	if _, err := s.Load(Source{}); !errors.Is(err, ErrNoSelection) {
		t.Errorf("empty source: got %v", err)
	}
	if _, err := s.Load(Source{Countries: []string{"POL"}, Path: "x.shp"}); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("country with custom file: got %v", err)
	}
	if _, err := s.Load(Source{Path: "borders.gpx"}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unknown extension: got %v", err)
	}
	if _, err := s.Load(Source{Path: filepath.Join(t.TempDir(), "missing.geojson")}); err == nil {
		t.Error("missing file: expected error")
	}
}

func TestLoadWKTReprojected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.wkt")
	wkt := "POLYGON((0 0, 1113194.9079327357 0, 1113194.9079327357 1113194.9079327357, 0 0))\n"
	if err := os.WriteFile(path, []byte(wkt), 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := NewStore("").Load(Source{Path: path, CRS: "EPSG:3857"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(set) != 1 {
		t.Fatalf("got %d rings, want 1", len(set))
	}
	got := set[0].Ring[1]
	if math.Abs(got.X-10) > 1e-4 || math.Abs(got.Y) > 1e-4 {
		t.Errorf("reprojected vertex = %+v, want (10, 0)", got)
	}
	if set[0].Ring[0] != set[0].Ring[len(set[0].Ring)-1] {
		t.Error("ring not closed after reprojection")
	}
}

func TestResolveCRS(t *testing.T) {
	for _, in := range []string{"", "EPSG:4326", "epsg:4326", "4326"} {
		if _, geo, err := resolveCRS(in); err != nil || !geo {
			t.Errorf("%q: geographic=%v err=%v", in, geo, err)
		}
	}
	if _, _, err := resolveCRS("EPSG:999999"); err == nil {
		t.Error("unknown code: expected error")
	}
	if d, _, err := resolveCRS("+proj=utm +zone=34"); err != nil || d != "+proj=utm +zone=34" {
		t.Errorf("proj4 passthrough: %q %v", d, err)
	}
}

func TestLoadShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lakes.shp")
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		t.Fatal(err)
	}
	// two rings packed into one part, both clockwise
	pts := []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0},
		{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 5, Y: 5}}
	w.Write(&shp.Polygon{
		Box:       shp.BBoxFromPoints(pts),
		NumParts:  1,
		NumPoints: int32(len(pts)),
		Parts:     []int32{0},
		Points:    pts,
	})
	if err := w.SetFields([]shp.Field{shp.StringField("ADM0_A3", 3)}); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteAttribute(0, 0, "XYZ"); err != nil {
		t.Fatal(err)
	}
	w.Close()

	set, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("got %d rings, want 2", len(set))
	}
	for _, p := range set {
		if p.Hole {
			t.Error("clockwise ring flagged as hole")
		}
		if p.Country.Code != "XYZ" {
			t.Errorf("code = %q, want XYZ", p.Country.Code)
		}
	}
}
