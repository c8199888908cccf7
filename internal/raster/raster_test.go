package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"climap/internal/geom"
	"climap/internal/interp"
)

func testViewport(t *testing.T) Viewport {
	t.Helper()
	vp, err := NewViewport(geom.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, Layout{PlotWidth: 100, Padding: 10})
	if err != nil {
		t.Fatal(err)
	}
	return vp
}

func TestViewport(t *testing.T) {
	vp := testViewport(t)
	if vp.Plot.Min != image.Pt(10, 10) || vp.Plot.Dx() != 100 {
		t.Fatalf("plot = %v", vp.Plot)
	}
	if vp.Size.X != 120 || vp.Size.Y != vp.Plot.Max.Y+10 {
		t.Errorf("size = %v", vp.Size)
	}
	x, y := vp.ToPixel(0, 10)
	if x != 10 || y != 10 {
		t.Errorf("upper-left corner at (%v, %v)", x, y)
	}
	lon, lat := vp.ToLonLat(vp.ToPixel(3.25, 7.5))
	if math.Abs(lon-3.25) > 1e-9 || math.Abs(lat-7.5) > 1e-9 {
		t.Errorf("round trip = (%v, %v)", lon, lat)
	}
	if _, err := NewViewport(geom.EmptyBBox(), Layout{PlotWidth: 100}); err == nil {
		t.Error("empty window: expected error")
	}
	tall, err := NewViewport(geom.BBox{MinX: 0, MinY: 50, MaxX: 10, MaxY: 60}, Layout{PlotWidth: 100})
	if err != nil {
		t.Fatal(err)
	}
	if tall.Plot.Dy() <= tall.Plot.Dx() {
		t.Errorf("high-latitude window should be taller than wide: %v", tall.Plot)
	}
}

func TestKeyOut(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, KeyColor)
	img.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 0, B: 0, A: 90})
	other := color.NRGBA{R: 2, G: 0, B: 0, A: 255}
	img.SetNRGBA(2, 0, other)

	if n := KeyOut(img, KeyColor); n != 2 {
		t.Errorf("keyed %d pixels, want 2", n)
	}
	for x := 0; x < 2; x++ {
		if got := img.NRGBAAt(x, 0); got != Clear {
			t.Errorf("pixel %d = %v, want %v", x, got, Clear)
		}
	}
	if got := img.NRGBAAt(2, 0); got != other {
		t.Errorf("non-key pixel changed to %v", got)
	}
}

func TestBuildMask(t *testing.T) {
	vp := testViewport(t)
	polys := geom.PolygonSet{
		{Ring: []geom.Point{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}, {X: 2, Y: 2}}},
		{Ring: []geom.Point{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 4}}, Hole: true},
	}
	mask := BuildMask(vp, polys, MaskOptions{BoundaryWidth: 3})
	at := func(lon, lat float64) color.NRGBA {
		x, y := vp.ToPixel(lon, lat)
		return mask.NRGBAAt(int(x), int(y))
	}
	if got := at(3, 3); got != Clear {
		t.Errorf("inside polygon = %v, want clear", got)
	}
	if got := at(5, 5); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("inside hole = %v, want opaque background", got)
	}
	if got := at(1, 1); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("outside polygon = %v, want opaque background", got)
	}
	if got := mask.NRGBAAt(2, 2); got.A != 0 {
		t.Errorf("margin = %v, want transparent", got)
	}
	if got := at(2, 5); got.R > 100 || got.A < 200 {
		t.Errorf("outline = %v, want dark", got)
	}
}

func TestRenderContours(t *testing.T) {
	vp := testViewport(t)
	s, err := interp.NewSurface(0, 5, 0, 10, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range s.Values {
		for j := range row {
			row[j] = 5
		}
	}
	cm, err := LookupColormap("jet")
	if err != nil {
		t.Fatal(err)
	}
	img := RenderContours(vp, s, ContourOptions{Levels: []float64{0, 10}, Cmap: cm, Fill: true})
	x, y := vp.ToPixel(2.5, 5)
	want := cm.At(0.5)
	if got := color.NRGBAModel.Convert(img.At(int(x), int(y))).(color.NRGBA); got != want {
		t.Errorf("inside surface = %v, want %v", got, want)
	}
	x, y = vp.ToPixel(7.5, 5)
	if got := color.NRGBAModel.Convert(img.At(int(x), int(y))).(color.NRGBA); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("outside surface = %v, want background", got)
	}
}

func TestIsoLines(t *testing.T) {
	s := &interp.Surface{Xs: []float64{0, 1}, Ys: []float64{0, 1}, Values: [][]float64{{0, 1}, {0, 1}}}
	segs := IsoLines(s, 0.5)
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	for _, p := range segs[0] {
		if math.Abs(p.X-0.5) > 1e-12 {
			t.Errorf("crossing at x=%v, want 0.5", p.X)
		}
	}
	s.Values[0][0] = math.NaN()
	if segs := IsoLines(s, 0.5); len(segs) != 0 {
		t.Errorf("NaN cell produced %d segments", len(segs))
	}
}

func TestLevels(t *testing.T) {
	lv := AutoLevels(7.4, 8.6, 10)
	if len(lv) < 2 || lv[0] > 7.4 || lv[len(lv)-1] < 8.6 {
		t.Fatalf("levels %v do not cover range", lv)
	}
	for i := 1; i < len(lv); i++ {
		if lv[i] <= lv[i-1] {
			t.Fatalf("levels not ascending: %v", lv)
		}
	}
	if got := AutoLevels(3, 3, 10); len(got) != 2 {
		t.Errorf("flat range levels = %v", got)
	}
	levels := []float64{0, 1, 2}
	tests := []struct {
		v    float64
		want int
	}{{-0.1, -1}, {0, 0}, {0.5, 0}, {1, 0}, {1.5, 1}, {2, 1}, {2.1, -1}, {math.NaN(), -1}}
	for _, tc := range tests {
		if got := band(levels, tc.v); got != tc.want {
			t.Errorf("band(%v) = %d, want %d", tc.v, got, tc.want)
		}
	}
}

func TestColormaps(t *testing.T) {
	g, err := LookupColormap("Greys_r")
	if err != nil {
		t.Fatal(err)
	}
	if c := g.At(0); c != (color.NRGBA{A: 255}) {
		t.Errorf("greys_r at 0 = %v, want black", c)
	}
	if c := g.At(math.NaN()); c != g.At(0) {
		t.Errorf("greys_r at NaN = %v, want the first stop", c)
	}
	if _, err := LookupColormap("rainbowish"); err == nil {
		t.Error("unknown colormap: expected error")
	}
	for _, name := range Colormaps() {
		c, _ := LookupColormap(name)
		if c.At(0.3) == KeyColor {
			t.Errorf("%s produces the mask key colour", name)
		}
	}
}

func TestGridLines(t *testing.T) {
	lons, lats := GridLines(testViewport(t))
	if len(lons) != 6 || lons[0] != 0 || lons[5] != 10 {
		t.Errorf("lons = %v", lons)
	}
	if len(lats) != 6 {
		t.Errorf("lats = %v", lats)
	}
}

func TestRenderGrid(t *testing.T) {
	vp := testViewport(t)
	img := RenderGrid(vp, GridOptions{Width: 1})
	if img.Bounds() != vp.Bounds() {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if a := img.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("margin alpha = %d, want 0", a)
	}
	y := vp.Plot.Min.Y + 3
	x, _ := vp.ToPixel(2, 0)
	if img.NRGBAAt(int(x)-1, y).A == 0 && img.NRGBAAt(int(x), y).A == 0 {
		t.Errorf("no grid line at lon 2 (x=%v)", x)
	}
	if a := img.NRGBAAt(int(x)+5, y).A; a != 0 {
		t.Errorf("pixel between lines alpha = %d, want 0", a)
	}
}
