package tui

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"climap/internal/anchor"
	"climap/internal/boundary"
	"climap/internal/geom"
	"climap/internal/interp"
	"climap/internal/mapinterp"
	"climap/internal/raster"
)

func testModel(t *testing.T) Model {
	t.Helper()
	samples := []geom.Sample{{Value: 1, Lon: 10, Lat: 10}, {Value: 3, Lon: 20, Lat: 20}}
	m := New(mapinterp.New(samples, boundary.Source{Countries: []string{"POLAND"}}), mapinterp.DefaultConfig())
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	surf, err := interp.NewSurface(10, 20, 10, 20, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range surf.Values {
		for j := range surf.Values[i] {
			surf.Values[i][j] = 2
		}
	}
	win := geom.BBox{MinX: 10, MinY: 10, MaxX: 20, MaxY: 20}
	m.res = &mapinterp.Result{
		Image:   img,
		Surface: surf,
		Anchors: []anchor.Anchor{{X: 15, Y: 9, Value: 1}},
		Extent:  win,
		Viewport: raster.Viewport{
			Window: win,
			Plot:   image.Rect(0, 0, 40, 40),
			Size:   image.Pt(40, 40),
		},
	}
	m.rendering = false
	m.width, m.height = 40, 23
	return m
}

func TestNewKeepsSaveForLater(t *testing.T) {
	cfg := mapinterp.DefaultConfig()
	cfg.Save = "out.png"
	m := New(mapinterp.New(nil, boundary.Source{}), cfg)
	if m.cfg.Save != "" {
		t.Fatalf("preview renders must not write files, got Save=%q", m.cfg.Save)
	}
	if m.savePath != "out.png" {
		t.Fatalf("savePath = %q", m.savePath)
	}
}

func TestRenderImageHalfBlocks(t *testing.T) {
	m := testModel(t)
	out := m.renderImage(20, 10)
	if !strings.Contains(out, "▀") {
		t.Fatalf("expected half-block cells in output")
	}
	if got := strings.Count(out, "\n"); got != 9 {
		t.Fatalf("lines = %d, want 10", got+1)
	}
}

func TestImagePixelCentre(t *testing.T) {
	m := testModel(t)
	px, py, ok := m.imagePixel(10, 10, 20, 10)
	if !ok {
		t.Fatal("centre should map into the image")
	}
	if px != 21 || py != 21 {
		t.Fatalf("pixel = (%d,%d), want (21,21)", px, py)
	}
	if _, _, ok := m.imagePixel(-50, 0, 20, 10); ok {
		t.Fatal("far left cell should be outside the image")
	}
}

func TestImageLonLat(t *testing.T) {
	m := testModel(t)
	lon, lat, ok := m.imageLonLat(10, 5, 20, 10)
	if !ok {
		t.Fatal("expected a location")
	}
	if math.Abs(lon-15) > 0.5 || math.Abs(lat-15) > 0.5 {
		t.Fatalf("lon/lat = %v,%v, want about 15,15", lon, lat)
	}
}

func TestCellToLonLatCorners(t *testing.T) {
	m := testModel(t)
	lon, lat, ok := m.cellToLonLat(0, 0, 11, 11)
	if !ok || lon != 10 || lat != 20 {
		t.Fatalf("top-left = %v,%v,%v", lon, lat, ok)
	}
	lon, lat, _ = m.cellToLonLat(10, 10, 11, 11)
	if lon != 20 || lat != 10 {
		t.Fatalf("bottom-right = %v,%v", lon, lat)
	}
}

func TestRenderGeometryMarksSamples(t *testing.T) {
	m := testModel(t)
	out := m.renderGeometry(20, 10)
	if strings.TrimSpace(strings.ReplaceAll(out, "\n", "")) == "" {
		t.Fatal("geometry view is blank")
	}
}

func TestAttrRows(t *testing.T) {
	rows := attrRows(
		[]geom.Sample{{Value: 8, Lon: 19, Lat: 52}},
		[]anchor.Anchor{{X: 13.5, Y: 52, Value: 8}},
	)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0][1] != "sample" || rows[1][1] != "anchor" || rows[1][0] != "2" {
		t.Fatalf("rows = %v", rows)
	}
	if rows[1][2] != "13.5000" {
		t.Fatalf("anchor lon = %q", rows[1][2])
	}
}

func TestCycleMethod(t *testing.T) {
	m := testModel(t)
	want := []interp.Method{interp.Linear, interp.Nearest, interp.Cubic}
	for _, w := range want {
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
		m = next.(Model)
		if m.cfg.Method != w {
			t.Fatalf("method = %s, want %s", m.cfg.Method, w)
		}
		if cmd == nil {
			t.Fatal("expected a render command")
		}
	}
}

func TestRenderedMsgError(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(renderedMsg{err: mapinterp.ErrNoBoundary})
	got := next.(Model)
	if !strings.Contains(got.status, "no boundary") {
		t.Fatalf("status = %q", got.status)
	}
	if got.res == nil {
		t.Fatal("previous result should stay on screen")
	}
}

func TestHoverReportsValue(t *testing.T) {
	m := testModel(t)
	ox, oy, w, h := m.layout()
	m.hover(ox+w/2, oy+h/2)
	if !m.hoverHasGeo {
		t.Fatal("expected hover location")
	}
	if m.hoverValue != 2 {
		t.Fatalf("value = %v, want 2", m.hoverValue)
	}
}

func TestFormatValue(t *testing.T) {
	if got := formatValue(math.NaN()); got != "-" {
		t.Fatalf("NaN = %q", got)
	}
	if got := formatValue(7.25); got != "7.25" {
		t.Fatalf("7.25 = %q", got)
	}
}

func TestBrailleDots(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.setPixel(0, 0)
	b.setPixel(3, 3)
	b.setPixel(9, 9)
	lines := b.toLines()
	if len(lines) != 1 || lines[0] != "⠁⢀" {
		t.Fatalf("lines = %q", lines)
	}
	b = newBrailleBuf(1, 1)
	b.drawLineMicro(0, 0, 1, 3)
	if got := []rune(b.toLines()[0])[0]; got == ' ' || got == 0x2800 {
		t.Fatalf("line left the cell empty: %q", got)
	}
}
