package tui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"climap/internal/geom"
)

// imagePixel maps a half-cell (cell column cx, sub-row sy; two sub-rows per
// cell) to a pixel of the rendered image.
func (m Model) imagePixel(cx, sy, w, h int) (int, int, bool) {
	if m.res == nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	b := m.res.Image.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	s := math.Max(iw/float64(w), ih/float64(2*h)) / m.zoom
	px := iw/2 + (float64(cx-m.offsetX)-float64(w)/2+0.5)*s
	py := ih/2 + (float64(sy-2*m.offsetY)-float64(h)+0.5)*s
	if px < 0 || py < 0 || px >= iw || py >= ih {
		return 0, 0, false
	}
	return b.Min.X + int(px), b.Min.Y + int(py), true
}

func hexColor(c color.Color) (lipgloss.Color, bool) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A < 128 {
		return "", false
	}
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)), true
}

// renderImage draws the map as half-block cells, two pixels per cell.
func (m Model) renderImage(w, h int) string {
	if m.res == nil {
		return ""
	}
	img := m.res.Image
	pixel := func(cx, sy int) (lipgloss.Color, bool) {
		px, py, ok := m.imagePixel(cx, sy, w, h)
		if !ok {
			return "", false
		}
		return hexColor(img.At(px, py))
	}
	lines := make([]string, h)
	var sb strings.Builder
	for y := 0; y < h; y++ {
		sb.Reset()
		for x := 0; x < w; x++ {
			top, okT := pixel(x, 2*y)
			bot, okB := pixel(x, 2*y+1)
			switch {
			case okT && okB:
				sb.WriteString(lipgloss.NewStyle().Foreground(top).Background(bot).Render("▀"))
			case okT:
				sb.WriteString(lipgloss.NewStyle().Foreground(top).Render("▀"))
			case okB:
				sb.WriteString(lipgloss.NewStyle().Foreground(bot).Render("▄"))
			default:
				sb.WriteByte(' ')
			}
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// imageLonLat converts a cell under the mouse to lon/lat via the viewport
// the image was drawn with.
func (m Model) imageLonLat(cx, cy, w, h int) (float64, float64, bool) {
	px, py, ok := m.imagePixel(cx, 2*cy, w, h)
	if !ok {
		return 0, 0, false
	}
	vp := m.res.Viewport
	b := m.res.Image.Bounds()
	k := float64(vp.Size.X) / float64(b.Dx())
	x, y := float64(px-b.Min.X)*k, float64(py-b.Min.Y)*k
	if !(image.Point{X: int(x), Y: int(y)}).In(vp.Plot) {
		return 0, 0, false
	}
	lon, lat := vp.ToLonLat(x, y)
	return lon, lat, true
}

func (m Model) window() geom.BBox {
	if m.res == nil {
		return geom.EmptyBBox()
	}
	return m.res.Viewport.Window
}

// cellToLonLat converts a map cell coordinate back to lon/lat using the window, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	bb := m.window()
	if !(bb.MaxX > bb.MinX && bb.MaxY > bb.MinY) {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := bb.MinX + nx*bb.Width()
	lat := bb.MinY + ny*bb.Height()
	return lon, lat, true
}

// renderGeometry draws boundaries, samples, anchors and the extrapolation
// extent in braille.
func (m Model) renderGeometry(w, h int) string {
	if m.res == nil {
		return ""
	}
	br := newBrailleBuf(w, h)
	ring := func(pts []geom.Point) {
		var prev [2]int
		for i, p := range pts {
			mx, my, ok := m.screenXYMicro(p.X, p.Y, w, h)
			if !ok {
				continue
			}
			if i > 0 {
				br.drawLineMicro(prev[0], prev[1], mx, my)
			}
			prev = [2]int{mx, my}
		}
	}
	for _, poly := range m.res.Polygons {
		ring(poly.Ring)
	}
	if m.cfg.ShowFrame {
		e := m.res.Extent
		ring([]geom.Point{{X: e.MinX, Y: e.MinY}, {X: e.MaxX, Y: e.MinY}, {X: e.MaxX, Y: e.MaxY}, {X: e.MinX, Y: e.MaxY}, {X: e.MinX, Y: e.MinY}})
	}
	for _, s := range m.mp.Samples() {
		if mx, my, ok := m.screenXYMicro(s.Lon, s.Lat, w, h); ok {
			br.setPixel(mx, my)
			br.setPixel(mx+1, my)
		}
	}
	for _, a := range m.res.Anchors {
		if mx, my, ok := m.screenXYMicro(a.X, a.Y, w, h); ok {
			br.cross(mx, my)
		}
	}
	lines := br.toLines()

	// Hover highlight: draw an orange circle at the hovered cell
	if m.hovering && m.showGeometry {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				circle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("◯")
				lines[cy] = string(r[:cx]) + circle + string(r[cx+1:])
			}
		}
	}
	return strings.Join(lines, "\n")
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	bb := m.window()
	if !(bb.MaxX > bb.MinX && bb.MaxY > bb.MinY) {
		return 0, 0, false
	}
	nx := (lon - bb.MinX) / bb.Width()
	ny := (lat - bb.MinY) / bb.Height()
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}
