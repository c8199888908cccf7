package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

type GridOptions struct {
	Width float64
	Dash  bool
	Color color.Color
}

// GridLines returns the lon and lat positions of grid lines inside the
// window, on a nice step of about five intervals per axis.
func GridLines(v Viewport) (lons, lats []float64) {
	step := NiceStep(math.Max(v.Window.Width(), v.Window.Height()), 5)
	for x := math.Ceil(v.Window.MinX/step) * step; x <= v.Window.MaxX; x += step {
		lons = append(lons, x)
	}
	for y := math.Ceil(v.Window.MinY/step) * step; y <= v.Window.MaxY; y += step {
		lats = append(lats, y)
	}
	return lons, lats
}

// RenderGrid draws meridians and parallels on a transparent canvas.
func RenderGrid(vp Viewport, o GridOptions) *image.NRGBA {
	dc := gg.NewContext(vp.Size.X, vp.Size.Y)
	c := o.Color
	if c == nil {
		c = color.NRGBA{A: 160}
	}
	dc.SetColor(c)
	dc.SetLineWidth(max(o.Width, 0.1))
	if o.Dash {
		dc.SetDash(4, 3)
	}
	lons, lats := GridLines(vp)
	for _, lon := range lons {
		x, _ := vp.ToPixel(lon, 0)
		dc.MoveTo(x, float64(vp.Plot.Min.Y))
		dc.LineTo(x, float64(vp.Plot.Max.Y))
	}
	for _, lat := range lats {
		_, y := vp.ToPixel(0, lat)
		dc.MoveTo(float64(vp.Plot.Min.X), y)
		dc.LineTo(float64(vp.Plot.Max.X), y)
	}
	dc.Stroke()
	out := image.NewNRGBA(vp.Bounds())
	draw.Draw(out, out.Bounds(), dc.Image(), image.Point{}, draw.Src)
	return out
}
