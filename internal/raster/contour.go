package raster

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"

	"climap/internal/geom"
	"climap/internal/interp"
)

// ColorbarBand is the height reserved above the plot for the colorbar.
const ColorbarBand = 36

// Shape is an extra boundary layer drawn onto the contour raster.
type Shape struct {
	Polygons  geom.PolygonSet
	Color     color.Color
	Width     float64
	FillAlpha float64
}

type ContourOptions struct {
	Levels     []float64 // fill bands; ascending
	LineLevels []float64 // iso-lines; ascending
	Cmap       Colormap
	Fill       bool
	Lines      bool
	Points     []geom.Sample
	Shapes     []Shape
	Colorbar   bool
	Background color.Color
}

// RenderContours draws the interpolated surface as filled level bands and
// optional iso-lines, sample points, extra shapes and a colorbar. Cells
// that are NaN or outside the levels stay background.
func RenderContours(vp Viewport, s *interp.Surface, o ContourOptions) *image.RGBA {
	img := image.NewRGBA(vp.Bounds())
	bg := o.Background
	if bg == nil {
		bg = color.White
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	if o.Fill && len(o.Levels) >= 2 {
		palette := make([]color.NRGBA, len(o.Levels)-1)
		for i := range palette {
			palette[i] = o.Cmap.At(bandT(o.Levels, i))
		}
		for y := vp.Plot.Min.Y; y < vp.Plot.Max.Y; y++ {
			for x := vp.Plot.Min.X; x < vp.Plot.Max.X; x++ {
				lon, lat := vp.ToLonLat(float64(x)+0.5, float64(y)+0.5)
				if b := band(o.Levels, s.At(lon, lat)); b >= 0 {
					img.Set(x, y, palette[b])
				}
			}
		}
	}

	dc := gg.NewContextForRGBA(img)
	dc.DrawRectangle(float64(vp.Plot.Min.X), float64(vp.Plot.Min.Y), float64(vp.Plot.Dx()), float64(vp.Plot.Dy()))
	dc.Clip()
	if o.Lines {
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(0.5)
		for _, lv := range o.LineLevels {
			for _, seg := range IsoLines(s, lv) {
				x0, y0 := vp.ToPixel(seg[0].X, seg[0].Y)
				x1, y1 := vp.ToPixel(seg[1].X, seg[1].Y)
				dc.MoveTo(x0, y0)
				dc.LineTo(x1, y1)
			}
		}
		dc.Stroke()
	}
	for _, sh := range o.Shapes {
		drawShape(dc, vp, sh)
	}
	if len(o.Points) > 0 {
		dc.SetRGB(0, 0, 0)
		for _, p := range o.Points {
			x, y := vp.ToPixel(p.Lon, p.Lat)
			dc.DrawCircle(x, y, 2.5)
		}
		dc.Fill()
	}
	dc.ResetClip()
	if o.Colorbar && o.Fill && len(o.Levels) >= 2 {
		drawColorbar(dc, vp, o.Levels, o.Cmap)
	}
	return img
}

func ringPath(dc *gg.Context, vp Viewport, ring []geom.Point) {
	dc.NewSubPath()
	for i, v := range ring {
		x, y := vp.ToPixel(v.X, v.Y)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

func drawShape(dc *gg.Context, vp Viewport, sh Shape) {
	c := sh.Color
	if c == nil {
		c = color.Black
	}
	if sh.FillAlpha > 0 {
		r, g, b, _ := c.RGBA()
		dc.SetRGBA(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff, sh.FillAlpha)
		for _, p := range sh.Polygons {
			ringPath(dc, vp, p.Ring)
		}
		dc.SetFillRuleEvenOdd()
		dc.Fill()
		dc.SetFillRuleWinding()
	}
	dc.SetColor(c)
	dc.SetLineWidth(max(sh.Width, 0.1))
	for _, p := range sh.Polygons {
		ringPath(dc, vp, p.Ring)
	}
	dc.Stroke()
}

func drawColorbar(dc *gg.Context, vp Viewport, levels []float64, cm Colormap) {
	x0, w := float64(vp.Plot.Min.X), float64(vp.Plot.Dx())
	y0 := float64(vp.Plot.Min.Y - ColorbarBand + 16)
	const h = 12
	n := len(levels) - 1
	for i := 0; i < n; i++ {
		dc.SetColor(cm.At(bandT(levels, i)))
		dc.DrawRectangle(x0+w*float64(i)/float64(n), y0, w/float64(n)+0.5, h)
		dc.Fill()
	}
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x0, y0, w, h)
	dc.Stroke()
	dc.SetFontFace(basicfont.Face7x13)
	dc.DrawStringAnchored(label(levels[0]), x0, y0-3, 0, 0)
	dc.DrawStringAnchored(label(levels[n]), x0+w, y0-3, 1, 0)
}

func label(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// IsoLines traces the level crossing through every mesh cell whose four
// corners are defined, as lon/lat segments. Saddle cells are resolved by
// the cell's mean value.
func IsoLines(s *interp.Surface, level float64) [][2]geom.Point {
	var out [][2]geom.Point
	for i := 0; i+1 < s.Rows(); i++ {
		for j := 0; j+1 < s.Cols(); j++ {
			p := [4]geom.Point{
				{X: s.Xs[j], Y: s.Ys[i]}, {X: s.Xs[j+1], Y: s.Ys[i]},
				{X: s.Xs[j+1], Y: s.Ys[i+1]}, {X: s.Xs[j], Y: s.Ys[i+1]},
			}
			v := [4]float64{s.Values[i][j], s.Values[i][j+1], s.Values[i+1][j+1], s.Values[i+1][j]}
			if math.IsNaN(v[0] + v[1] + v[2] + v[3]) {
				continue
			}
			var above [4]bool
			for k := range v {
				above[k] = v[k] >= level
			}
			cross := func(e int) geom.Point {
				a, b := e, (e+1)%4
				t := (level - v[a]) / (v[b] - v[a])
				return geom.Point{X: p[a].X + t*(p[b].X-p[a].X), Y: p[a].Y + t*(p[b].Y-p[a].Y)}
			}
			var edges []int
			for e := 0; e < 4; e++ {
				if above[e] != above[(e+1)%4] {
					edges = append(edges, e)
				}
			}
			switch len(edges) {
			case 2:
				out = append(out, [2]geom.Point{cross(edges[0]), cross(edges[1])})
			case 4:
				centre := (v[0]+v[1]+v[2]+v[3])/4 >= level
				for k := 0; k < 4; k++ {
					if above[k] != centre {
						out = append(out, [2]geom.Point{cross((k + 3) % 4), cross(k)})
					}
				}
			}
		}
	}
	return out
}
