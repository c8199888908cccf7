package raster

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"climap/internal/geom"
)

// KeyColor fills polygon interiors on the mask before they are keyed out.
// It must not appear anywhere else on the mask.
var KeyColor = color.NRGBA{R: 1, G: 0, B: 0, A: 255}

// Clear replaces every key-coloured mask pixel.
var Clear = color.NRGBA{R: 255, G: 255, B: 255, A: 0}

type MaskOptions struct {
	Background    color.Color // outside the polygons, inside the plot
	Outline       color.Color
	BoundaryWidth float64
	Frame         bool
}

// BuildMask draws the stencil that hides everything outside polygons. The
// canvas is transparent outside the plot rectangle; inside it is covered
// by Background except for polygon interiors, which end up fully
// transparent. Holes are painted back with Background.
func BuildMask(vp Viewport, polys geom.PolygonSet, o MaskOptions) *image.NRGBA {
	bg, outline := o.Background, o.Outline
	if bg == nil {
		bg = color.White
	}
	if outline == nil {
		outline = color.Black
	}
	dc := gg.NewContext(vp.Size.X, vp.Size.Y)
	dc.SetColor(bg)
	dc.DrawRectangle(float64(vp.Plot.Min.X), float64(vp.Plot.Min.Y), float64(vp.Plot.Dx()), float64(vp.Plot.Dy()))
	dc.Fill()

	dc.DrawRectangle(float64(vp.Plot.Min.X), float64(vp.Plot.Min.Y), float64(vp.Plot.Dx()), float64(vp.Plot.Dy()))
	dc.Clip()
	dc.SetColor(KeyColor)
	for _, p := range polys {
		if !p.Hole {
			ringPath(dc, vp, p.Ring)
			dc.Fill()
		}
	}
	dc.SetColor(bg)
	for _, p := range polys {
		if p.Hole {
			ringPath(dc, vp, p.Ring)
			dc.Fill()
		}
	}
	if o.BoundaryWidth > 0 {
		dc.SetColor(outline)
		dc.SetLineWidth(o.BoundaryWidth)
		for _, p := range polys {
			ringPath(dc, vp, p.Ring)
		}
		dc.Stroke()
	}
	dc.ResetClip()
	if o.Frame {
		dc.SetColor(outline)
		dc.SetLineWidth(1)
		dc.DrawRectangle(float64(vp.Plot.Min.X)+0.5, float64(vp.Plot.Min.Y)+0.5, float64(vp.Plot.Dx())-1, float64(vp.Plot.Dy())-1)
		dc.Stroke()
	}

	mask := image.NewNRGBA(vp.Bounds())
	draw.Draw(mask, mask.Bounds(), dc.Image(), image.Point{}, draw.Src)
	KeyOut(mask, KeyColor)
	return mask
}

// KeyOut rewrites every pixel whose RGB equals key (alpha ignored) to
// Clear and returns how many it changed. Other pixels are untouched.
func KeyOut(img *image.NRGBA, key color.NRGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			px := row[4*x : 4*x+4]
			if px[0] == key.R && px[1] == key.G && px[2] == key.B {
				px[0], px[1], px[2], px[3] = Clear.R, Clear.G, Clear.B, Clear.A
				n++
			}
		}
	}
	return n
}
