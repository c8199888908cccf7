// Package raster draws the layers of a map image: interpolated contours,
// the boundary mask and the coordinate grid.
package raster

import (
	"errors"
	"image"
	"math"

	"climap/internal/geom"
)

// Viewport maps a lon/lat window onto the plot rectangle of a canvas.
type Viewport struct {
	Window geom.BBox
	Plot   image.Rectangle
	Size   image.Point
}

// Layout controls the canvas around the plot.
type Layout struct {
	PlotWidth int
	Padding   int
	// TopBand reserves extra rows above the plot, e.g. for a colorbar.
	TopBand int
}

// NewViewport sizes the plot from the window's aspect at its mid latitude.
func NewViewport(win geom.BBox, l Layout) (Viewport, error) {
	if win.Empty() || win.Width() <= 0 || win.Height() <= 0 {
		return Viewport{}, errors.New("raster: viewport window has no area")
	}
	if l.PlotWidth <= 0 {
		return Viewport{}, errors.New("raster: plot width must be positive")
	}
	k := math.Max(math.Cos((win.MinY+win.MaxY)/2*math.Pi/180), 0.1)
	h := int(math.Round(float64(l.PlotWidth) * win.Height() / (win.Width() * k)))
	h = min(max(h, 1), 8*l.PlotWidth)
	top := l.Padding + l.TopBand
	plot := image.Rect(l.Padding, top, l.Padding+l.PlotWidth, top+h)
	return Viewport{
		Window: win,
		Plot:   plot,
		Size:   image.Pt(plot.Max.X+l.Padding, plot.Max.Y+l.Padding),
	}, nil
}

func (v Viewport) Bounds() image.Rectangle { return image.Rectangle{Max: v.Size} }

// ToPixel converts lon/lat into canvas pixel coordinates.
func (v Viewport) ToPixel(lon, lat float64) (x, y float64) {
	x = float64(v.Plot.Min.X) + (lon-v.Window.MinX)/v.Window.Width()*float64(v.Plot.Dx())
	y = float64(v.Plot.Max.Y) - (lat-v.Window.MinY)/v.Window.Height()*float64(v.Plot.Dy())
	return x, y
}

// ToLonLat is the inverse of ToPixel.
func (v Viewport) ToLonLat(x, y float64) (lon, lat float64) {
	lon = v.Window.MinX + (x-float64(v.Plot.Min.X))/float64(v.Plot.Dx())*v.Window.Width()
	lat = v.Window.MinY + (float64(v.Plot.Max.Y)-y)/float64(v.Plot.Dy())*v.Window.Height()
	return lon, lat
}
