// Package anchor builds the synthetic points that let interpolation reach
// past the sample cloud to the edges of the rendered window.
package anchor

import (
	"errors"
	"math"

	"climap/internal/geom"
)

// DefaultMargin is added to every side of the boundary window, in degrees.
const DefaultMargin = 0.5

var ErrNoSamples = errors.New("anchor: no samples to borrow values from")

// Anchor is a synthetic point whose value comes from the nearest sample.
type Anchor struct {
	X     float64
	Y     float64
	Value float64
}

// Result holds the enclosing rectangle and the anchors derived from it.
// Nodes run (maxX,minY), (minX,minY), (minX,maxY), (maxX,maxY) and repeat
// the first node to close the loop. Anchors are the midpoints of the four
// edges: bottom, left, top, right. Corners are Nodes[0:4].
type Result struct {
	Nodes   [5]geom.Point
	Anchors [4]Anchor
	Corners [4]geom.Point
}

// Extent is the rectangle spanned by the corners.
func (r Result) Extent() geom.BBox {
	return geom.BBox{MinX: r.Nodes[1].X, MinY: r.Nodes[1].Y, MaxX: r.Nodes[3].X, MaxY: r.Nodes[3].Y}
}

// Window picks the box anchors are built around: the zoom window when one
// is set and extrapolation into it is enabled, otherwise the polygon bounds.
func Window(polys geom.PolygonSet, zoom *geom.BBox, intoZoom bool) geom.BBox {
	if zoom != nil && intoZoom {
		return *zoom
	}
	return polys.Bounds()
}

// Synthesize grows window by margin, derives the corner nodes and edge
// midpoints, and gives every midpoint the value of its nearest sample.
func Synthesize(window geom.BBox, margin float64, samples []geom.Sample) (Result, error) {
	if len(samples) == 0 {
		return Result{}, ErrNoSamples
	}
	var r Result
	r.Nodes = nodes(window, margin)
	copy(r.Corners[:], r.Nodes[:4])
	for i, p := range midpoints(r.Nodes) {
		r.Anchors[i] = Borrow(p, samples)
	}
	return r, nil
}

func nodes(b geom.BBox, d float64) [5]geom.Point {
	n1 := geom.Point{X: b.MaxX + d, Y: b.MinY - d}
	n2 := geom.Point{X: b.MinX - d, Y: b.MinY - d}
	n3 := geom.Point{X: b.MinX - d, Y: b.MaxY + d}
	n4 := geom.Point{X: b.MaxX + d, Y: b.MaxY + d}
	return [5]geom.Point{n1, n2, n3, n4, n1}
}

func midpoints(n [5]geom.Point) [4]geom.Point {
	return [4]geom.Point{
		{X: n[0].X - math.Abs(n[0].X-n[1].X)/2, Y: n[0].Y},
		{X: n[1].X, Y: n[1].Y + math.Abs(n[1].Y-n[2].Y)/2},
		{X: n[2].X + math.Abs(n[3].X-n[2].X)/2, Y: n[2].Y},
		{X: n[3].X, Y: n[3].Y - math.Abs(n[3].Y-n[4].Y)/2},
	}
}

// Borrow returns p carrying the value of its nearest sample.
func Borrow(p geom.Point, samples []geom.Sample) Anchor {
	i := Nearest(p, samples)
	if i < 0 {
		return Anchor{X: p.X, Y: p.Y, Value: math.NaN()}
	}
	return Anchor{X: p.X, Y: p.Y, Value: samples[i].Value}
}

// Nearest returns the index of the sample closest to p by planar distance
// in degrees. On ties the first sample wins. It returns -1 for no samples.
func Nearest(p geom.Point, samples []geom.Sample) int {
	best, bestD := -1, math.Inf(1)
	for i, s := range samples {
		dx, dy := s.Lon-p.X, s.Lat-p.Y
		if d := dx*dx + dy*dy; d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
