package geom

import "math"

// Point is a lon/lat (or projected x/y) pair.
type Point struct {
	X float64
	Y float64
}

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// EmptyBBox returns a box that any Extend call replaces.
func EmptyBBox() BBox {
	return BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

func (b *BBox) Extend(x, y float64) {
	if x < b.MinX {
		b.MinX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

func (b BBox) Empty() bool     { return b.MinX > b.MaxX || b.MinY > b.MaxY }
func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Grow returns the box enlarged by d on every side.
func (b BBox) Grow(d float64) BBox {
	return BBox{MinX: b.MinX - d, MinY: b.MinY - d, MaxX: b.MaxX + d, MaxY: b.MaxY + d}
}

func (b BBox) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Sample is one measurement at a location.
type Sample struct {
	Value float64
	Lon   float64
	Lat   float64
}

// Country labels a boundary polygon.
type Country struct {
	Admin string
	Name  string
	Code  string // ISO 3166-1 alpha-3
}

// Polygon is a closed ring: the last vertex equals the first.
type Polygon struct {
	Ring    []Point
	Hole    bool
	Country Country
}

func (p Polygon) Bounds() BBox {
	b := EmptyBBox()
	for _, v := range p.Ring {
		b.Extend(v.X, v.Y)
	}
	return b
}

// SignedArea is positive for counter-clockwise rings.
func (p Polygon) SignedArea() float64 {
	var a float64
	n := len(p.Ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += p.Ring[i].X*p.Ring[j].Y - p.Ring[j].X*p.Ring[i].Y
	}
	return a / 2
}

// PolygonSet is an ordered collection of boundary polygons.
type PolygonSet []Polygon

func (s PolygonSet) Bounds() BBox {
	b := EmptyBBox()
	for _, p := range s {
		for _, v := range p.Ring {
			b.Extend(v.X, v.Y)
		}
	}
	return b
}

func SampleBounds(samples []Sample) BBox {
	b := EmptyBBox()
	for _, s := range samples {
		b.Extend(s.Lon, s.Lat)
	}
	return b
}
