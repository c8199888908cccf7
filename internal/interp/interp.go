// Package interp resamples scattered points onto a regular mesh.
package interp

import (
	"fmt"
	"log"
	"math"
	"strings"
)

type Method string

const (
	Cubic   Method = "cubic"
	Linear  Method = "linear"
	Nearest Method = "nearest"
)

// ParseMethod accepts a method name case-insensitively; empty means Cubic.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return Cubic, nil
	case Cubic, Linear, Nearest:
		return m, nil
	}
	return "", fmt.Errorf("interp: unknown method %q", s)
}

// Point is a scattered input location with its value.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Interpolate builds a rows x cols surface spanning the bounding box of pts
// and fills it with the chosen method. Linear and cubic leave cells outside
// the convex hull of pts as NaN; when no triangulation exists the whole
// surface stays NaN.
func Interpolate(pts []Point, cols, rows int, m Method) (*Surface, error) {
	if len(pts) == 0 {
		return nil, ErrNoSamples
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	s, err := NewSurface(minX, maxX, minY, maxY, cols, rows)
	if err != nil {
		return nil, err
	}
	switch m {
	case Nearest:
		fillNearest(s, pts)
	case Linear, Cubic, "":
		t, err := triangulate(pts)
		if err != nil {
			log.Printf("DEBUG: interp: %v; surface left undefined", err)
			return s, nil
		}
		if m == Linear {
			fillLinear(s, t)
		} else {
			fillCubic(s, t)
		}
	default:
		return nil, fmt.Errorf("interp: unknown method %q", m)
	}
	return s, nil
}

func fillNearest(s *Surface, pts []Point) {
	for i, y := range s.Ys {
		for j, x := range s.Xs {
			best, bestD := 0, math.Inf(1)
			for k, p := range pts {
				dx, dy := p.X-x, p.Y-y
				if d := dx*dx + dy*dy; d < bestD {
					best, bestD = k, d
				}
			}
			s.Values[i][j] = pts[best].Z
		}
	}
}
