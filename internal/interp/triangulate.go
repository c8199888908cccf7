package interp

import (
	"fmt"
	"math"

	"github.com/fogleman/delaunay"
)

// baryEps admits cells lying on a triangle edge.
const baryEps = 1e-10

type mesh struct {
	pts []Point
	tri []int // vertex indices, three per triangle
}

func triangulate(pts []Point) (*mesh, error) {
	dp := make([]delaunay.Point, len(pts))
	for i, p := range pts {
		dp[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	t, err := delaunay.Triangulate(dp)
	if err != nil {
		return nil, fmt.Errorf("triangulation: %w", err)
	}
	if len(t.Triangles) == 0 {
		return nil, fmt.Errorf("triangulation: no triangles for %d points", len(pts))
	}
	return &mesh{pts: pts, tri: t.Triangles}, nil
}

// rasterize calls fn for every still-undefined surface cell inside a
// triangle, with the triangle index and the cell's barycentric weights.
func (m *mesh) rasterize(s *Surface, fn func(t int, u, v, w float64) float64) {
	c, r := s.Cols(), s.Rows()
	x0, dx := s.Xs[0], (s.Xs[c-1]-s.Xs[0])/float64(c-1)
	y0, dy := s.Ys[0], (s.Ys[r-1]-s.Ys[0])/float64(r-1)
	span := func(lo, hi, origin, step float64, n int) (int, int) {
		if step == 0 {
			return 0, n - 1
		}
		a := int(math.Ceil((lo-origin)/step - baryEps))
		b := int(math.Floor((hi-origin)/step + baryEps))
		return max(a, 0), min(b, n-1)
	}
	for t := 0; t < len(m.tri)/3; t++ {
		a, b, cc := m.pts[m.tri[3*t]], m.pts[m.tri[3*t+1]], m.pts[m.tri[3*t+2]]
		det := (b.Y-cc.Y)*(a.X-cc.X) + (cc.X-b.X)*(a.Y-cc.Y)
		if det == 0 {
			continue
		}
		j0, j1 := span(math.Min(a.X, math.Min(b.X, cc.X)), math.Max(a.X, math.Max(b.X, cc.X)), x0, dx, c)
		i0, i1 := span(math.Min(a.Y, math.Min(b.Y, cc.Y)), math.Max(a.Y, math.Max(b.Y, cc.Y)), y0, dy, r)
		for i := i0; i <= i1; i++ {
			y := s.Ys[i]
			for j := j0; j <= j1; j++ {
				if !math.IsNaN(s.Values[i][j]) {
					continue
				}
				x := s.Xs[j]
				u := ((b.Y-cc.Y)*(x-cc.X) + (cc.X-b.X)*(y-cc.Y)) / det
				v := ((cc.Y-a.Y)*(x-cc.X) + (a.X-cc.X)*(y-cc.Y)) / det
				w := 1 - u - v
				if u < -baryEps || v < -baryEps || w < -baryEps {
					continue
				}
				s.Values[i][j] = fn(t, u, v, w)
			}
		}
	}
}

func fillLinear(s *Surface, m *mesh) {
	m.rasterize(s, func(t int, u, v, w float64) float64 {
		a, b, c := m.pts[m.tri[3*t]], m.pts[m.tri[3*t+1]], m.pts[m.tri[3*t+2]]
		return u*a.Z + v*b.Z + w*c.Z
	})
}
