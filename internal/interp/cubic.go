package interp

import (
	"slices"

	"gonum.org/v1/gonum/mat"
)

// fillCubic evaluates a cubic Bezier triangle on every Delaunay triangle.
// Edge control points come from vertex values and least-squares vertex
// gradients; the centre point is chosen so that linear data is reproduced
// exactly.
func fillCubic(s *Surface, m *mesh) {
	grads := m.gradients()
	type patch struct {
		b300, b030, b003                   float64
		b210, b201, b120, b021, b102, b012 float64
		b111                               float64
	}
	patches := make([]patch, len(m.tri)/3)
	for t := range patches {
		ia, ib, ic := m.tri[3*t], m.tri[3*t+1], m.tri[3*t+2]
		a, b, c := m.pts[ia], m.pts[ib], m.pts[ic]
		ga, gb, gc := grads[ia], grads[ib], grads[ic]
		edge := func(p Point, g [2]float64, q Point) float64 {
			return p.Z + (g[0]*(q.X-p.X)+g[1]*(q.Y-p.Y))/3
		}
		p := patch{
			b300: a.Z, b030: b.Z, b003: c.Z,
			b210: edge(a, ga, b), b201: edge(a, ga, c),
			b120: edge(b, gb, a), b021: edge(b, gb, c),
			b102: edge(c, gc, a), b012: edge(c, gc, b),
		}
		e := p.b210 + p.b201 + p.b120 + p.b021 + p.b102 + p.b012
		p.b111 = e/4 - (a.Z+b.Z+c.Z)/6
		patches[t] = p
	}
	m.rasterize(s, func(t int, u, v, w float64) float64 {
		p := patches[t]
		return p.b300*u*u*u + p.b030*v*v*v + p.b003*w*w*w +
			3*(p.b210*u*u*v+p.b201*u*u*w+p.b120*u*v*v+p.b021*v*v*w+p.b102*u*w*w+p.b012*v*w*w) +
			6*p.b111*u*v*w
	})
}

// gradients estimates df/dx, df/dy at every vertex by a least-squares plane
// through its Delaunay neighbours. Vertices with fewer than two neighbours,
// or collinear ones, get a zero gradient.
func (m *mesh) gradients() [][2]float64 {
	nb := make([][]int, len(m.pts))
	for t := 0; t < len(m.tri)/3; t++ {
		a, b, c := m.tri[3*t], m.tri[3*t+1], m.tri[3*t+2]
		nb[a] = append(nb[a], b, c)
		nb[b] = append(nb[b], a, c)
		nb[c] = append(nb[c], a, b)
	}
	out := make([][2]float64, len(m.pts))
	for i, set := range nb {
		slices.Sort(set)
		set = slices.Compact(set)
		if len(set) < 2 {
			continue
		}
		p := m.pts[i]
		a := mat.NewDense(len(set), 2, nil)
		b := mat.NewVecDense(len(set), nil)
		for k, j := range set {
			q := m.pts[j]
			a.Set(k, 0, q.X-p.X)
			a.Set(k, 1, q.Y-p.Y)
			b.SetVec(k, q.Z-p.Z)
		}
		var g mat.VecDense
		if err := g.SolveVec(a, b); err != nil {
			continue
		}
		out[i] = [2]float64{g.AtVec(0), g.AtVec(1)}
	}
	return out
}
