package interp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoSamples = errors.New("interp: no input points")
	ErrMeshSize  = errors.New("interp: mesh needs at least 2 columns and 2 rows")
)

// Surface is a rows x cols grid of values over a regular mesh. Values[i][j]
// belongs to (Xs[j], Ys[i]). Cells the method cannot reach hold NaN.
type Surface struct {
	Xs     []float64
	Ys     []float64
	Values [][]float64
}

// NewSurface spans cols x rows evenly over [minX,maxX] x [minY,maxY] with
// every cell set to NaN.
func NewSurface(minX, maxX, minY, maxY float64, cols, rows int) (*Surface, error) {
	if cols < 2 || rows < 2 {
		return nil, ErrMeshSize
	}
	s := &Surface{
		Xs:     floats.Span(make([]float64, cols), minX, maxX),
		Ys:     floats.Span(make([]float64, rows), minY, maxY),
		Values: make([][]float64, rows),
	}
	for i := range s.Values {
		row := make([]float64, cols)
		for j := range row {
			row[j] = math.NaN()
		}
		s.Values[i] = row
	}
	return s, nil
}

func (s *Surface) Rows() int { return len(s.Ys) }
func (s *Surface) Cols() int { return len(s.Xs) }

// Range returns the extremes over defined cells; ok is false when every
// cell is NaN.
func (s *Surface) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range s.Values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

// Defined counts the non-NaN cells.
func (s *Surface) Defined() int {
	n := 0
	for _, row := range s.Values {
		for _, v := range row {
			if !math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}

// Clamp limits every defined cell to [lo, hi]. NaN cells stay NaN.
func (s *Surface) Clamp(lo, hi float64) {
	for _, row := range s.Values {
		for j, v := range row {
			switch {
			case math.IsNaN(v):
			case v > hi:
				row[j] = hi
			case v < lo:
				row[j] = lo
			}
		}
	}
}

// At samples the surface at (x, y) bilinearly. Outside the mesh, or next
// to a NaN cell, it returns NaN.
func (s *Surface) At(x, y float64) float64 {
	c, r := s.Cols(), s.Rows()
	if c < 2 || r < 2 {
		return math.NaN()
	}
	x0, x1 := s.Xs[0], s.Xs[c-1]
	y0, y1 := s.Ys[0], s.Ys[r-1]
	if x < x0 || x > x1 || y < y0 || y > y1 || x1 == x0 || y1 == y0 {
		return math.NaN()
	}
	fx := (x - x0) / (x1 - x0) * float64(c-1)
	fy := (y - y0) / (y1 - y0) * float64(r-1)
	j := int(math.Min(math.Floor(fx), float64(c-2)))
	i := int(math.Min(math.Floor(fy), float64(r-2)))
	tx, ty := fx-float64(j), fy-float64(i)
	v00, v01 := s.Values[i][j], s.Values[i][j+1]
	v10, v11 := s.Values[i+1][j], s.Values[i+1][j+1]
	return (v00*(1-tx)+v01*tx)*(1-ty) + (v10*(1-tx)+v11*tx)*ty
}
