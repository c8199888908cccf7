package interp

import (
	"errors"
	"math"
	"testing"
)

func plane(x, y float64) float64 { return 2*x + 3*y + 1 }

func planePoints() []Point {
	xy := [][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {1, 2}, {3, 1}, {2, 3}, {2.5, 2.2}}
	pts := make([]Point, len(xy))
	for i, p := range xy {
		pts[i] = Point{X: p[0], Y: p[1], Z: plane(p[0], p[1])}
	}
	return pts
}

func TestInterpolateShape(t *testing.T) {
	for _, m := range []Method{Cubic, Linear, Nearest} {
		s, err := Interpolate(planePoints(), 7, 5, m)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if s.Rows() != 5 || s.Cols() != 7 || len(s.Values) != 5 {
			t.Fatalf("%s: shape %dx%d", m, s.Rows(), s.Cols())
		}
		for i, row := range s.Values {
			if len(row) != 7 {
				t.Fatalf("%s: row %d has %d cells", m, i, len(row))
			}
		}
		if s.Xs[0] != 0 || s.Xs[6] != 4 || s.Ys[0] != 0 || s.Ys[4] != 4 {
			t.Errorf("%s: mesh does not span the point cloud", m)
		}
	}
}

func TestInterpolateReproducesPlane(t *testing.T) {
	for _, m := range []Method{Linear, Cubic} {
		s, err := Interpolate(planePoints(), 21, 17, m)
		if err != nil {
			t.Fatal(err)
		}
		if n := s.Defined(); n != 21*17 {
			t.Errorf("%s: %d defined cells, want all", m, n)
		}
		for i, y := range s.Ys {
			for j, x := range s.Xs {
				v := s.Values[i][j]
				if math.IsNaN(v) {
					continue
				}
				if math.Abs(v-plane(x, y)) > 1e-9 {
					t.Fatalf("%s: (%v,%v) = %v, want %v", m, x, y, v, plane(x, y))
				}
			}
		}
	}
}

func TestInterpolateOutsideHullIsNaN(t *testing.T) {
	pts := []Point{{0, 0, 1}, {1, 0, 2}, {0, 1, 3}}
	for _, m := range []Method{Linear, Cubic} {
		s, err := Interpolate(pts, 11, 11, m)
		if err != nil {
			t.Fatal(err)
		}
		if !math.IsNaN(s.Values[10][10]) {
			t.Errorf("%s: far corner = %v, want NaN", m, s.Values[10][10])
		}
		if v := s.Values[0][0]; v != 1 {
			t.Errorf("%s: vertex cell = %v, want 1", m, v)
		}
	}
	s, err := Interpolate(pts, 11, 11, Nearest)
	if err != nil {
		t.Fatal(err)
	}
	if s.Defined() != 121 {
		t.Errorf("nearest left %d cells undefined", 121-s.Defined())
	}
	if v := s.Values[10][10]; v != 2 {
		t.Errorf("nearest far corner = %v, want first of tied samples", v)
	}
}

func TestInterpolateDegenerate(t *testing.T) {
	collinear := []Point{{0, 0, 1}, {1, 1, 2}, {2, 2, 3}}
	for _, m := range []Method{Linear, Cubic} {
		s, err := Interpolate(collinear, 4, 4, m)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if s.Defined() != 0 {
			t.Errorf("%s: %d defined cells, want none", m, s.Defined())
		}
	}
}

func TestInterpolateErrors(t *testing.T) {
	if _, err := Interpolate(nil, 4, 4, Linear); !errors.Is(err, ErrNoSamples) {
		t.Errorf("no points: %v", err)
	}
	if _, err := Interpolate(planePoints(), 1, 4, Linear); !errors.Is(err, ErrMeshSize) {
		t.Errorf("one column: %v", err)
	}
	if _, err := Interpolate(planePoints(), 4, 4, Method("spline")); err == nil {
		t.Error("unknown method: expected error")
	}
}

func TestParseMethod(t *testing.T) {
	tests := map[string]Method{"": Cubic, "CUBIC": Cubic, " linear": Linear, "Nearest": Nearest}
	for in, want := range tests {
		got, err := ParseMethod(in)
		if err != nil || got != want {
			t.Errorf("ParseMethod(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMethod("rbf"); err == nil {
		t.Error("expected error for rbf")
	}
}

func TestClamp(t *testing.T) {
	s := &Surface{
		Xs:     []float64{0, 1, 2},
		Ys:     []float64{0, 1},
		Values: [][]float64{{15, 2, math.NaN()}, {5, 10, 7}},
	}
	s.Clamp(5, 10)
	want := [][]float64{{10, 5, math.NaN()}, {5, 10, 7}}
	for i := range want {
		for j := range want[i] {
			got, w := s.Values[i][j], want[i][j]
			if math.IsNaN(w) {
				if !math.IsNaN(got) {
					t.Errorf("[%d][%d] = %v, want NaN", i, j, got)
				}
				continue
			}
			if got != w {
				t.Errorf("[%d][%d] = %v, want %v", i, j, got, w)
			}
		}
	}
}

func TestSurfaceAt(t *testing.T) {
	s := &Surface{
		Xs:     []float64{0, 1},
		Ys:     []float64{0, 2},
		Values: [][]float64{{0, 1}, {2, 3}},
	}
	if v := s.At(0.5, 1); math.Abs(v-1.5) > 1e-12 {
		t.Errorf("At centre = %v, want 1.5", v)
	}
	if v := s.At(1, 2); v != 3 {
		t.Errorf("At far corner = %v, want 3", v)
	}
	if v := s.At(2, 2); !math.IsNaN(v) {
		t.Errorf("At outside = %v, want NaN", v)
	}
	lo, hi, ok := s.Range()
	if !ok || lo != 0 || hi != 3 {
		t.Errorf("Range = %v %v %v", lo, hi, ok)
	}
}
