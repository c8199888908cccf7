package geom

import "testing"

func TestSplitRings(t *testing.T) {
	sq := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}
	tri := []Point{{5, 5}, {6, 5}, {6, 6}, {5, 5}}
	flat := append(append([]Point{}, sq...), tri...)

	tests := []struct {
		name  string
		in    []Point
		rings int
	}{
		{"single", sq, 1},
		{"two concatenated", flat, 2},
		{"open tail kept", []Point{{0, 0}, {1, 0}, {1, 1}}, 1},
		{"too short", []Point{{0, 0}, {1, 0}}, 0},
		{"empty", nil, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitRings(tc.in, ClosureTolerance)
			if len(got) != tc.rings {
				t.Fatalf("got %d rings, want %d", len(got), tc.rings)
			}
			for i, r := range got {
				if r[0] != r[len(r)-1] {
					t.Errorf("ring %d not closed: %v", i, r)
				}
			}
		})
	}
}

func TestSplitRingsSnapsClosure(t *testing.T) {
	in := []Point{{0, 0}, {1, 0}, {1, 1}, {1e-12, -1e-12}}
	got := SplitRings(in, ClosureTolerance)
	if len(got) != 1 {
		t.Fatalf("got %d rings, want 1", len(got))
	}
	last := got[0][len(got[0])-1]
	if last != (Point{0, 0}) {
		t.Errorf("closing vertex = %v, want exact start", last)
	}
}

func TestSignedArea(t *testing.T) {
	ccw := Polygon{Ring: []Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}}
	if a := ccw.SignedArea(); a != 4 {
		t.Errorf("ccw area = %v, want 4", a)
	}
	cw := Polygon{Ring: []Point{{0, 0}, {0, 2}, {2, 2}, {2, 0}, {0, 0}}}
	if a := cw.SignedArea(); a != -4 {
		t.Errorf("cw area = %v, want -4", a)
	}
}

func TestPolygonSetBounds(t *testing.T) {
	set := PolygonSet{
		{Ring: []Point{{0, 0}, {1, 0}, {1, 1}, {0, 0}}},
		{Ring: []Point{{-3, 2}, {4, 5}, {0, 7}, {-3, 2}}},
	}
	b := set.Bounds()
	want := BBox{MinX: -3, MinY: 0, MaxX: 4, MaxY: 7}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
	if !PolygonSet(nil).Bounds().Empty() {
		t.Error("empty set should have empty bounds")
	}
}
