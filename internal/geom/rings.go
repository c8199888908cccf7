package geom

import "math"

// ClosureTolerance is the distance under which a vertex is treated as
// revisiting the start of its ring.
const ClosureTolerance = 1e-9

// SplitRings cuts a flat vertex sequence into closed rings. A ring ends
// when a vertex comes back within tol of the ring's first vertex; that
// vertex is snapped onto the start so every ring closes exactly. A trailing
// run that never closes is kept, closed, if it has at least three vertices.
func SplitRings(pts []Point, tol float64) [][]Point {
	var rings [][]Point
	var cur []Point
	for _, p := range pts {
		if len(cur) == 0 {
			cur = append(cur, p)
			continue
		}
		start := cur[0]
		if len(cur) >= 3 && near(p, start, tol) {
			cur = append(cur, start)
			rings = append(rings, cur)
			cur = nil
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) >= 3 {
		rings = append(rings, closeRing(cur))
	}
	return rings
}

func closeRing(r []Point) []Point {
	if len(r) == 0 || r[0] == r[len(r)-1] {
		return r
	}
	return append(r, r[0])
}

func near(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}
