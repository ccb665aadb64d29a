package edgegeom

import (
	"iter"
	"math"
)

// candidateTolerance is how far from the real axis a root of the distance
// cubic may lie and still be tried as a nearest-point candidate. Candidates
// are checked by exact distance, so a loose tolerance only costs an Eval.
const candidateTolerance = 1e-6

type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

func (q QuadBez) BoundingBox() Rect {
	bbox := NewRectFromPoints(q.P0, q.P2)
	ts, n := q.Extrema()
	for _, t := range ts[:n] {
		bbox = bbox.UnionPoint(q.Eval(t))
	}
	return bbox
}

func (q QuadBez) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		_ = yield(MoveTo(q.P0)) &&
			yield(QuadTo(q.P1, q.P2))
	}
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

func (q QuadBez) Start() Point {
	return q.P0
}

func (q QuadBez) End() Point {
	return q.P2
}

// Extrema returns the parameters in (0, 1) at which the curve has an extremum
// in x or y.
func (q QuadBez) Extrema() ([2]float64, int) {
	// Finding the extrema of a quadratic bezier means finding the roots in the
	// quadratic's first derivative, which is a line.

	var out [2]float64
	var outN int
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)
	if dd.X != 0.0 {
		t := -d0.X / dd.X
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
		}
	}
	if dd.Y != 0 {
		t := -d0.Y / dd.Y
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
			if outN == 2 && out[0] > t {
				out[0], out[1] = out[1], out[0]
			}
		}
	}
	return out, outN
}

// DistanceCubic returns the coefficients of the cubic n1 t³ + n2 t² + n3 t + n4
// whose roots are the stationary points of the squared distance between pt
// and the curve.
//
// With A = P0 − 2 P1 + P2, B = P1 − P0 and D = P0 − pt, half the derivative of
// |q(t) − pt|² is (D + 2tB + t²A)·(B + tA).
func (q QuadBez) DistanceCubic(pt Point) (n1, n2, n3, n4 float64) {
	a := Vec2(q.P0).Add(Vec2(q.P2)).Sub(Vec2(q.P1).Mul(2.0))
	b := q.P1.Sub(q.P0)
	d := q.P0.Sub(pt)
	n1 = a.Hypot2()
	n2 = 3.0 * a.Dot(b)
	n3 = 2.0*b.Hypot2() + d.Dot(a)
	n4 = d.Dot(b)
	return n1, n2, n3, n4
}

// Nearest returns the point on the curve closest to pt, along with its
// distance to pt.
//
// The candidates are both endpoints and the curve points at every real root
// of [QuadBez.DistanceCubic] in [0, 1]. If the control point is the chord's
// midpoint, the cubic degenerates (its leading coefficient is zero) and the
// curve is answered as a straight line.
func (q QuadBez) Nearest(pt Point) (Point, float64) {
	n1, n2, n3, n4 := q.DistanceCubic(pt)
	if n1 == 0 {
		return Line{q.P0, q.P2}.Nearest(pt)
	}

	best := q.P0
	bestDist := pt.DistanceSquared(q.P0)
	if d := pt.DistanceSquared(q.P2); d < bestDist {
		best, bestDist = q.P2, d
	}
	ts, n := RealRoots(CubicRoots(n1, n2, n3, n4), candidateTolerance)
	for _, t := range ts[:n] {
		if !(t >= 0.0 && t <= 1.0) {
			continue
		}
		p := q.Eval(t)
		if d := pt.DistanceSquared(p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, math.Sqrt(bestDist)
}

// Tangents returns the curve's direction at its start and end.
func (q QuadBez) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	d01 := q.P1.Sub(q.P0)
	var d0, d1 Vec2
	if d01.Hypot2() > epsilon {
		d0 = d01
	} else {
		d0 = q.P2.Sub(q.P0)
	}
	d12 := q.P2.Sub(q.P1)
	if d12.Hypot2() > epsilon {
		d1 = d12
	} else {
		d1 = q.P2.Sub(q.P0)
	}
	return d0, d1
}
