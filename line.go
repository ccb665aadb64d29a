package edgegeom

import "iter"

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross. It reports false for parallel lines.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.Cross(cd)
	if pcd == 0 {
		return Point{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0)) / pcd
	return o.P0.Translate(cd.Mul(h)), true
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

func (l Line) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		_ = yield(MoveTo(l.P0)) &&
			yield(LineTo(l.P1))
	}
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Project returns the parameter of the orthogonal projection of pt onto the
// infinite line through l. The segment itself spans t ∈ [0, 1].
//
// The projection uses a dot product instead of slopes, so vertical and
// horizontal lines need no special handling. For a zero-length line, the
// result is 0.
func (l Line) Project(pt Point) float64 {
	d := l.P1.Sub(l.P0)
	dSquared := d.Hypot2()
	if dSquared == 0 {
		return 0
	}
	return d.Dot(pt.Sub(l.P0)) / dSquared
}

// Nearest returns the point on the segment closest to pt, along with its
// distance to pt.
//
// The candidates are both endpoints and, if it falls within the segment,
// the projection of pt onto the line.
func (l Line) Nearest(pt Point) (Point, float64) {
	best := l.P0
	bestDist := pt.DistanceSquared(l.P0)
	if d := pt.DistanceSquared(l.P1); d < bestDist {
		best, bestDist = l.P1, d
	}
	if l.P0 != l.P1 {
		if t := l.Project(pt); t >= 0 && t <= 1 {
			p := l.Eval(t)
			if d := pt.DistanceSquared(p); d < bestDist {
				best = p
			}
		}
	}
	return best, best.Distance(pt)
}

// Tangents returns the line's direction at its start and end.
func (l Line) Tangents() (Vec2, Vec2) {
	d := l.P1.Sub(l.P0)
	return d, d
}
