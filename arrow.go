package edgegeom

import "iter"

// ArrowTip is the filled triangle at the target end of a directed connection.
type ArrowTip struct {
	// Tip lies on the target anchor's boundary.
	Tip Point
	// Left and Right are the corners of the base.
	Left  Point
	Right Point
}

// NewArrowTip returns an arrow tip pointing in direction dir, whose tip is at
// tip. The triangle is scale·weight long and equally wide.
//
// A zero dir yields a tip collapsed into a single point.
func NewArrowTip(tip Point, dir Vec2, weight int, scale float64) ArrowTip {
	mag := dir.Hypot()
	if mag == 0 {
		return ArrowTip{tip, tip, tip}
	}
	u := dir.Div(mag)
	size := scale * float64(weight)
	base := tip.Translate(u.Mul(-size))
	half := u.Perp().Mul(size / 2)
	return ArrowTip{
		Tip:   tip,
		Left:  base.Translate(half),
		Right: base.Translate(half.Negate()),
	}
}

// Direction returns the unit vector the tip points in.
func (a ArrowTip) Direction() Vec2 {
	d := a.Tip.Sub(a.Left.Midpoint(a.Right))
	if d.Hypot2() == 0 {
		return Vec2{}
	}
	return d.Normalize()
}

func (a ArrowTip) BoundingBox() Rect {
	return NewRectFromPoints(a.Left, a.Right).UnionPoint(a.Tip)
}

func (a ArrowTip) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		_ = yield(MoveTo(a.Tip)) &&
			yield(LineTo(a.Left)) &&
			yield(LineTo(a.Right)) &&
			yield(ClosePath())
	}
}
