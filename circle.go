package edgegeom

import (
	"iter"
	"math"
)

type Circle struct {
	Center Point
	Radius float64
}

func (c Circle) BoundingBox() Rect {
	r := math.Abs(c.Radius)
	x := c.Center.X
	y := c.Center.Y
	return Rect{
		X0: x - r,
		Y0: y - r,
		X1: x + r,
		Y1: y + r,
	}
}

// Nearest returns the point on the circle closest to pt, along with its
// distance to pt. That point lies on the ray from the center through pt.
//
// Every point of the circle is equally close to its center. In that case the
// point at angle 0 is returned.
func (c Circle) Nearest(pt Point) (Point, float64) {
	v := pt.Sub(c.Center)
	dist := v.Hypot()
	if dist == 0 {
		return c.Center.Translate(Vec(c.Radius, 0)), math.Abs(c.Radius)
	}
	return c.Center.Translate(v.Mul(c.Radius / dist)), math.Abs(c.Radius - dist)
}

// PointAt returns the point of the circle at angle th.
func (c Circle) PointAt(th float64) Point {
	return c.Center.Translate(VecFromAngle(th).Mul(c.Radius))
}

// PathElements approximates the circle with cubic Béziers whose error stays
// below tolerance.
func (c Circle) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		scaledError := math.Abs(c.Radius) / tolerance
		var n int
		var armLength float64
		if scaledError < 1.0/1.9608e-4 {
			// Solution from http://spencermortensen.com/articles/bezier-circle/
			n = 4
			armLength = 0.551915024494
		} else {
			// This is empirically determined to fall within error tolerance.
			n = int(math.Ceil(math.Pow(1.1163*scaledError, 1.0/6.0)))
			armLength = (4.0 / 3.0) * math.Tan(math.Pi/2/(float64(n)))
		}

		x, y := c.Center.Splat()
		r := c.Radius
		if !yield(MoveTo(Pt(x+r, y))) {
			return
		}
		deltaTh := 2.0 * math.Pi / float64(n)
		for ix := 1; ix <= n; ix++ {
			a := armLength
			th1 := deltaTh * float64(ix)
			th0 := th1 - deltaTh
			s0, c0 := math.Sincos(th0)
			var s1, c1 float64
			if ix == n {
				s1 = 0.0
				c1 = 1.0
			} else {
				s1, c1 = math.Sincos(th1)
			}
			if !yield(CubicTo(
				Pt(x+r*(c0-a*s0), y+r*(s0+a*c0)),
				Pt(x+r*(c1+a*s1), y+r*(s1-a*c1)),
				Pt(x+r*c1, y+r*s1),
			)) {
				return
			}
		}
		yield(ClosePath())
	}
}
