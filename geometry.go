package edgegeom

import (
	"fmt"
	"iter"
	"math"
)

type Kind int

const (
	// A straight segment.
	LineKind Kind = iota + 1
	// A quadratic Bézier.
	QuadKind
	// A full circle attached to a single anchor.
	ArcKind
)

func (k Kind) String() string {
	switch k {
	case LineKind:
		return "line"
	case QuadKind:
		return "quad"
	case ArcKind:
		return "arc"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Geometry is the laid-out shape of one connection. It is a tagged union over
// the three kinds of shapes a connection can take. Which fields are meaningful
// depends on Kind:
//
//   - LineKind: P0 and P1 are the endpoints.
//   - QuadKind: P0 and P2 are the endpoints, P1 is the control point.
//   - ArcKind: Center and Radius describe the loop, Anchor is the center of the
//     anchor it is attached to.
//
// Tip is set for directed connections.
type Geometry struct {
	// We don't use an interface so that switching over kinds stays exhaustive
	// and geometries can be stored by value in a layout.

	Kind Kind
	P0   Point
	P1   Point
	P2   Point

	Center Point
	Radius float64
	Anchor Point

	Tip *ArrowTip
}

func LineGeometry(l Line) Geometry {
	return Geometry{Kind: LineKind, P0: l.P0, P1: l.P1}
}

func QuadGeometry(q QuadBez) Geometry {
	return Geometry{Kind: QuadKind, P0: q.P0, P1: q.P1, P2: q.P2}
}

// ArcGeometry returns the geometry of loop c attached to the anchor centered
// at anchor.
func ArcGeometry(c Circle, anchor Point) Geometry {
	return Geometry{Kind: ArcKind, Center: c.Center, Radius: c.Radius, Anchor: anchor}
}

// Line returns the segment of a LineKind geometry.
func (g Geometry) Line() Line { return Line{g.P0, g.P1} }

// Quad returns the curve of a QuadKind geometry.
func (g Geometry) Quad() QuadBez { return QuadBez{g.P0, g.P1, g.P2} }

// Circle returns the loop of an ArcKind geometry.
func (g Geometry) Circle() Circle { return Circle{g.Center, g.Radius} }

// Nearest returns the point of the geometry closest to pt, along with its
// distance to pt. Arrow tips are not part of the query.
func (g Geometry) Nearest(pt Point) (Point, float64) {
	switch g.Kind {
	case LineKind:
		return g.Line().Nearest(pt)
	case QuadKind:
		return g.Quad().Nearest(pt)
	case ArcKind:
		return g.Circle().Nearest(pt)
	default:
		panic(fmt.Sprintf("unhandled case %v", g.Kind))
	}
}

// Midpoint returns the point halfway along the geometry. For loops, that is
// the point farthest from the anchor.
func (g Geometry) Midpoint() Point {
	switch g.Kind {
	case LineKind:
		return g.P0.Midpoint(g.P1)
	case QuadKind:
		return g.Quad().Eval(0.5)
	case ArcKind:
		away := g.Center.Sub(g.Anchor)
		if away.Hypot2() == 0 {
			return g.Circle().PointAt(0)
		}
		return g.Center.Translate(away.Normalize().Mul(g.Radius))
	default:
		panic(fmt.Sprintf("unhandled case %v", g.Kind))
	}
}

// Handles returns the points at which a selected geometry shows its selection
// handles: both ends and the middle for lines and curves, and the middle for
// loops.
func (g Geometry) Handles() []Point {
	switch g.Kind {
	case LineKind:
		return []Point{g.P0, g.P1, g.Midpoint()}
	case QuadKind:
		return []Point{g.P0, g.P2, g.Midpoint()}
	case ArcKind:
		return []Point{g.Midpoint()}
	default:
		panic(fmt.Sprintf("unhandled case %v", g.Kind))
	}
}

// BoundingBox returns the bounding box of the geometry, including its arrow
// tip.
func (g Geometry) BoundingBox() Rect {
	var bbox Rect
	switch g.Kind {
	case LineKind:
		bbox = g.Line().BoundingBox()
	case QuadKind:
		bbox = g.Quad().BoundingBox()
	case ArcKind:
		bbox = g.Circle().BoundingBox()
	default:
		panic(fmt.Sprintf("unhandled case %v", g.Kind))
	}
	if g.Tip != nil {
		bbox = bbox.Union(g.Tip.BoundingBox())
	}
	return bbox
}

// PathElements returns the outline of the geometry, without its arrow tip.
// Loops are approximated by cubic Béziers to within tolerance.
func (g Geometry) PathElements(tolerance float64) iter.Seq[PathElement] {
	switch g.Kind {
	case LineKind:
		return g.Line().PathElements()
	case QuadKind:
		return g.Quad().PathElements()
	case ArcKind:
		return g.Circle().PathElements(tolerance)
	default:
		panic(fmt.Sprintf("unhandled case %v", g.Kind))
	}
}

// Eval returns the point at parameter t ∈ [0, 1]. Loops are parametrized by
// angle, starting at angle 0.
func (g Geometry) Eval(t float64) Point {
	switch g.Kind {
	case LineKind:
		return g.Line().Eval(t)
	case QuadKind:
		return g.Quad().Eval(t)
	case ArcKind:
		return g.Circle().PointAt(t * 2 * math.Pi)
	default:
		panic(fmt.Sprintf("unhandled case %v", g.Kind))
	}
}
