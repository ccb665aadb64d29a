package edgegeom

import (
	"iter"
	"math"

	"github.com/google/uuid"
)

// FanAngles returns the rotation of each of k parallel connections. The angles
// are spread apart by spread and are symmetric around zero.
func FanAngles(k int, spread float64) []float64 {
	out := make([]float64, k)
	lower := float64(1-k) * spread / 2
	for i := range out {
		out[i] = lower + float64(i)*spread
	}
	return out
}

// LayoutGroup lays out the parallel connections between anchors a and b, in
// the order given. Connection i is rotated by FanAngles(len(conns))[i]. The
// angle is negated for connections that run from b to a, so that position i
// in the group always bulges to the same side. If the group has an odd number
// of connections, the middle one is a straight line.
//
// Anchors whose centers coincide produce zero-length lines at that center.
func LayoutGroup(a, b *Anchor, conns []*Connection, cfg Config) []Geometry {
	k := len(conns)
	angles := FanAngles(k, cfg.SpreadAngle)
	out := make([]Geometry, k)
	for i, c := range conns {
		from, to := a, b
		th := angles[i]
		if c.From != a.ID {
			from, to = b, a
			th = -th
		}
		straight := k%2 == 1 && i == k/2
		out[i] = layoutConnection(from, to, th, straight, c.Directed, c.Weight, cfg)
	}
	return out
}

func layoutConnection(from, to *Anchor, th float64, straight, directed bool, weight int, cfg Config) Geometry {
	d := to.Center.Sub(from.Center)
	dist := d.Hypot()
	if dist == 0 {
		return LineGeometry(Line{from.Center, from.Center})
	}
	u := d.Div(dist)
	// Radius vectors point from each anchor's center towards the other anchor
	// and are as long as the anchor's radius.
	rFrom := u.Mul(from.Radius)
	rTo := u.Negate().Mul(to.Radius)

	// Tips follow the curve's direction at its end. A curve that collapsed to
	// a point falls back to the radius vector.
	withTip := func(g Geometry, end Point, tangent, radius Vec2) Geometry {
		if directed {
			if tangent.Hypot2() == 0 {
				tangent = radius.Negate()
			}
			tip := NewArrowTip(end, tangent, weight, cfg.ArrowTipScale)
			g.Tip = &tip
		}
		return g
	}

	if straight {
		l := Line{from.Center.Translate(rFrom), to.Center.Translate(rTo)}
		_, end := l.Tangents()
		return withTip(LineGeometry(l), l.P1, end, rTo)
	}

	// Rotating the two radius vectors in opposite senses moves both endpoints to
	// the same side of the line between the centers.
	vFrom := rFrom.Rotate(th)
	vTo := rTo.Rotate(-th)
	p0 := from.Center.Translate(vFrom)
	p2 := to.Center.Translate(vTo)
	ctrl, ok := Line{p0, p0.Translate(vFrom)}.CrossingPoint(Line{p2, p2.Translate(vTo)})
	if !ok {
		l := Line{p0, p2}
		_, end := l.Tangents()
		return withTip(LineGeometry(l), p2, end, vTo)
	}
	q := QuadBez{p0, ctrl, p2}
	_, end := q.Tangents()
	return withTip(QuadGeometry(q), p2, end, vTo)
}

// SelfLoopRadius returns the radius of a self-loop on an anchor of radius r.
func SelfLoopRadius(r float64, cfg Config) float64 {
	return math.Sin(cfg.SelfLoopCentralAngle/2) * r / math.Sin(cfg.SelfLoopEdgeAngle/2)
}

// LayoutSelfLoop lays out a self-loop on anchor a that points in direction
// offset.
//
// The loop is a full circle. It crosses the anchor's boundary at offset ±
// SelfLoopCentralAngle/2, and the arc of the loop between the crossings spans
// SelfLoopEdgeAngle. The part of the circle inside the anchor is not trimmed.
// A directed loop ends at the crossing at offset + SelfLoopCentralAngle/2.
func LayoutSelfLoop(a *Anchor, offset float64, directed bool, weight int, cfg Config) Geometry {
	r := a.Radius
	half := cfg.SelfLoopCentralAngle / 2
	loopR := SelfLoopRadius(r, cfg)
	dir := VecFromAngle(offset)
	centralDist := loopR*math.Cos(cfg.SelfLoopEdgeAngle/2) + r*math.Cos(half)
	center := a.Center.Translate(dir.Mul(centralDist))
	g := ArcGeometry(Circle{center, loopR}, a.Center)

	if directed {
		end := a.Center.Translate(dir.Rotate(half).Mul(r))
		// Follow the loop's tangent at the crossing, heading into the anchor.
		tangent := end.Sub(center).Perp()
		if tangent.Dot(a.Center.Sub(end)) < 0 {
			tangent = tangent.Negate()
		}
		tip := NewArrowTip(end, tangent, weight, cfg.ArrowTipScale)
		g.Tip = &tip
	}
	return g
}

// LayoutSelfLoops lays out all self-loops of anchor a. Loops without their
// own angle are spaced evenly around the anchor, starting at
// cfg.SelfLoopBaseAngle.
func LayoutSelfLoops(a *Anchor, conns []*Connection, cfg Config) []Geometry {
	out := make([]Geometry, len(conns))
	step := 2 * math.Pi / float64(len(conns))
	for i, c := range conns {
		offset := cfg.SelfLoopBaseAngle + float64(i)*step
		if c.HasLoopAngle {
			offset = c.LoopAngle
		}
		out[i] = LayoutSelfLoop(a, offset, c.Directed, c.Weight, cfg)
	}
	return out
}

// Preview returns the geometry of a connection that is still being drawn: a
// straight line from the center of anchor from to the cursor. A directed
// preview ends in an arrow tip at the cursor.
func Preview(from *Anchor, cursor Point, directed bool, weight int, cfg Config) Geometry {
	l := Line{from.Center, cursor}
	g := LineGeometry(l)
	if directed && l.Length() > 0 {
		_, end := l.Tangents()
		tip := NewArrowTip(cursor, end, weight, cfg.ArrowTipScale)
		g.Tip = &tip
	}
	return g
}

// Layout maps connections to their geometry for one frame. A Layout is only
// valid for the state of the graph at the time it was computed.
type Layout struct {
	order   []uuid.UUID
	geoms   map[uuid.UUID]Geometry
	anchors Rect
}

// Compute lays out every connection of g.
func Compute(g *Graph, cfg Config) *Layout {
	l := &Layout{
		geoms:   make(map[uuid.UUID]Geometry, g.NumConnections()),
		anchors: emptyRect,
	}
	for a := range g.Anchors() {
		l.anchors = l.anchors.Union(a.Boundary().BoundingBox())
	}
	for grp := range g.Groups() {
		a := g.anchors[grp.A]
		var geoms []Geometry
		if grp.IsLoop() {
			geoms = LayoutSelfLoops(a, grp.Connections, cfg)
		} else {
			geoms = LayoutGroup(a, g.anchors[grp.B], grp.Connections, cfg)
		}
		for i, c := range grp.Connections {
			l.geoms[c.ID] = geoms[i]
		}
	}
	l.order = make([]uuid.UUID, 0, len(l.geoms))
	for c := range g.Connections() {
		l.order = append(l.order, c.ID)
	}
	return l
}

// Get returns the geometry of a connection.
func (l *Layout) Get(id uuid.UUID) (Geometry, bool) {
	g, ok := l.geoms[id]
	return g, ok
}

// Len returns the number of laid-out connections.
func (l *Layout) Len() int {
	return len(l.order)
}

// All returns every connection's geometry, in the order the connections were
// added to the graph.
func (l *Layout) All() iter.Seq2[uuid.UUID, Geometry] {
	return func(yield func(uuid.UUID, Geometry) bool) {
		for _, id := range l.order {
			if !yield(id, l.geoms[id]) {
				return
			}
		}
	}
}

// Bounds returns the bounding box of all anchors and geometries. It is empty
// (see [Rect.IsEmpty]) for an empty graph.
func (l *Layout) Bounds() Rect {
	bbox := l.anchors
	for _, g := range l.All() {
		bbox = bbox.Union(g.BoundingBox())
	}
	return bbox
}
