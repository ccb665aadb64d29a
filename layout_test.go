package edgegeom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func newAnchor(x, y, r float64) *Anchor {
	return &Anchor{Center: Pt(x, y), Radius: r}
}

func newConn(from, to *Anchor, directed bool) *Connection {
	return &Connection{From: from.ID, To: to.ID, Directed: directed, Weight: 1}
}

func TestFanAngles(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)
	diff(t, []float64{0}, FanAngles(1, 0.3), approx)
	diff(t, []float64{-0.15, 0.15}, FanAngles(2, 0.3), approx)
	diff(t, []float64{-0.3, 0, 0.3}, FanAngles(3, 0.3), approx)
	diff(t, []float64{}, FanAngles(0, 0.3))

	for k := 1; k <= 7; k++ {
		angles := FanAngles(k, 0.4)
		for i := range angles {
			assertClose(t, angles[i], -angles[k-1-i], 1e-12)
			if i > 0 {
				assertClose(t, angles[i]-angles[i-1], 0.4, 1e-12)
			}
		}
	}
}

func TestLayoutStraight(t *testing.T) {
	a := newAnchor(0, 0, 10)
	a.ID[15] = 1
	b := newAnchor(100, 0, 20)
	b.ID[15] = 2
	geoms := LayoutGroup(a, b, []*Connection{newConn(a, b, true)}, DefaultConfig())
	g := geoms[0]
	if g.Kind != LineKind {
		t.Fatalf("got %v, want a line", g.Kind)
	}
	assertNear(t, g.P0, Pt(10, 0), 1e-12)
	assertNear(t, g.P1, Pt(80, 0), 1e-12)
	if g.Tip == nil {
		t.Fatal("directed connection has no tip")
	}
	assertNear(t, g.Tip.Tip, Pt(80, 0), 1e-12)
	assertNear(t, Point(g.Tip.Direction()), Pt(1, 0), 1e-12)
}

func TestLayoutEndpointsOnBoundary(t *testing.T) {
	cfg := DefaultConfig()
	a := newAnchor(-20, 35, 12)
	a.ID[15] = 1
	b := newAnchor(140, -60, 30)
	b.ID[15] = 2
	for k := 1; k <= 6; k++ {
		conns := make([]*Connection, k)
		for i := range conns {
			if i%2 == 0 {
				conns[i] = newConn(a, b, true)
			} else {
				conns[i] = newConn(b, a, true)
			}
		}
		for i, g := range LayoutGroup(a, b, conns, cfg) {
			start, end := g.P0, g.P1
			if g.Kind == QuadKind {
				end = g.P2
			}
			from, to := a, b
			if conns[i].From == b.ID {
				from, to = b, a
			}
			assertClose(t, start.Distance(from.Center), from.Radius, 1e-9)
			assertClose(t, end.Distance(to.Center), to.Radius, 1e-9)
			assertNear(t, g.Tip.Tip, end, 1e-12)
		}
	}
}

func TestLayoutTipFollowsCurve(t *testing.T) {
	a := newAnchor(0, 0, 10)
	a.ID[15] = 1
	b := newAnchor(120, 40, 15)
	b.ID[15] = 2
	conns := []*Connection{newConn(a, b, true), newConn(b, a, true)}
	for _, g := range LayoutGroup(a, b, conns, DefaultConfig()) {
		if g.Kind != QuadKind {
			t.Fatalf("got %v, want a curve", g.Kind)
		}
		_, end := g.Quad().Tangents()
		assertNear(t, Point(g.Tip.Direction()), Point(end.Normalize()), 1e-12)
	}
}

func TestLayoutTouchingAnchors(t *testing.T) {
	// The straight connection between touching anchors has zero length. Its
	// tip still points from one center towards the other.
	a := newAnchor(0, 0, 10)
	a.ID[15] = 1
	b := newAnchor(30, 0, 20)
	b.ID[15] = 2
	g := LayoutGroup(a, b, []*Connection{newConn(a, b, true)}, DefaultConfig())[0]
	diff(t, Pt(10, 0), g.P0)
	diff(t, Pt(10, 0), g.P1)
	assertNear(t, Point(g.Tip.Direction()), Pt(1, 0), 1e-12)
}

func TestLayoutFanSymmetry(t *testing.T) {
	a := newAnchor(0, 0, 10)
	a.ID[15] = 1
	b := newAnchor(100, 0, 10)
	b.ID[15] = 2
	conns := []*Connection{newConn(a, b, false), newConn(a, b, false), newConn(a, b, false)}
	geoms := LayoutGroup(a, b, conns, DefaultConfig())

	diff(t, []Kind{QuadKind, LineKind, QuadKind}, []Kind{geoms[0].Kind, geoms[1].Kind, geoms[2].Kind})
	// The outer curves mirror each other across the line between the centers.
	assertNear(t, geoms[0].P1, Pt(geoms[2].P1.X, -geoms[2].P1.Y), 1e-9)
	assertNear(t, geoms[0].P0, Pt(geoms[2].P0.X, -geoms[2].P0.Y), 1e-9)
	if geoms[0].P1.Y*geoms[2].P1.Y >= 0 {
		t.Errorf("outer curves bulge to the same side: %v, %v", geoms[0].P1, geoms[2].P1)
	}
	// The control point lies on the perpendicular bisector.
	assertClose(t, geoms[0].P1.X, 50, 1e-9)
	if geoms[0].Tip != nil {
		t.Error("undirected connection has a tip")
	}
}

func TestLayoutReversedKeepsSide(t *testing.T) {
	cfg := DefaultConfig()
	a := newAnchor(0, 0, 10)
	a.ID[15] = 1
	b := newAnchor(100, 30, 15)
	b.ID[15] = 2

	forward := LayoutGroup(a, b, []*Connection{newConn(a, b, false), newConn(a, b, false)}, cfg)
	mixed := LayoutGroup(a, b, []*Connection{newConn(a, b, false), newConn(b, a, false)}, cfg)

	// A reversed connection takes the same path, traversed backwards.
	assertNear(t, mixed[1].P0, forward[1].P2, 1e-9)
	assertNear(t, mixed[1].P2, forward[1].P0, 1e-9)
	assertNear(t, mixed[1].P1, forward[1].P1, 1e-9)
}

func TestLayoutCoincidentCenters(t *testing.T) {
	a := newAnchor(5, 5, 10)
	a.ID[15] = 1
	b := newAnchor(5, 5, 3)
	b.ID[15] = 2
	geoms := LayoutGroup(a, b, []*Connection{newConn(a, b, true), newConn(b, a, false)}, DefaultConfig())
	for _, g := range geoms {
		diff(t, LineGeometry(Line{Pt(5, 5), Pt(5, 5)}), g)
		for _, c := range []float64{g.P0.X, g.P0.Y, g.P1.X, g.P1.Y} {
			if math.IsNaN(c) {
				t.Fatal("NaN coordinate")
			}
		}
	}
}

func TestSelfLoopRadiusIdentity(t *testing.T) {
	for _, angle := range []float64{0.3, math.Pi / 3, math.Pi / 2, 2} {
		cfg := DefaultConfig()
		cfg.SelfLoopCentralAngle = angle
		cfg.SelfLoopEdgeAngle = angle
		for _, r := range []float64{1, 7.5, 40} {
			assertClose(t, SelfLoopRadius(r, cfg), r, 1e-12*r)
		}
	}
}

func TestLayoutSelfLoop(t *testing.T) {
	cfg := DefaultConfig()
	a := newAnchor(10, 20, 8)
	for _, offset := range []float64{0, -math.Pi / 2, 2.5} {
		g := LayoutSelfLoop(a, offset, true, 2, cfg)
		if g.Kind != ArcKind {
			t.Fatalf("got %v, want an arc", g.Kind)
		}
		assertClose(t, g.Radius, SelfLoopRadius(a.Radius, cfg), 1e-12)
		diff(t, a.Center, g.Anchor)

		// The loop points in direction offset.
		assertClose(t, g.Center.Sub(a.Center).Angle(), math.Remainder(offset, 2*math.Pi), 1e-9)

		// The loop crosses the anchor's boundary at offset ± central/2.
		dir := VecFromAngle(offset)
		for _, sign := range []float64{-1, 1} {
			p := a.Center.Translate(dir.Rotate(sign * cfg.SelfLoopCentralAngle / 2).Mul(a.Radius))
			assertClose(t, p.Distance(g.Center), g.Radius, 1e-9)
		}

		// The tip sits on a crossing and follows the loop into the anchor.
		tip := g.Tip
		if tip == nil {
			t.Fatal("directed loop has no tip")
		}
		assertClose(t, tip.Tip.Distance(a.Center), a.Radius, 1e-9)
		assertClose(t, tip.Tip.Distance(g.Center), g.Radius, 1e-9)
		d := tip.Direction()
		assertClose(t, d.Dot(tip.Tip.Sub(g.Center)), 0, 1e-9)
		if d.Dot(a.Center.Sub(tip.Tip)) < 0 {
			t.Errorf("offset %g: tip points away from the anchor", offset)
		}
	}
}

func TestLayoutSelfLoopsSpacing(t *testing.T) {
	cfg := DefaultConfig()
	a := newAnchor(0, 0, 10)
	conns := []*Connection{newConn(a, a, false), newConn(a, a, false), newConn(a, a, false)}
	conns[2].LoopAngle = 0.25
	conns[2].HasLoopAngle = true
	geoms := LayoutSelfLoops(a, conns, cfg)

	angle := func(g Geometry) float64 { return g.Center.Sub(a.Center).Angle() }
	assertClose(t, angle(geoms[0]), cfg.SelfLoopBaseAngle, 1e-9)
	assertClose(t, angle(geoms[1]), math.Remainder(cfg.SelfLoopBaseAngle+2*math.Pi/3, 2*math.Pi), 1e-9)
	assertClose(t, angle(geoms[2]), 0.25, 1e-9)
}

func TestPreview(t *testing.T) {
	cfg := DefaultConfig()
	a := newAnchor(0, 0, 10)

	g := Preview(a, Pt(30, 40), true, 1, cfg)
	diff(t, LineKind, g.Kind)
	diff(t, Pt(0, 0), g.P0)
	diff(t, Pt(30, 40), g.P1)
	if g.Tip == nil {
		t.Fatal("directed preview has no tip")
	}
	assertNear(t, Point(g.Tip.Direction()), Pt(0.6, 0.8), 1e-12)

	if g := Preview(a, Pt(0, 0), true, 1, cfg); g.Tip != nil {
		t.Error("preview of zero length has a tip")
	}
	if g := Preview(a, Pt(1, 1), false, 1, cfg); g.Tip != nil {
		t.Error("undirected preview has a tip")
	}
}

func TestCompute(t *testing.T) {
	cfg := DefaultConfig()
	g := NewGraph()
	a, _ := g.AddAnchor(Pt(0, 0), 10)
	b, _ := g.AddAnchor(Pt(100, 0), 10)
	c, _ := g.AddAnchor(Pt(50, 80), 10)
	ab1, _ := g.AddConnection(a.ID, b.ID)
	bc, _ := g.AddConnection(b.ID, c.ID, WithDirected(true))
	ab2, _ := g.AddConnection(b.ID, a.ID)
	loop, _ := g.AddConnection(c.ID, c.ID)

	l := Compute(g, cfg)
	if l.Len() != 4 {
		t.Fatalf("got %d geometries, want 4", l.Len())
	}

	var order []Kind
	for id, geom := range l.All() {
		got, ok := l.Get(id)
		if !ok {
			t.Fatalf("%v missing", id)
		}
		diff(t, geom, got)
		order = append(order, geom.Kind)
	}
	diff(t, []Kind{QuadKind, LineKind, QuadKind, ArcKind}, order)

	geomAB1, _ := l.Get(ab1.ID)
	geomAB2, _ := l.Get(ab2.ID)
	if geomAB1.P1.Y*geomAB2.P1.Y >= 0 {
		t.Errorf("parallel connections bulge to the same side")
	}
	if geomBC, _ := l.Get(bc.ID); geomBC.Tip == nil {
		t.Error("directed connection has no tip")
	}
	if _, ok := l.Get(loop.ID); !ok {
		t.Error("loop missing")
	}

	bounds := l.Bounds()
	for x := range g.Anchors() {
		bb := x.Boundary().BoundingBox()
		if bb.X0 < bounds.X0 || bb.Y0 < bounds.Y0 || bb.X1 > bounds.X1 || bb.Y1 > bounds.Y1 {
			t.Errorf("bounds %v don't contain anchor %v", bounds, bb)
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	l := Compute(NewGraph(), DefaultConfig())
	if l.Len() != 0 {
		t.Errorf("got %d geometries", l.Len())
	}
	if !l.Bounds().IsEmpty() {
		t.Errorf("got bounds %v, want empty", l.Bounds())
	}
}
