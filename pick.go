package edgegeom

import (
	"math"

	"github.com/google/uuid"
)

// Hit is the result of a pick query.
type Hit struct {
	// ID is the connection closest to the query point.
	ID uuid.UUID
	// Point is the point of the connection closest to the query point.
	Point Point
	// Distance is the distance between Point and the query point.
	Distance float64
}

// Pick returns the connection in l closest to pt. Arrow tips don't count
// towards a connection's shape. If two connections are equally close, the one
// added to the graph first wins. Pick reports false if l is empty.
func Pick(l *Layout, pt Point) (Hit, bool) {
	return PickWithin(l, pt, math.Inf(1))
}

// PickWithin is like [Pick] but ignores connections farther than maxDist from
// pt.
func PickWithin(l *Layout, pt Point, maxDist float64) (Hit, bool) {
	var best Hit
	found := false
	for id, g := range l.All() {
		p, d := g.Nearest(pt)
		if math.IsNaN(d) || d > maxDist {
			continue
		}
		if !found || d < best.Distance {
			best = Hit{ID: id, Point: p, Distance: d}
			found = true
		}
	}
	return best, found
}

// Cursor tracks the pointer and, while picking, the connection nearest to it.
type Cursor struct {
	Position Point
	Hit      Hit
	HasHit   bool
}

// Update moves the cursor to pt. If picking is set, the nearest connection is
// recomputed from l; otherwise any previous hit is cleared.
func (c *Cursor) Update(l *Layout, pt Point, picking bool) {
	c.Position = pt
	if !picking {
		c.Hit, c.HasHit = Hit{}, false
		return
	}
	c.Hit, c.HasHit = Pick(l, pt)
}
