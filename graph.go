package edgegeom

import (
	"bytes"
	"errors"
	"image/color"
	"iter"
	"math"
	"slices"

	"github.com/google/uuid"
)

// Sentinel errors for graph operations.
var (
	// ErrAnchorNotFound indicates an operation referenced a non-existent anchor.
	ErrAnchorNotFound = errors.New("edgegeom: anchor not found")

	// ErrConnectionNotFound indicates an operation referenced a non-existent connection.
	ErrConnectionNotFound = errors.New("edgegeom: connection not found")

	// ErrBadRadius indicates an anchor radius that isn't a positive finite number.
	ErrBadRadius = errors.New("edgegeom: anchor radius must be positive")

	// ErrBadPosition indicates an anchor center with a NaN or infinite coordinate.
	ErrBadPosition = errors.New("edgegeom: anchor position must be finite")

	// ErrBadWeight indicates a connection weight below 1.
	ErrBadWeight = errors.New("edgegeom: connection weight must be at least 1")
)

// Anchor is a circular node that connections attach to.
type Anchor struct {
	ID     uuid.UUID
	Center Point
	Radius float64
	Label  string

	// Fill and Stroke color the anchor's disc and outline. The zero color
	// leaves the choice to the renderer.
	Fill   color.RGBA
	Stroke color.RGBA
}

// Boundary returns the anchor's outline.
func (a *Anchor) Boundary() Circle {
	return Circle{a.Center, a.Radius}
}

// Connection is an edge between two anchors, or from an anchor to itself.
type Connection struct {
	ID   uuid.UUID
	From uuid.UUID
	To   uuid.UUID

	// Directed connections are drawn with an arrow tip at To.
	Directed bool
	// Weight is the stroke width, at least 1.
	Weight int
	Color  color.RGBA
	Label  string

	// LoopAngle is the direction a self-loop points away from its anchor. It
	// is only used if HasLoopAngle is set; otherwise the layout spaces the
	// anchor's loops evenly.
	LoopAngle    float64
	HasLoopAngle bool
}

// IsLoop reports whether c starts and ends at the same anchor.
func (c *Connection) IsLoop() bool {
	return c.From == c.To
}

// pairKey is the unordered pair of anchors that identifies a parallel group.
// A is never greater than B.
type pairKey struct {
	A, B uuid.UUID
}

func makePairKey(a, b uuid.UUID) pairKey {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return pairKey{a, b}
}

// Group is a parallel group: all connections between the same unordered pair
// of anchors, in the order they were added. A is the anchor with the smaller
// ID. For a group of self-loops, A and B are the same anchor.
type Group struct {
	A           uuid.UUID
	B           uuid.UUID
	Connections []*Connection
}

// IsLoop reports whether the group consists of self-loops.
func (grp Group) IsLoop() bool {
	return grp.A == grp.B
}

// Graph holds anchors and connections and keeps the parallel groups of
// connections up to date as they change.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	anchors     map[uuid.UUID]*Anchor
	anchorOrder []uuid.UUID

	connections map[uuid.UUID]*Connection
	connOrder   []uuid.UUID

	// groups[key] lists connection IDs in insertion order.
	groups     map[pairKey][]uuid.UUID
	groupOrder []pairKey
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		anchors:     make(map[uuid.UUID]*Anchor),
		connections: make(map[uuid.UUID]*Connection),
		groups:      make(map[pairKey][]uuid.UUID),
	}
}

func validCenter(p Point) bool {
	return !p.IsNaN() && !p.IsInf()
}

func validRadius(r float64) bool {
	return r > 0 && !math.IsInf(r, 0)
}

// AddAnchor adds an anchor and returns it.
func (g *Graph) AddAnchor(center Point, radius float64, opts ...AnchorOption) (*Anchor, error) {
	if !validCenter(center) {
		return nil, ErrBadPosition
	}
	if !validRadius(radius) {
		return nil, ErrBadRadius
	}
	a := &Anchor{ID: uuid.New(), Center: center, Radius: radius}
	for _, opt := range opts {
		opt(a)
	}
	g.anchors[a.ID] = a
	g.anchorOrder = append(g.anchorOrder, a.ID)
	return a, nil
}

// Anchor returns the anchor with the given ID.
func (g *Graph) Anchor(id uuid.UUID) (*Anchor, error) {
	a, ok := g.anchors[id]
	if !ok {
		return nil, ErrAnchorNotFound
	}
	return a, nil
}

// MoveAnchor moves an anchor's center.
func (g *Graph) MoveAnchor(id uuid.UUID, center Point) error {
	a, ok := g.anchors[id]
	if !ok {
		return ErrAnchorNotFound
	}
	if !validCenter(center) {
		return ErrBadPosition
	}
	a.Center = center
	return nil
}

// ResizeAnchor changes an anchor's radius.
func (g *Graph) ResizeAnchor(id uuid.UUID, radius float64) error {
	a, ok := g.anchors[id]
	if !ok {
		return ErrAnchorNotFound
	}
	if !validRadius(radius) {
		return ErrBadRadius
	}
	a.Radius = radius
	return nil
}

// RemoveAnchor deletes an anchor along with every connection attached to it.
func (g *Graph) RemoveAnchor(id uuid.UUID) error {
	if _, ok := g.anchors[id]; !ok {
		return ErrAnchorNotFound
	}
	for _, cid := range slices.Clone(g.connOrder) {
		c := g.connections[cid]
		if c.From == id || c.To == id {
			g.removeConnection(c)
		}
	}
	delete(g.anchors, id)
	g.anchorOrder = slices.DeleteFunc(g.anchorOrder, func(a uuid.UUID) bool { return a == id })
	return nil
}

// Anchors returns the anchors in the order they were added.
func (g *Graph) Anchors() iter.Seq[*Anchor] {
	return func(yield func(*Anchor) bool) {
		for _, id := range g.anchorOrder {
			if !yield(g.anchors[id]) {
				return
			}
		}
	}
}

// NumAnchors returns the number of anchors.
func (g *Graph) NumAnchors() int {
	return len(g.anchorOrder)
}

// AddConnection connects two anchors, or an anchor to itself if from == to.
// The connection is appended to its parallel group. By default, a connection
// is undirected, has weight 1 and is black.
func (g *Graph) AddConnection(from, to uuid.UUID, opts ...ConnectionOption) (*Connection, error) {
	if _, ok := g.anchors[from]; !ok {
		return nil, ErrAnchorNotFound
	}
	if _, ok := g.anchors[to]; !ok {
		return nil, ErrAnchorNotFound
	}
	c := &Connection{
		ID:     uuid.New(),
		From:   from,
		To:     to,
		Weight: 1,
		Color:  color.RGBA{0, 0, 0, 255},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Weight < 1 {
		return nil, ErrBadWeight
	}

	g.connections[c.ID] = c
	g.connOrder = append(g.connOrder, c.ID)
	key := makePairKey(from, to)
	if _, ok := g.groups[key]; !ok {
		g.groupOrder = append(g.groupOrder, key)
	}
	g.groups[key] = append(g.groups[key], c.ID)
	return c, nil
}

// UpdateConnection applies opts to an existing connection. The connection
// keeps its place in its group.
func (g *Graph) UpdateConnection(id uuid.UUID, opts ...ConnectionOption) error {
	c, ok := g.connections[id]
	if !ok {
		return ErrConnectionNotFound
	}
	updated := *c
	for _, opt := range opts {
		opt(&updated)
	}
	if updated.Weight < 1 {
		return ErrBadWeight
	}
	*c = updated
	return nil
}

// Connection returns the connection with the given ID.
func (g *Graph) Connection(id uuid.UUID) (*Connection, error) {
	c, ok := g.connections[id]
	if !ok {
		return nil, ErrConnectionNotFound
	}
	return c, nil
}

// RemoveConnection deletes a connection. The remaining connections of its
// group keep their relative order.
func (g *Graph) RemoveConnection(id uuid.UUID) error {
	c, ok := g.connections[id]
	if !ok {
		return ErrConnectionNotFound
	}
	g.removeConnection(c)
	return nil
}

func (g *Graph) removeConnection(c *Connection) {
	delete(g.connections, c.ID)
	g.connOrder = slices.DeleteFunc(g.connOrder, func(id uuid.UUID) bool { return id == c.ID })

	key := makePairKey(c.From, c.To)
	members := slices.DeleteFunc(g.groups[key], func(id uuid.UUID) bool { return id == c.ID })
	if len(members) == 0 {
		delete(g.groups, key)
		g.groupOrder = slices.DeleteFunc(g.groupOrder, func(k pairKey) bool { return k == key })
	} else {
		g.groups[key] = members
	}
}

// Connections returns the connections in the order they were added.
func (g *Graph) Connections() iter.Seq[*Connection] {
	return func(yield func(*Connection) bool) {
		for _, id := range g.connOrder {
			if !yield(g.connections[id]) {
				return
			}
		}
	}
}

// NumConnections returns the number of connections.
func (g *Graph) NumConnections() int {
	return len(g.connOrder)
}

// Group returns the connections between a and b, in either direction, in the
// order they were added. Group(a, a) returns a's self-loops.
func (g *Graph) Group(a, b uuid.UUID) []*Connection {
	return g.members(makePairKey(a, b))
}

func (g *Graph) members(key pairKey) []*Connection {
	ids := g.groups[key]
	out := make([]*Connection, len(ids))
	for i, id := range ids {
		out[i] = g.connections[id]
	}
	return out
}

// Groups returns every non-empty parallel group, in the order in which each
// group received its first connection.
func (g *Graph) Groups() iter.Seq[Group] {
	return func(yield func(Group) bool) {
		for _, key := range g.groupOrder {
			if !yield(Group{A: key.A, B: key.B, Connections: g.members(key)}) {
				return
			}
		}
	}
}
