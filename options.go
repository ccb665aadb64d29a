package edgegeom

import "image/color"

// AnchorOption configures an anchor when it is added.
type AnchorOption func(*Anchor)

// WithAnchorLabel sets the text drawn inside the anchor.
func WithAnchorLabel(label string) AnchorOption {
	return func(a *Anchor) { a.Label = label }
}

// WithAnchorColors sets the colors of the anchor's disc and outline.
func WithAnchorColors(fill, stroke color.RGBA) AnchorOption {
	return func(a *Anchor) {
		a.Fill = fill
		a.Stroke = stroke
	}
}

// ConnectionOption configures a connection when it is added or updated.
type ConnectionOption func(*Connection)

// WithDirected makes the connection directed (drawn with an arrow tip) or
// undirected.
func WithDirected(directed bool) ConnectionOption {
	return func(c *Connection) { c.Directed = directed }
}

// WithWeight sets the stroke width. Weights below 1 are rejected.
func WithWeight(weight int) ConnectionOption {
	return func(c *Connection) { c.Weight = weight }
}

// WithColor sets the stroke color.
func WithColor(col color.RGBA) ConnectionOption {
	return func(c *Connection) { c.Color = col }
}

// WithLabel sets the text drawn next to the connection.
func WithLabel(label string) ConnectionOption {
	return func(c *Connection) { c.Label = label }
}

// WithLoopAngle pins a self-loop to point in direction th, in radians.
func WithLoopAngle(th float64) ConnectionOption {
	return func(c *Connection) {
		c.LoopAngle = th
		c.HasLoopAngle = true
	}
}
