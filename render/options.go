// Package render draws a laid-out graph as SVG or PNG.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/google/uuid"

	"github.com/graphbuilder/edgegeom"
)

// Options configures rendering.
type Options struct {
	// Size of the output in pixels.
	Width  int
	Height int
	// Padding is the margin kept free around the drawing, in pixels.
	Padding float64

	Background     color.RGBA
	AnchorFill     color.RGBA
	AnchorStroke   color.RGBA
	HighlightColor color.RGBA
	SelectionColor color.RGBA

	// HandleSize is the side length of the squares marking a selected
	// connection's handles, in pixels.
	HandleSize float64

	// Highlight is the connection under the pointer and Selected the selected
	// connection. The zero UUID means none.
	Highlight uuid.UUID
	Selected  uuid.UUID
}

// DefaultOptions returns sensible defaults for rendering.
func DefaultOptions() Options {
	return Options{
		Width:          800,
		Height:         600,
		Padding:        40,
		Background:     color.RGBA{255, 255, 255, 255},
		AnchorFill:     color.RGBA{227, 242, 253, 255}, // #e3f2fd
		AnchorStroke:   color.RGBA{21, 101, 192, 255},  // #1565c0
		HighlightColor: color.RGBA{230, 81, 0, 255},    // #e65100
		SelectionColor: color.RGBA{46, 125, 50, 255},   // #2e7d32
		HandleSize:     6,
	}
}

// flattenTolerance is the maximum error, in pixels, when approximating loops
// with cubic Béziers.
const flattenTolerance = 0.1

// FitViewport returns the viewport that shows bounds inside the drawing area
// of opts, centered and with the aspect ratio preserved. Screen coordinates
// of the viewport are pixels of the rendered image.
func FitViewport(bounds edgegeom.Rect, opts Options) *edgegeom.Viewport {
	vp := edgegeom.NewViewport()
	if bounds.IsEmpty() {
		vp.Pan(edgegeom.Vec(opts.Padding, opts.Padding))
		return vp
	}
	availW := float64(opts.Width) - 2*opts.Padding
	availH := float64(opts.Height) - 2*opts.Padding
	s := math.Inf(1)
	if w := bounds.Width(); w > 0 {
		s = availW / w
	}
	if h := bounds.Height(); h > 0 {
		s = math.Min(s, availH/h)
	}
	if !(s > 0) || math.IsInf(s, 0) {
		s = 1
	}
	mid := edgegeom.Pt(float64(opts.Width)/2, float64(opts.Height)/2)
	vp.Pan(mid.Sub(bounds.Center()))
	vp.ZoomAt(mid, s)
	return vp
}

// strokeColor returns the color connection c is drawn in.
func strokeColor(c *edgegeom.Connection, opts Options) color.RGBA {
	switch {
	case opts.Highlight != uuid.Nil && c.ID == opts.Highlight:
		return opts.HighlightColor
	case opts.Selected != uuid.Nil && c.ID == opts.Selected:
		return opts.SelectionColor
	default:
		return c.Color
	}
}

// anchorColors returns the fill and outline colors of anchor a. Colors the
// anchor leaves unset come from opts.
func anchorColors(a *edgegeom.Anchor, opts Options) (fill, stroke color.RGBA) {
	fill, stroke = opts.AnchorFill, opts.AnchorStroke
	if a.Fill != (color.RGBA{}) {
		fill = a.Fill
	}
	if a.Stroke != (color.RGBA{}) {
		stroke = a.Stroke
	}
	return fill, stroke
}

func cssRGBA(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// handleRect returns the square of side size centered on pt.
func handleRect(pt edgegeom.Point, size float64) edgegeom.Rect {
	return edgegeom.Rect{X0: pt.X, Y0: pt.Y, X1: pt.X, Y1: pt.Y}.Inflate(size/2, size/2)
}
