package render

import (
	"fmt"
	"io"
	"iter"

	"github.com/ajstarks/svgo"
	"github.com/google/uuid"

	"github.com/graphbuilder/edgegeom"
)

var svgPath = edgegeom.SVGOptions{MaxPrecision: 2}

// WriteSVG draws g, laid out as l, as an SVG document.
func WriteSVG(w io.Writer, g *edgegeom.Graph, l *edgegeom.Layout, opts Options) error {
	ew := &errWriter{w: w}
	aff := FitViewport(l.Bounds(), opts).Transform()
	scale := aff.N0

	canvas := svg.New(ew)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:"+cssRGBA(opts.Background))

	d := func(seq iter.Seq[edgegeom.PathElement]) string {
		return edgegeom.SVG(edgegeom.TransformPath(seq, aff), svgPath)
	}

	canvas.Gid("anchors")
	for a := range g.Anchors() {
		fill, stroke := anchorColors(a, opts)
		canvas.Path(d(a.Boundary().PathElements(flattenTolerance/scale)),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", cssRGBA(fill), cssRGBA(stroke)))
	}
	canvas.Gend()

	canvas.Gid("connections")
	for c := range g.Connections() {
		geom, ok := l.Get(c.ID)
		if !ok {
			continue
		}
		col := cssRGBA(strokeColor(c, opts))
		width := max(float64(c.Weight)*scale, 1)
		canvas.Path(d(geom.PathElements(flattenTolerance/scale)),
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.2f", col, width),
			fmt.Sprintf(`id="c-%s"`, c.ID))
		if geom.Tip != nil {
			canvas.Path(d(geom.Tip.PathElements()), "fill:"+col)
		}
	}
	canvas.Gend()

	if opts.Selected != uuid.Nil {
		if geom, ok := l.Get(opts.Selected); ok {
			canvas.Gid("handles")
			for _, h := range geom.Handles() {
				r := handleRect(h, opts.HandleSize/scale)
				canvas.Path(d(rectPath(r)), "fill:"+cssRGBA(opts.SelectionColor))
			}
			canvas.Gend()
		}
	}

	canvas.Gid("labels")
	const labelStyle = "font-size:12px;font-family:sans-serif;fill:#333"
	for a := range g.Anchors() {
		if a.Label == "" {
			continue
		}
		p := a.Center.Transform(aff)
		canvas.Text(int(p.X), int(p.Y)+4, a.Label, labelStyle+";text-anchor:middle")
	}
	for c := range g.Connections() {
		geom, ok := l.Get(c.ID)
		if !ok || c.Label == "" {
			continue
		}
		p := geom.Midpoint().Transform(aff)
		canvas.Text(int(p.X)+4, int(p.Y)-4, c.Label, labelStyle)
	}
	canvas.Gend()

	canvas.End()
	return ew.err
}

func rectPath(r edgegeom.Rect) iter.Seq[edgegeom.PathElement] {
	return func(yield func(edgegeom.PathElement) bool) {
		_ = yield(edgegeom.MoveTo(edgegeom.Pt(r.X0, r.Y0))) &&
			yield(edgegeom.LineTo(edgegeom.Pt(r.X1, r.Y0))) &&
			yield(edgegeom.LineTo(edgegeom.Pt(r.X1, r.Y1))) &&
			yield(edgegeom.LineTo(edgegeom.Pt(r.X0, r.Y1))) &&
			yield(edgegeom.ClosePath())
	}
}

// errWriter remembers the first write error, since svg.SVG discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
