package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"iter"
	"math"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/graphbuilder/edgegeom"
)

// supersample is the factor by which the image is rendered larger than
// requested before being scaled down.
const supersample = 2

// Number of segments strokes are flattened into, per kind of geometry.
const (
	quadSegments = 32
	arcSegments  = 96
	discSegments = 16
)

// canvas draws into an image at supersampled resolution. All coordinates are
// in world units and mapped through aff.
type canvas struct {
	img  *image.RGBA
	aff  edgegeom.Affine
	rast *vector.Rasterizer
	face font.Face
}

// WritePNG draws g, laid out as l, as a PNG image.
func WritePNG(w io.Writer, g *edgegeom.Graph, l *edgegeom.Layout, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("render: bad image size %dx%d", opts.Width, opts.Height)
	}
	large, err := renderLarge(g, l, opts)
	if err != nil {
		return err
	}

	final := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(final, final.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Over, nil)
	return png.Encode(w, final)
}

func renderLarge(g *edgegeom.Graph, l *edgegeom.Layout, opts Options) (*image.RGBA, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: parsing font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    12 * supersample,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("render: loading font: %w", err)
	}
	defer face.Close()

	w, h := opts.Width*supersample, opts.Height*supersample
	cv := &canvas{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		aff:  FitViewport(l.Bounds(), opts).Transform().ThenScale(supersample, supersample),
		rast: vector.NewRasterizer(w, h),
		face: face,
	}
	scale := cv.aff.N0
	draw.Draw(cv.img, cv.img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	for a := range g.Anchors() {
		fill, stroke := anchorColors(a, opts)
		cv.fill(a.Boundary().PathElements(flattenTolerance/scale), fill)
		cv.ring(a.Boundary(), 2/scale*supersample, stroke)
	}

	for c := range g.Connections() {
		geom, ok := l.Get(c.ID)
		if !ok {
			continue
		}
		col := strokeColor(c, opts)
		width := max(float64(c.Weight)*scale, supersample) / scale
		cv.stroke(flatten(geom), width, col)
		if geom.Tip != nil {
			cv.fill(geom.Tip.PathElements(), col)
		}
	}

	if opts.Selected != uuid.Nil {
		if geom, ok := l.Get(opts.Selected); ok {
			size := opts.HandleSize * supersample / scale
			for _, p := range geom.Handles() {
				cv.fill(rectPath(handleRect(p, size)), opts.SelectionColor)
			}
		}
	}

	text := color.RGBA{51, 51, 51, 255}
	for a := range g.Anchors() {
		if a.Label != "" {
			cv.text(a.Center, a.Label, text, true)
		}
	}
	for c := range g.Connections() {
		geom, ok := l.Get(c.ID)
		if ok && c.Label != "" {
			cv.text(geom.Midpoint(), c.Label, text, false)
		}
	}
	return cv.img, nil
}

// flatten approximates geom by a polyline.
func flatten(geom edgegeom.Geometry) []edgegeom.Point {
	var n int
	switch geom.Kind {
	case edgegeom.LineKind:
		n = 1
	case edgegeom.QuadKind:
		n = quadSegments
	case edgegeom.ArcKind:
		n = arcSegments
	default:
		panic(fmt.Sprintf("unhandled case %v", geom.Kind))
	}
	pts := make([]edgegeom.Point, n+1)
	for i := range pts {
		pts[i] = geom.Eval(float64(i) / float64(n))
	}
	return pts
}

func (cv *canvas) pt(p edgegeom.Point) (float32, float32) {
	p = p.Transform(cv.aff)
	return float32(p.X), float32(p.Y)
}

func (cv *canvas) flush(col color.RGBA) {
	cv.rast.Draw(cv.img, cv.img.Bounds(), image.NewUniform(col), image.Point{})
	cv.rast.Reset(cv.img.Bounds().Dx(), cv.img.Bounds().Dy())
}

// addPath appends seq to the rasterizer's current path.
func (cv *canvas) addPath(seq iter.Seq[edgegeom.PathElement]) {
	for el := range seq {
		switch el.Kind {
		case edgegeom.MoveToKind:
			cv.rast.MoveTo(cv.pt(el.P0))
		case edgegeom.LineToKind:
			cv.rast.LineTo(cv.pt(el.P0))
		case edgegeom.QuadToKind:
			x0, y0 := cv.pt(el.P0)
			x1, y1 := cv.pt(el.P1)
			cv.rast.QuadTo(x0, y0, x1, y1)
		case edgegeom.CubicToKind:
			x0, y0 := cv.pt(el.P0)
			x1, y1 := cv.pt(el.P1)
			x2, y2 := cv.pt(el.P2)
			cv.rast.CubeTo(x0, y0, x1, y1, x2, y2)
		case edgegeom.ClosePathKind:
			cv.rast.ClosePath()
		default:
			panic(fmt.Sprintf("unhandled case %v", el.Kind))
		}
	}
}

func (cv *canvas) fill(seq iter.Seq[edgegeom.PathElement], col color.RGBA) {
	cv.addPath(seq)
	cv.flush(col)
}

// polygon appends a closed polygon through pts.
func (cv *canvas) polygon(pts ...edgegeom.Point) {
	cv.rast.MoveTo(cv.pt(pts[0]))
	for _, p := range pts[1:] {
		cv.rast.LineTo(cv.pt(p))
	}
	cv.rast.ClosePath()
}

// disc appends a regular polygon approximating a disc. Discs wind clockwise
// on screen, like the quads built by stroke.
func (cv *canvas) disc(c edgegeom.Point, r float64) {
	pts := make([]edgegeom.Point, discSegments)
	for i := range pts {
		pts[i] = edgegeom.Circle{Center: c, Radius: r}.PointAt(-2 * math.Pi * float64(i) / discSegments)
	}
	cv.polygon(pts...)
}

// stroke draws the polyline pts with the given width. Every segment becomes a
// quad and every joint a disc. All of them wind the same way, so overlaps
// don't cancel out under the rasterizer's nonzero rule.
func (cv *canvas) stroke(pts []edgegeom.Point, width float64, col color.RGBA) {
	hw := width / 2
	for i := 1; i < len(pts); i++ {
		p0, p1 := pts[i-1], pts[i]
		d := p1.Sub(p0)
		if d.Hypot2() == 0 {
			continue
		}
		n := d.Normalize().Perp().Mul(hw)
		cv.polygon(p0.Translate(n), p1.Translate(n), p1.Translate(n.Negate()), p0.Translate(n.Negate()))
	}
	for _, p := range pts {
		cv.disc(p, hw)
	}
	cv.flush(col)
}

// ring draws the outline of c. The inner circle winds against the outer one
// and cuts a hole into it.
func (cv *canvas) ring(c edgegeom.Circle, width float64, col color.RGBA) {
	const n = 64
	outer := make([]edgegeom.Point, n)
	inner := make([]edgegeom.Point, n)
	for i := range n {
		th := 2 * math.Pi * float64(i) / n
		outer[i] = edgegeom.Circle{Center: c.Center, Radius: c.Radius + width/2}.PointAt(th)
		inner[i] = edgegeom.Circle{Center: c.Center, Radius: max(c.Radius-width/2, 0)}.PointAt(-th)
	}
	cv.polygon(outer...)
	cv.polygon(inner...)
	cv.flush(col)
}

// text draws s with its baseline near p. Centered text is centered on p
// horizontally and vertically; other text starts just right of p.
func (cv *canvas) text(p edgegeom.Point, s string, col color.RGBA, centered bool) {
	x, y := cv.pt(p)
	dot := fixed.Point26_6{X: fixed.I(int(x)), Y: fixed.I(int(y))}
	if centered {
		width := font.MeasureString(cv.face, s)
		dot.X -= width / 2
		dot.Y += cv.face.Metrics().Ascent * 35 / 100
	} else {
		dot.X += fixed.I(4 * supersample)
		dot.Y -= fixed.I(4 * supersample)
	}
	d := &font.Drawer{
		Dst:  cv.img,
		Src:  image.NewUniform(col),
		Face: cv.face,
		Dot:  dot,
	}
	d.DrawString(s)
}
