package edgegeom

// Viewport maps between world coordinates, which anchors and layouts live in,
// and screen coordinates, which the pointer arrives in. It supports panning
// and uniform zoom.
//
// The zero value is not usable; use [NewViewport].
type Viewport struct {
	toScreen Affine
}

// NewViewport returns a viewport in which world and screen coordinates
// coincide.
func NewViewport() *Viewport {
	return &Viewport{toScreen: Identity}
}

// Transform returns the world-to-screen transform.
func (vp *Viewport) Transform() Affine {
	return vp.toScreen
}

// Zoom returns the current zoom factor.
func (vp *Viewport) Zoom() float64 {
	return vp.toScreen.N0
}

func (vp *Viewport) ToScreen(pt Point) Point {
	return pt.Transform(vp.toScreen)
}

func (vp *Viewport) ToWorld(pt Point) Point {
	return pt.Transform(vp.toScreen.Invert())
}

// Pan moves the view by d, in screen units.
func (vp *Viewport) Pan(d Vec2) {
	vp.toScreen = vp.toScreen.ThenTranslate(d)
}

// ZoomAt scales the view by factor, keeping the screen point at fixed. Factors
// that aren't positive are ignored.
func (vp *Viewport) ZoomAt(at Point, factor float64) {
	if !(factor > 0) {
		return
	}
	v := Point{}.Sub(at)
	vp.toScreen = vp.toScreen.
		ThenTranslate(v).
		ThenScale(factor, factor).
		ThenTranslate(v.Negate())
}
