package edgegeom

import (
	"math"
	"math/cmplx"
)

// RealTolerance is the relative tolerance [IsReal] uses by default.
const RealTolerance = 1e-9

// CubicRoots returns the three complex roots, with multiplicity, of
// n1 x³ + n2 x² + n3 x + n4 = 0.
//
// The roots come from Cardano's closed form. With
//
//	Δ0 = n2² − 3 n1 n3
//	Δ1 = 2 n2³ − 9 n1 n2 n3 + 27 n1² n4
//
// and C any cube root of (Δ1 ± √(Δ1² − 4 Δ0³)) / 2, the roots are
// −(n2 + C + Δ0/C) / (3 n1) for each of the three cube roots C.
//
// The leading coefficient n1 must not be zero. Callers that can produce a
// degenerate cubic have to handle that case themselves. The order of the
// returned roots is unspecified.
func CubicRoots(n1, n2, n3, n4 float64) [3]complex128 {
	disc0 := n2*n2 - 3*n1*n3
	disc1 := 2*n2*n2*n2 - 9*n1*n2*n3 + 27*n1*n1*n4

	var c3 complex128
	if disc0 == 0 {
		// C³ = Δ1. The real cube root is among the three roots taken below.
		c3 = complex(disc1, 0)
	} else {
		d1 := complex(disc1, 0)
		sq := cmplx.Sqrt(complex(disc1*disc1-4*disc0*disc0*disc0, 0))
		// Both signs of the square root lead to the same roots. Use the one
		// that keeps C away from zero.
		c3 = (d1 + sq) / 2
		if alt := (d1 - sq) / 2; cmplx.Abs(alt) > cmplx.Abs(c3) {
			c3 = alt
		}
	}

	cs := cubeRoots(c3)
	a3 := complex(3*n1, 0)
	b := complex(n2, 0)
	d0 := complex(disc0, 0)
	var out [3]complex128
	for i, c := range cs {
		var q complex128
		if c != 0 {
			q = d0 / c
		}
		out[i] = -(b + c + q) / a3
	}
	return out
}

// cubeRoots returns the three cube roots of z. All three are zero when z is.
func cubeRoots(z complex128) [3]complex128 {
	if z == 0 {
		return [3]complex128{}
	}
	mag := math.Cbrt(cmplx.Abs(z))
	phase := cmplx.Phase(z)
	var out [3]complex128
	for k := range 3 {
		out[k] = cmplx.Rect(mag, (phase+2*math.Pi*float64(k))/3)
	}
	return out
}

// IsReal reports whether z lies within tol of the real axis. The tolerance is
// relative to max(1, |z|).
func IsReal(z complex128, tol float64) bool {
	if cmplx.IsNaN(z) || cmplx.IsInf(z) {
		return false
	}
	return math.Abs(imag(z)) <= tol*max(1, cmplx.Abs(z))
}

// RealRoots returns the real parts of those roots that [IsReal] accepts.
//
// The second return value states how many roots were found.
func RealRoots(roots [3]complex128, tol float64) ([3]float64, int) {
	var out [3]float64
	var n int
	for _, r := range roots {
		if IsReal(r, tol) {
			out[n] = real(r)
			n++
		}
	}
	return out, n
}
