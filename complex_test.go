package edgegeom

import (
	"math"
	"math/cmplx"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCubicRootsRoundTrip(t *testing.T) {
	tests := [][3]float64{
		{1, 2, 3},
		{-4, 0.5, 7},
		{0, 1, 10},
		{-1, -2, -3.5},
		{0.25, 0.75, 100},
	}
	for _, roots := range tests {
		r1, r2, r3 := roots[0], roots[1], roots[2]
		// (x − r1)(x − r2)(x − r3)
		n2 := -(r1 + r2 + r3)
		n3 := r1*r2 + r1*r3 + r2*r3
		n4 := -r1 * r2 * r3

		got, n := RealRoots(CubicRoots(1, n2, n3, n4), 1e-6)
		if n != 3 {
			t.Errorf("%v: got %d real roots, want 3", roots, n)
			continue
		}
		s := got[:n]
		slices.Sort(s)
		diff(t, roots[:], s, cmpopts.EquateApprox(0, 1e-6))
	}
}

func TestCubicRootsComplex(t *testing.T) {
	// x³ − 1 has one real root and two complex ones.
	roots := CubicRoots(1, 0, 0, -1)
	got, n := RealRoots(roots, RealTolerance)
	diff(t, []float64{1}, got[:n], cmpopts.EquateApprox(0, 1e-12))
	for _, r := range roots {
		if d := cmplx.Abs(r*r*r - 1); d > 1e-12 {
			t.Errorf("root %v is off by %g", r, d)
		}
	}

	// x³ + x = x (x − i)(x + i)
	got, n = RealRoots(CubicRoots(1, 0, 1, 0), RealTolerance)
	diff(t, []float64{0}, got[:n], cmpopts.EquateApprox(0, 1e-12))
}

func TestCubicRootsTriple(t *testing.T) {
	// (x − 2)³
	roots := CubicRoots(1, -6, 12, -8)
	for _, r := range roots {
		if d := cmplx.Abs(r - 2); d > 1e-12 {
			t.Errorf("got root %v, want 2", r)
		}
	}
}

func TestCubicRootsScaled(t *testing.T) {
	// 2 (x − 1)(x + 1)(x − 3), leading coefficient other than one
	got, n := RealRoots(CubicRoots(2, -6, -2, 6), 1e-9)
	s := got[:n]
	slices.Sort(s)
	diff(t, []float64{-1, 1, 3}, s, cmpopts.EquateApprox(0, 1e-9))
}

func TestIsReal(t *testing.T) {
	tests := []struct {
		z    complex128
		want bool
	}{
		{complex(1, 0), true},
		{complex(1, 1e-12), true},
		{complex(1e6, 1e-4), true},
		{complex(1, 1e-3), false},
		{complex(0, 1), false},
		{cmplx.NaN(), false},
		{cmplx.Inf(), false},
		{complex(math.NaN(), 0), false},
	}
	for _, tt := range tests {
		if got := IsReal(tt.z, RealTolerance); got != tt.want {
			t.Errorf("IsReal(%v) = %t, want %t", tt.z, got, tt.want)
		}
	}
}
