package edgegeom

import (
	"math"
	"testing"
)

func TestLineNearest(t *testing.T) {
	tests := []struct {
		name  string
		line  Line
		pt    Point
		want  Point
		wantD float64
	}{
		{"above the middle", Line{Pt(0, 0), Pt(10, 0)}, Pt(5, 5), Pt(5, 0), 5},
		{"past the end", Line{Pt(0, 0), Pt(10, 0)}, Pt(13, 4), Pt(10, 0), 5},
		{"before the start", Line{Pt(0, 0), Pt(10, 0)}, Pt(-3, -4), Pt(0, 0), 5},
		{"on the line", Line{Pt(0, 0), Pt(10, 0)}, Pt(2, 0), Pt(2, 0), 0},
		{"vertical", Line{Pt(5, 5), Pt(5, 0)}, Pt(10, 2), Pt(5, 2), 5},
		{"vertical, reversed", Line{Pt(5, 0), Pt(5, 5)}, Pt(0, 3), Pt(5, 3), 5},
		{"diagonal", Line{Pt(0, 0), Pt(10, 10)}, Pt(0, 10), Pt(5, 5), math.Sqrt(50)},
		{"zero length", Line{Pt(3, 3), Pt(3, 3)}, Pt(6, 7), Pt(3, 3), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, d := tt.line.Nearest(tt.pt)
			assertNear(t, p, tt.want, 1e-12)
			assertClose(t, d, tt.wantD, 1e-12)
		})
	}
}

func TestLineProject(t *testing.T) {
	l := Line{Pt(2, -5), Pt(2, 5)}
	assertClose(t, l.Project(Pt(100, 0)), 0.5, 1e-12)
	assertClose(t, l.Project(Pt(0, 15)), 2, 1e-12)
	if got := (Line{Pt(1, 1), Pt(1, 1)}).Project(Pt(5, 5)); got != 0 {
		t.Errorf("got %g for a zero-length line, want 0", got)
	}
}

func TestLineCrossingPoint(t *testing.T) {
	p, ok := Line{Pt(0, 0), Pt(1, 1)}.CrossingPoint(Line{Pt(0, 4), Pt(1, 3)})
	if !ok {
		t.Fatal("lines don't cross")
	}
	assertNear(t, p, Pt(2, 2), 1e-12)

	// Vertical and horizontal lines
	p, ok = Line{Pt(3, -1), Pt(3, 1)}.CrossingPoint(Line{Pt(0, 7), Pt(1, 7)})
	if !ok {
		t.Fatal("lines don't cross")
	}
	assertNear(t, p, Pt(3, 7), 1e-12)

	if _, ok := (Line{Pt(0, 0), Pt(1, 1)}).CrossingPoint(Line{Pt(0, 1), Pt(2, 3)}); ok {
		t.Error("parallel lines cross")
	}
}

func TestLineLengthTangents(t *testing.T) {
	l := Line{Pt(1, 1), Pt(4, 5)}
	if got := l.Length(); got != 5 {
		t.Errorf("got length %g, want 5", got)
	}
	d0, d1 := l.Tangents()
	diff(t, Vec(3, 4), d0)
	diff(t, Vec(3, 4), d1)
}
