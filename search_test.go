package edgegeom

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// searchGraph builds anchors a..e joined like this:
//
//	a -> b -- c <- d    e
//
// plus a self-loop on e.
func searchGraph(t *testing.T) (*Graph, map[string]uuid.UUID) {
	t.Helper()
	g := NewGraph()
	ids := make(map[string]uuid.UUID)
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		a, err := g.AddAnchor(Pt(float64(i)*50, 0), 10)
		require.NoError(t, err)
		ids[name] = a.ID
	}
	for _, c := range []struct {
		from, to string
		directed bool
	}{
		{"a", "b", true},
		{"b", "c", false},
		{"d", "c", true},
		{"e", "e", false},
	} {
		_, err := g.AddConnection(ids[c.from], ids[c.to], WithDirected(c.directed))
		require.NoError(t, err)
	}
	return g, ids
}

func TestReachable(t *testing.T) {
	g, ids := searchGraph(t)
	tests := []struct {
		name           string
		starts         []string
		followDirected bool
		want           []string
	}{
		{"forward", []string{"a"}, true, []string{"a", "b", "c"}},
		{"against arrow", []string{"c"}, true, []string{"b", "c"}},
		{"against arrow undirected", []string{"c"}, false, []string{"a", "b", "c", "d"}},
		{"sink", []string{"b"}, true, []string{"b", "c"}},
		{"source", []string{"d"}, true, []string{"b", "c", "d"}},
		{"self-loop only", []string{"e"}, true, []string{"e"}},
		{"several starts", []string{"e", "d"}, true, []string{"b", "c", "d", "e"}},
		{"no starts", nil, true, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var starts []uuid.UUID
			for _, s := range tt.starts {
				starts = append(starts, ids[s])
			}
			want := make([]uuid.UUID, 0, len(tt.want))
			for _, s := range tt.want {
				want = append(want, ids[s])
			}
			got, err := Reachable(g, tt.followDirected, starts...)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestReachableUnknownAnchor(t *testing.T) {
	g, ids := searchGraph(t)
	_, err := Reachable(g, true, ids["a"], uuid.New())
	require.ErrorIs(t, err, ErrAnchorNotFound)
}

func TestConnected(t *testing.T) {
	g, ids := searchGraph(t)
	tests := []struct {
		from, to       string
		followDirected bool
		want           bool
	}{
		{"a", "c", true, true},
		{"c", "a", true, false},
		{"c", "a", false, true},
		{"a", "d", true, false},
		{"a", "d", false, true},
		{"a", "e", false, false},
		{"e", "e", true, true},
	}
	for _, tt := range tests {
		got, err := Connected(g, ids[tt.from], ids[tt.to], tt.followDirected)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, "%s to %s, followDirected=%t", tt.from, tt.to, tt.followDirected)
	}

	_, err := Connected(g, ids["a"], uuid.New(), true)
	require.ErrorIs(t, err, ErrAnchorNotFound)
	_, err = Connected(g, uuid.New(), ids["a"], true)
	require.ErrorIs(t, err, ErrAnchorNotFound)
}

func TestShortestPath(t *testing.T) {
	g := NewGraph()
	var ids []uuid.UUID
	for i := range 4 {
		a, err := g.AddAnchor(Pt(float64(i)*50, 0), 10)
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}
	a, b, c, d := ids[0], ids[1], ids[2], ids[3]
	conn := func(from, to uuid.UUID, weight int, directed bool) uuid.UUID {
		c, err := g.AddConnection(from, to, WithWeight(weight), WithDirected(directed))
		require.NoError(t, err)
		return c.ID
	}
	direct := conn(a, d, 10, false)
	ab := conn(a, b, 2, false)
	conn(b, c, 5, false)
	bc := conn(c, b, 1, false)
	conn(b, c, 1, false)
	cd := conn(c, d, 2, true)
	dc := conn(d, c, 1, true)

	p, err := ShortestPath(g, a, d)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{a, b, c, d}, p.Anchors)
	// The lightest parallel connection wins, and the earlier one of a tie.
	require.Equal(t, []uuid.UUID{ab, bc, cd}, p.Connections)
	require.Equal(t, 5, p.Length)

	// From d, only d -> c and the heavy direct connection lead anywhere.
	p, err = ShortestPath(g, d, a)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{d, c, b, a}, p.Anchors)
	require.Equal(t, []uuid.UUID{dc, bc, ab}, p.Connections)
	require.Equal(t, 4, p.Length)

	require.NoError(t, g.RemoveConnection(dc))
	p, err = ShortestPath(g, d, a)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{direct}, p.Connections)
	require.Equal(t, 10, p.Length)

	p, err = ShortestPath(g, b, b)
	require.NoError(t, err)
	require.Equal(t, Path{Anchors: []uuid.UUID{b}}, p)
}

func TestShortestPathErrors(t *testing.T) {
	g, ids := searchGraph(t)

	_, err := ShortestPath(g, ids["c"], ids["a"])
	require.ErrorIs(t, err, ErrNoPath)
	_, err = ShortestPath(g, ids["a"], ids["e"])
	require.ErrorIs(t, err, ErrNoPath)

	_, err = ShortestPath(g, ids["a"], uuid.New())
	require.ErrorIs(t, err, ErrAnchorNotFound)
	_, err = ShortestPath(NewGraph(), ids["a"], ids["b"])
	require.ErrorIs(t, err, ErrAnchorNotFound)
}
