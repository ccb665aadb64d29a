package edgegeom

import (
	"container/heap"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// ErrNoPath indicates that no path joins two anchors.
var ErrNoPath = errors.New("edgegeom: anchors are not connected")

// hop is a way out of an anchor: the connection taken and the anchor it
// leads to.
type hop struct {
	conn *Connection
	to   uuid.UUID
}

// adjacency lists the hops out of every anchor, in connection order.
// Undirected connections can be taken both ways. Directed connections can
// only be taken from From to To, unless followDirected is false. Self-loops
// lead nowhere and are left out.
func (g *Graph) adjacency(followDirected bool) map[uuid.UUID][]hop {
	adj := make(map[uuid.UUID][]hop, len(g.anchors))
	for c := range g.Connections() {
		if c.IsLoop() {
			continue
		}
		adj[c.From] = append(adj[c.From], hop{c, c.To})
		if !c.Directed || !followDirected {
			adj[c.To] = append(adj[c.To], hop{c, c.From})
		}
	}
	return adj
}

// Reachable returns every anchor that can be reached from at least one of
// starts, the starts included, in the order the anchors were added. If
// followDirected is false, directed connections are treated as undirected.
func Reachable(g *Graph, followDirected bool, starts ...uuid.UUID) ([]uuid.UUID, error) {
	for _, id := range starts {
		if _, ok := g.anchors[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrAnchorNotFound, id)
		}
	}
	adj := g.adjacency(followDirected)
	visited := make(map[uuid.UUID]bool, len(g.anchors))
	var stack []uuid.UUID
	for _, start := range starts {
		if visited[start] {
			continue
		}
		visited[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, s := range adj[id] {
				if !visited[s.to] {
					visited[s.to] = true
					stack = append(stack, s.to)
				}
			}
		}
	}

	out := make([]uuid.UUID, 0, len(visited))
	for _, id := range g.anchorOrder {
		if visited[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

// Connected reports whether a path leads from anchor from to anchor to. An
// anchor is always connected to itself.
func Connected(g *Graph, from, to uuid.UUID, followDirected bool) (bool, error) {
	if _, ok := g.anchors[to]; !ok {
		return false, fmt.Errorf("%w: %s", ErrAnchorNotFound, to)
	}
	reached, err := Reachable(g, followDirected, from)
	if err != nil {
		return false, err
	}
	for _, id := range reached {
		if id == to {
			return true, nil
		}
	}
	return false, nil
}

// Path is a walk through the graph.
type Path struct {
	// Anchors lists the anchors visited, from start to destination.
	Anchors []uuid.UUID
	// Connections lists the connections taken. Connections[i] joins Anchors[i]
	// and Anchors[i+1].
	Connections []uuid.UUID
	// Length is the sum of the weights of the connections.
	Length int
}

// ShortestPath returns the path from anchor from to anchor to with the least
// total weight. Directed connections can only be followed from From to To.
// Among parallel connections, the lightest one is taken, and the earliest of
// equally light ones.
//
// It returns ErrAnchorNotFound if either anchor is missing and ErrNoPath if
// to can't be reached from from.
func ShortestPath(g *Graph, from, to uuid.UUID) (Path, error) {
	for _, id := range [2]uuid.UUID{from, to} {
		if _, ok := g.anchors[id]; !ok {
			return Path{}, fmt.Errorf("%w: %s", ErrAnchorNotFound, id)
		}
	}
	if from == to {
		return Path{Anchors: []uuid.UUID{from}}, nil
	}

	adj := g.adjacency(true)
	dist := map[uuid.UUID]int{from: 0}
	// prev[id] is the last hop of the best path to id, pointing back.
	prev := make(map[uuid.UUID]hop)
	done := make(map[uuid.UUID]bool)
	pq := &pathQueue{}
	heap.Push(pq, &pathItem{id: from})
	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pathItem)
		if done[item.id] {
			continue
		}
		done[item.id] = true
		if item.id == to {
			break
		}
		for _, s := range adj[item.id] {
			if done[s.to] {
				continue
			}
			d := item.dist + s.conn.Weight
			if old, ok := dist[s.to]; ok && d >= old {
				continue
			}
			dist[s.to] = d
			prev[s.to] = hop{s.conn, item.id}
			heap.Push(pq, &pathItem{id: s.to, dist: d, seq: pq.pushed})
		}
	}
	if !done[to] {
		return Path{}, fmt.Errorf("%w: %s and %s", ErrNoPath, from, to)
	}

	p := Path{Length: dist[to]}
	for id := to; id != from; id = prev[id].to {
		p.Anchors = append(p.Anchors, id)
		p.Connections = append(p.Connections, prev[id].conn.ID)
	}
	p.Anchors = append(p.Anchors, from)
	slices.Reverse(p.Anchors)
	slices.Reverse(p.Connections)
	return p, nil
}

// pathItem is an anchor waiting in the queue with its tentative distance.
// Stale items are skipped when popped.
type pathItem struct {
	id   uuid.UUID
	dist int
	seq  int
}

// pathQueue is a min-heap of items ordered by distance, then by the order in
// which they were pushed.
type pathQueue struct {
	items  []*pathItem
	pushed int
}

func (pq *pathQueue) Len() int { return len(pq.items) }

func (pq *pathQueue) Less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.seq < b.seq
}

func (pq *pathQueue) Swap(i, j int) { pq.items[i], pq.items[j] = pq.items[j], pq.items[i] }

func (pq *pathQueue) Push(x any) {
	pq.items = append(pq.items, x.(*pathItem))
	pq.pushed++
}

func (pq *pathQueue) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	pq.items = old[:n-1]
	return item
}
