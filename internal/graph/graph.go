// Package graph builds a weighted traversal graph from a grid snapshot and
// answers single-pair shortest path queries. Nodes are coordinate strings
// ("x,y"); edges connect a cell to each neighbor that is walkable under the
// traversal policy passed to Build.
package graph

import (
	"container/heap"
	"math"

	"badicecream/internal/grid"
)

// Policy controls which neighbors are considered walkable when the graph
// is built.
type Policy struct {
	// CanBreakFrozen, if false, makes frozen cells non-walkable.
	CanBreakFrozen bool
	// CanWalkOverPlayers, if false, makes cells occupied by a
	// non-killable character (a player) non-walkable. Cells occupied by
	// a killable character (an enemy) are always walkable.
	CanWalkOverPlayers bool
}

// edge weight is uniformly 1, kept as a named constant rather than a
// literal so a future non-uniform cost model has a single place to change.
const edgeWeight = 1.0

// Graph is an adjacency list snapshot of walkable cells, keyed by
// grid.Coord(x,y).
type Graph struct {
	adjacency map[string][]string
}

// Build walks every cell of g and records a directed edge to each neighbor
// that is walkable under policy.
func Build(g *grid.Grid, policy Policy) *Graph {
	out := &Graph{adjacency: make(map[string][]string, grid.Size*grid.Size)}
	g.Each(func(c *grid.Cell) {
		if c.Blocked() {
			return
		}
		key := c.Coord()
		if _, ok := out.adjacency[key]; !ok {
			out.adjacency[key] = nil
		}
		for _, dir := range grid.AllDirections {
			n := c.Neighbor(dir)
			if n == nil || !walkable(n, policy) {
				continue
			}
			out.adjacency[key] = append(out.adjacency[key], n.Coord())
		}
	})
	return out
}

func walkable(c *grid.Cell, policy Policy) bool {
	if c.Blocked() {
		return false
	}
	if c.IsFrozen() && !policy.CanBreakFrozen {
		return false
	}
	if occ := c.Character(); occ != nil {
		if !occ.Killable() && !policy.CanWalkOverPlayers {
			return false
		}
	}
	return true
}

// Result is the outcome of a shortest-path query.
type Result struct {
	Distance float64
	Path     []string // ordered coordinates from source to target, inclusive
}

// ShortestPath runs Dijkstra from source to target over the graph. If
// target is unreachable, Distance is +Inf and Path is empty.
func (gr *Graph) ShortestPath(source, target string) Result {
	if _, ok := gr.adjacency[source]; !ok {
		return Result{Distance: math.Inf(1)}
	}

	dist := make(map[string]float64, len(gr.adjacency))
	prev := make(map[string]string, len(gr.adjacency))
	dist[source] = 0

	seq := 0
	nextSeq := func() int {
		seq++
		return seq
	}

	pq := &nodeHeap{}
	heap.Init(pq)
	heap.Push(pq, &heapNode{coord: source, dist: 0, seq: nextSeq()})

	visited := make(map[string]bool, len(gr.adjacency))

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*heapNode)
		if visited[cur.coord] {
			continue
		}
		visited[cur.coord] = true

		if cur.coord == target {
			break
		}

		for _, neighbor := range gr.adjacency[cur.coord] {
			if visited[neighbor] {
				continue
			}
			nd := cur.dist + edgeWeight
			if d, ok := dist[neighbor]; !ok || nd < d {
				dist[neighbor] = nd
				prev[neighbor] = cur.coord
				heap.Push(pq, &heapNode{coord: neighbor, dist: nd, seq: nextSeq()})
			}
		}
	}

	d, ok := dist[target]
	if !ok {
		return Result{Distance: math.Inf(1)}
	}

	path := []string{target}
	for cur := target; cur != source; {
		p, ok := prev[cur]
		if !ok {
			return Result{Distance: math.Inf(1)}
		}
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return Result{Distance: d, Path: path}
}
