package planner

import (
	"github.com/brensch/snekpath/game"
)

// AStar searches with priority f = g + h + penalty where g counts hops from
// the start, h is the Manhattan distance to the goal, and penalty is
// ObstaclePenalty on obstacle cells. Obstacles are traversable; tail cells
// and the grid edge are walls.
//
// Equal priorities pop in insertion order. A node is re-queued whenever a
// strictly shorter g is found, so the queue may hold stale duplicates; those
// are skipped on pop. The search ends when the goal is popped.
func AStar(req Request) Result {
	h := func(p game.Point) int { return manhattan(p, req.Goal) }

	g := map[game.Point]int{req.Start: 0}
	parents := map[game.Point]game.Point{req.Start: req.Start}
	open := make(nodeHeap, 0, req.Grid.Cells())
	var seq uint64
	var order []game.Point

	open.push(heapNode{p: req.Start, g: 0, f: h(req.Start), seq: seq})
	seq++

	for len(open) > 0 {
		n := open.pop()
		if n.g > g[n.p] {
			continue
		}
		if n.p == req.Goal {
			return Result{Path: tracePath(parents, req.Start, req.Goal), Found: true, Visited: order}
		}
		order = append(order, n.p)

		for _, d := range game.Directions {
			next := n.p.Add(d)
			if !req.Grid.InBounds(next) || req.Tail.Has(next) {
				continue
			}
			tentative := n.g + 1
			if best, ok := g[next]; ok && tentative >= best {
				continue
			}
			g[next] = tentative
			parents[next] = n.p

			f := tentative + h(next)
			if req.Blocked.Has(next) {
				f += ObstaclePenalty
			}
			open.push(heapNode{p: next, g: tentative, f: f, seq: seq})
			seq++
		}
	}
	return Result{Visited: order}
}

type heapNode struct {
	p   game.Point
	g   int
	f   int
	seq uint64
}

func (a heapNode) less(b heapNode) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

// nodeHeap is a binary min-heap ordered by (f, seq).
type nodeHeap []heapNode

func (h *nodeHeap) push(e heapNode) {
	*h = append(*h, e)
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !(*h)[i].less((*h)[parent]) {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *nodeHeap) pop() heapNode {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].less((*h)[left]) {
			smallest = right
		}
		if !(*h)[smallest].less((*h)[i]) {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}
