package planner

import (
	"github.com/brensch/snekpath/game"
)

// DFS returns the first path a depth-first search finds, expanding
// neighbours in Up, Down, Left, Right order. Visited marks are global to the
// search so every cell is entered at most once; the path is not shortest.
func DFS(req Request) Result {
	s := dfsSearch{
		req:     &req,
		visited: make(game.PointSet, req.Grid.Cells()),
	}
	path, found := s.visit(req.Start)
	if !found {
		return Result{Visited: s.order}
	}
	reverse(path)
	return Result{Path: path, Found: true, Visited: s.order}
}

type dfsSearch struct {
	req     *Request
	visited game.PointSet
	order   []game.Point
}

// visit returns the goal-to-cur directions (reversed) when goal is reachable
// from cur.
func (s *dfsSearch) visit(cur game.Point) ([]game.Direction, bool) {
	if cur == s.req.Goal {
		return make([]game.Direction, 0, 16), true
	}
	s.visited.Add(cur)
	s.order = append(s.order, cur)

	for _, d := range game.Directions {
		next := cur.Add(d)
		if s.visited.Has(next) || s.req.isWall(next) {
			continue
		}
		if path, found := s.visit(next); found {
			return append(path, d), true
		}
	}
	return nil, false
}
