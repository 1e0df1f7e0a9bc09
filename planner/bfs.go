package planner

import (
	"github.com/brensch/snekpath/game"
)

// BFS returns a shortest path in grid hops with obstacles and tail as walls.
func BFS(req Request) Result {
	if req.Start == req.Goal {
		return Result{Path: []game.Direction{}, Found: true}
	}

	// start maps to itself and marks the root.
	parents := map[game.Point]game.Point{req.Start: req.Start}
	queue := make([]game.Point, 0, req.Grid.Cells())
	queue = append(queue, req.Start)
	var order []game.Point

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		order = append(order, cur)

		for _, d := range game.Directions {
			next := cur.Add(d)
			if _, seen := parents[next]; seen || req.isWall(next) {
				continue
			}
			parents[next] = cur
			if next == req.Goal {
				return Result{Path: tracePath(parents, req.Start, req.Goal), Found: true, Visited: order}
			}
			queue = append(queue, next)
		}
	}
	return Result{Visited: order}
}
