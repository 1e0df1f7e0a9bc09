// Package planner finds a direction sequence that takes the snake head to the
// food cell.
//
// Three searches share one request/result shape: DFS and BFS treat obstacles
// as walls, A* walks through them at a cost. All of them treat the snake tail
// and the grid edge as walls. Planners are pure: they read the request and
// return a fresh result.
package planner

import (
	"github.com/brensch/snekpath/game"
)

// ObstaclePenalty is added to an obstacle cell's A* priority.
const ObstaclePenalty = 50

// Request is one planning problem.
// Blocked holds the obstacle cells and Tail holds Body[1:]; the head is Start
// and never blocks itself.
type Request struct {
	Grid    game.Grid
	Start   game.Point
	Goal    game.Point
	Blocked game.PointSet
	Tail    game.PointSet
}

// Result is the outcome of a search. Path is nil when Found is false.
// Visited lists expanded cells in expansion order.
type Result struct {
	Path    []game.Direction
	Found   bool
	Visited []game.Point
}

// Cells returns the cells entered when Path is applied from start.
func (r Result) Cells(start game.Point) []game.Point {
	return game.Walk(start, r.Path)
}

// NewRequest builds a request for the current world: plan from the head to
// the food with obstacles blocked and the tail as walls.
func NewRequest(w *game.World) Request {
	return Request{
		Grid:    w.Grid,
		Start:   w.Snake.Head(),
		Goal:    w.Food,
		Blocked: w.ObstacleSet(),
		Tail:    game.NewPointSet(w.Snake.Tail()),
	}
}

// isWall reports cells DFS and BFS refuse to enter.
func (r *Request) isWall(p game.Point) bool {
	return !r.Grid.InBounds(p) || r.Blocked.Has(p) || r.Tail.Has(p)
}

// tracePath walks parent links back from goal to start and returns the
// directions in start→goal order.
func tracePath(parents map[game.Point]game.Point, start, goal game.Point) []game.Direction {
	var path []game.Direction
	for cur := goal; cur != start; {
		parent := parents[cur]
		path = append(path, game.DirectionBetween(parent, cur))
		cur = parent
	}
	reverse(path)
	return path
}

func reverse(path []game.Direction) {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
}

func manhattan(a, b game.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
