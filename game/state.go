// Package game defines the core world state types for snekpath.
//
// These types hold the grid world a single session plays on: the snake, the
// food cell and the fixed obstacle set. Transitions live in package rules and
// path planning in package planner; this package only carries state and the
// grid primitives both of them share.
package game

// Point is a grid cell. (0,0) is the top-left corner and y grows downward.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add applies a direction to the cell. There is no wrap-around.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Vector()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Grid is the rectangular playing field.
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// InBounds reports whether p lies on the grid.
func (g Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Center is the cell a snake respawns on.
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// Cells returns the number of cells on the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// PointSet is a set of cells.
type PointSet map[Point]struct{}

// NewPointSet builds a set from any number of point slices.
func NewPointSet(groups ...[]Point) PointSet {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	s := make(PointSet, n)
	for _, g := range groups {
		for _, p := range g {
			s[p] = struct{}{}
		}
	}
	return s
}

func (s PointSet) Has(p Point) bool {
	_, ok := s[p]
	return ok
}

func (s PointSet) Add(p Point) {
	s[p] = struct{}{}
}

// Snake is the player-controlled body. Body[0] is the head.
//
// Length is the target body length: growth is realised lazily, the next step
// keeps the tail until len(Body) exceeds Length.
type Snake struct {
	Body      []Point
	Length    int
	Heading   Direction
	Score     int
	JustReset bool
}

// Head returns the head cell. The body is never empty once a world is built.
func (s *Snake) Head() Point {
	return s.Body[0]
}

// Tail returns Body[1:], the cells a planner treats as walls.
func (s *Snake) Tail() []Point {
	if len(s.Body) < 2 {
		return nil
	}
	return s.Body[1:]
}

// Contains reports whether p is any body cell.
func (s *Snake) Contains(p Point) bool {
	for _, b := range s.Body {
		if b == p {
			return true
		}
	}
	return false
}

// World is the complete state of one session.
// Obstacles are placed once at construction and never mutated afterwards.
type World struct {
	Grid       Grid
	Snake      Snake
	Food       Point
	Obstacles  []Point
	InitLength int

	obstacleSet PointSet
}

// ObstacleSet returns the obstacle cells as a set. The set is cached; callers
// must not modify it.
func (w *World) ObstacleSet() PointSet {
	if w.obstacleSet == nil || len(w.obstacleSet) != len(w.Obstacles) {
		w.obstacleSet = NewPointSet(w.Obstacles)
	}
	return w.obstacleSet
}

// Occupancy is body ∪ obstacles ∪ {food}. It is rebuilt on every call and is
// only used for random placement.
func (w *World) Occupancy() PointSet {
	occ := NewPointSet(w.Snake.Body, w.Obstacles)
	occ.Add(w.Food)
	return occ
}

// Clone performs a deep copy of the world.
func (w *World) Clone() *World {
	if w == nil {
		return nil
	}

	out := &World{
		Grid:       w.Grid,
		Food:       w.Food,
		InitLength: w.InitLength,
		Snake: Snake{
			Length:    w.Snake.Length,
			Heading:   w.Snake.Heading,
			Score:     w.Snake.Score,
			JustReset: w.Snake.JustReset,
		},
	}

	if len(w.Snake.Body) > 0 {
		out.Snake.Body = make([]Point, len(w.Snake.Body))
		copy(out.Snake.Body, w.Snake.Body)
	}
	if len(w.Obstacles) > 0 {
		out.Obstacles = make([]Point, len(w.Obstacles))
		copy(out.Obstacles, w.Obstacles)
	}

	return out
}
