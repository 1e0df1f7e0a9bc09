package rules

import (
	"math/rand"

	"github.com/brensch/snekpath/game"
)

// InitLength is the body length a snake (re)starts with.
const InitLength = 4

// Turn sets the heading unless it would reverse a multi-cell snake into its
// own neck, in which case the request is dropped.
func Turn(s *game.Snake, d game.Direction) {
	if len(s.Body) > 1 && d == s.Heading.Reverse() {
		return
	}
	s.Heading = d
}

// Step moves the snake one cell along its heading.
// Stepping off the grid or onto any current body cell resets the snake
// instead; Step reports whether the snake actually moved.
func Step(w *game.World, rng *rand.Rand) bool {
	s := &w.Snake
	s.JustReset = false

	next := s.Head().Add(s.Heading)
	if !w.Grid.InBounds(next) || s.Contains(next) {
		Reset(w, rng)
		return false
	}

	s.Body = append(s.Body, game.Point{})
	copy(s.Body[1:], s.Body[:len(s.Body)-1])
	s.Body[0] = next
	for len(s.Body) > s.Length {
		s.Body = s.Body[:len(s.Body)-1]
	}
	return true
}

// Eat grows the snake when its head is on the food and places new food.
func Eat(w *game.World, rng *rand.Rand) bool {
	s := &w.Snake
	if s.Head() != w.Food {
		return false
	}
	s.Length++
	s.Score++
	PlaceFood(w, rng)
	return true
}

// Hit shrinks the snake when its head is on the obstacle cell. A snake that
// shrinks to nothing is reset. The body is trimmed right away so it never
// exceeds Length between ticks.
func Hit(w *game.World, obstacle game.Point, rng *rand.Rand) bool {
	s := &w.Snake
	if s.Head() != obstacle {
		return false
	}
	s.Length--
	s.Score--
	if s.Length <= 0 {
		Reset(w, rng)
		return true
	}
	if len(s.Body) > s.Length {
		s.Body = s.Body[:s.Length]
	}
	return true
}

// HitObstacles applies Hit for every obstacle and returns how many matched.
func HitObstacles(w *game.World, rng *rand.Rand) int {
	hits := 0
	for _, ob := range w.Obstacles {
		if Hit(w, ob, rng) {
			hits++
		}
	}
	return hits
}

// Reset respawns the snake on the grid centre with a random heading.
// Food covered by the new body is moved.
func Reset(w *game.World, rng *rand.Rand) {
	resetSnake(&w.Snake, w.Grid, w.InitLength, rng)
	if w.Snake.Contains(w.Food) {
		PlaceFood(w, rng)
	}
}

func resetSnake(s *game.Snake, grid game.Grid, initLength int, rng *rand.Rand) {
	if initLength <= 0 {
		initLength = InitLength
	}
	s.Body = append(s.Body[:0], grid.Center())
	s.Heading = game.Directions[intn(rng, len(game.Directions))]
	s.Length = initLength
	s.Score = 0
	s.JustReset = true
}

func intn(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.Intn(n)
	}
	return rng.Intn(n)
}
