package rules

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/brensch/snekpath/game"
)

// ErrNoRoom is returned when the requested obstacles cannot fit on the grid.
var ErrNoRoom = errors.New("not enough free cells")

// Settings controls world construction.
type Settings struct {
	Width      int
	Height     int
	Obstacles  int
	InitLength int
}

// DefaultSettings is a 20×20 grid with 40 obstacles.
var DefaultSettings = Settings{Width: 20, Height: 20, Obstacles: 40, InitLength: InitLength}

// Validate checks grid dimensions and obstacle capacity.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("grid must be positive, got %dx%d", s.Width, s.Height)
	}
	if s.Obstacles < 0 {
		return fmt.Errorf("obstacle count must be non-negative, got %d", s.Obstacles)
	}
	if s.InitLength <= 0 {
		return fmt.Errorf("initial length must be positive, got %d", s.InitLength)
	}
	if need := s.Obstacles + s.InitLength + 1; need > s.Width*s.Height {
		return fmt.Errorf("%w: %d obstacles + length %d + food need %d cells, grid has %d",
			ErrNoRoom, s.Obstacles, s.InitLength, need, s.Width*s.Height)
	}
	return nil
}

// NewWorld builds a fresh world: a reset snake on the centre cell, obstacles
// on distinct cells away from it, and food on a free cell.
func NewWorld(settings Settings, rng *rand.Rand) (*game.World, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	w := &game.World{
		Grid:       game.Grid{Width: settings.Width, Height: settings.Height},
		InitLength: settings.InitLength,
	}
	resetSnake(&w.Snake, w.Grid, w.InitLength, rng)

	occupied := game.NewPointSet(w.Snake.Body)
	w.Obstacles = sampleFree(w.Grid, occupied, settings.Obstacles, rng)
	if len(w.Obstacles) != settings.Obstacles {
		return nil, fmt.Errorf("place obstacles: %w", ErrNoRoom)
	}

	for _, ob := range w.Obstacles {
		occupied.Add(ob)
	}
	food := sampleFree(w.Grid, occupied, 1, rng)
	if len(food) == 0 {
		return nil, fmt.Errorf("place food: %w", ErrNoRoom)
	}
	w.Food = food[0]

	return w, nil
}

// PlaceFood moves the food to a uniformly random cell outside the occupancy
// index (which includes the current food cell). When the grid has no free
// cell the food is left where it is and PlaceFood returns false.
func PlaceFood(w *game.World, rng *rand.Rand) bool {
	spot := sampleFree(w.Grid, w.Occupancy(), 1, rng)
	if len(spot) == 0 {
		return false
	}
	w.Food = spot[0]
	return true
}

// sampleFree picks up to n distinct cells that are not in occupied.
func sampleFree(grid game.Grid, occupied game.PointSet, n int, rng *rand.Rand) []game.Point {
	if n <= 0 {
		return nil
	}
	freeSpots := make([]game.Point, 0, max(0, grid.Cells()-len(occupied)))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := game.Point{X: x, Y: y}
			if !occupied.Has(p) {
				freeSpots = append(freeSpots, p)
			}
		}
	}
	if n > len(freeSpots) {
		n = len(freeSpots)
	}

	// Partial Fisher-Yates: the first n entries end up a uniform sample.
	for i := 0; i < n; i++ {
		j := i + intn(rng, len(freeSpots)-i)
		freeSpots[i], freeSpots[j] = freeSpots[j], freeSpots[i]
	}
	return freeSpots[:n:n]
}
