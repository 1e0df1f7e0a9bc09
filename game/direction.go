package game

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal unit vectors.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in the fixed neighbour expansion order.
var Directions = [4]Direction{Up, Down, Left, Right}

var dirVectors = [4][2]int{
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

var dirNames = [4]string{"UP", "DOWN", "LEFT", "RIGHT"}

// Vector returns the (dx, dy) unit vector.
func (d Direction) Vector() (int, int) {
	v := dirVectors[d&3]
	return v[0], v[1]
}

// Reverse returns the negated direction.
func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	if int(d) < len(dirNames) {
		return dirNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// MarshalText encodes the direction by name so views serialise as "UP" etc.
func (d Direction) MarshalText() ([]byte, error) {
	if int(d) >= len(dirNames) {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte(dirNames[d]), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection accepts the direction names case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP", "U":
		return Up, nil
	case "DOWN", "D":
		return Down, nil
	case "LEFT", "L":
		return Left, nil
	case "RIGHT", "R":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// DirectionBetween converts a parent→child step back into a direction.
// Only unit deltas have a direction; anything else is a programming error.
func DirectionBetween(from, to Point) Direction {
	dx, dy := to.X-from.X, to.Y-from.Y
	for _, d := range Directions {
		vx, vy := d.Vector()
		if vx == dx && vy == dy {
			return d
		}
	}
	panic(fmt.Sprintf("game: no direction for delta (%d,%d) from %v to %v", dx, dy, from, to))
}

// Walk applies path to start and returns every cell entered, in order.
func Walk(start Point, path []Direction) []Point {
	cells := make([]Point, 0, len(path))
	cur := start
	for _, d := range path {
		cur = cur.Add(d)
		cells = append(cells, cur)
	}
	return cells
}
