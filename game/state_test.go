package game

import (
	"encoding/json"
	"testing"
)

func TestDirectionBetween_RoundTrip(t *testing.T) {
	parents := []Point{{X: 0, Y: 0}, {X: 5, Y: 7}, {X: 19, Y: 19}, {X: -1, Y: 3}}
	for _, parent := range parents {
		for _, d := range Directions {
			child := parent.Add(d)
			got := DirectionBetween(parent, child)
			if got != d {
				t.Fatalf("DirectionBetween(%v,%v)=%v want=%v", parent, child, got, d)
			}
			if parent.Add(got) != child {
				t.Fatalf("%v + %v = %v want=%v", parent, got, parent.Add(got), child)
			}
		}
	}
}

func TestDirectionBetween_PanicsOnNonUnitDelta(t *testing.T) {
	cases := [][2]Point{
		{{X: 0, Y: 0}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 0, Y: 2}},
		{{X: 3, Y: 3}, {X: 3, Y: 3}},
	}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for %v -> %v", c[0], c[1])
				}
			}()
			DirectionBetween(c[0], c[1])
		}()
	}
}

func TestDirection_Reverse(t *testing.T) {
	for _, d := range Directions {
		r := d.Reverse()
		dx, dy := d.Vector()
		rx, ry := r.Vector()
		if dx != -rx || dy != -ry {
			t.Fatalf("%v.Reverse()=%v is not the negated vector", d, r)
		}
		if r.Reverse() != d {
			t.Fatalf("reverse is not an involution for %v", d)
		}
	}
}

func TestDirection_TextEncoding(t *testing.T) {
	b, err := json.Marshal([]Direction{Up, Down, Left, Right})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `["UP","DOWN","LEFT","RIGHT"]` {
		t.Fatalf("json=%s", b)
	}

	var back []Direction
	if err := json.Unmarshal([]byte(`["up","R","Left","DOWN"]`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []Direction{Up, Right, Left, Down}
	for i := range want {
		if back[i] != want[i] {
			t.Fatalf("back[%d]=%v want=%v", i, back[i], want[i])
		}
	}

	if _, err := ParseDirection("north"); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}

func TestGrid_InBounds(t *testing.T) {
	g := Grid{Width: 20, Height: 10}
	in := []Point{{X: 0, Y: 0}, {X: 19, Y: 9}, {X: 10, Y: 5}}
	out := []Point{{X: -1, Y: 0}, {X: 20, Y: 0}, {X: 0, Y: 10}, {X: 0, Y: -1}}
	for _, p := range in {
		if !g.InBounds(p) {
			t.Fatalf("%v should be in bounds", p)
		}
	}
	for _, p := range out {
		if g.InBounds(p) {
			t.Fatalf("%v should be out of bounds", p)
		}
	}
	if c := g.Center(); c != (Point{X: 10, Y: 5}) {
		t.Fatalf("center=%v", c)
	}
}

func TestWorld_OccupancyAndClone(t *testing.T) {
	w := &World{
		Grid:      Grid{Width: 5, Height: 5},
		Snake:     Snake{Body: []Point{{X: 2, Y: 2}, {X: 2, Y: 3}}, Length: 4, Heading: Up},
		Food:      Point{X: 0, Y: 0},
		Obstacles: []Point{{X: 4, Y: 4}},
	}

	occ := w.Occupancy()
	for _, p := range []Point{{X: 2, Y: 2}, {X: 2, Y: 3}, {X: 0, Y: 0}, {X: 4, Y: 4}} {
		if !occ.Has(p) {
			t.Fatalf("occupancy missing %v", p)
		}
	}
	if len(occ) != 4 {
		t.Fatalf("occupancy size=%d want=4", len(occ))
	}

	c := w.Clone()
	c.Snake.Body[0] = Point{X: 1, Y: 1}
	c.Obstacles[0] = Point{X: 3, Y: 3}
	if w.Snake.Body[0] != (Point{X: 2, Y: 2}) || w.Obstacles[0] != (Point{X: 4, Y: 4}) {
		t.Fatalf("clone shares memory with original")
	}
}

func TestWalk(t *testing.T) {
	cells := Walk(Point{X: 5, Y: 5}, []Direction{Down, Down, Right})
	want := []Point{{X: 5, Y: 6}, {X: 5, Y: 7}, {X: 6, Y: 7}}
	if len(cells) != len(want) {
		t.Fatalf("len=%d want=%d", len(cells), len(want))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cells[%d]=%v want=%v", i, cells[i], want[i])
		}
	}
}
