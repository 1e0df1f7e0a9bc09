package controller

import (
	"testing"

	"github.com/brensch/snekpath/game"
	"github.com/brensch/snekpath/planner"
)

func world(body []game.Point, heading game.Direction, food game.Point, obstacles ...game.Point) *game.World {
	return &game.World{
		Grid:       game.Grid{Width: 20, Height: 20},
		Snake:      game.Snake{Body: body, Length: 4, Heading: heading},
		Food:       food,
		Obstacles:  obstacles,
		InitLength: 4,
	}
}

func TestOnTick_PlansThenConsumes(t *testing.T) {
	w := world([]game.Point{{X: 5, Y: 5}}, game.Up, game.Point{X: 5, Y: 8})
	c := New(planner.BreadthFirst)

	dec := c.OnTick(w)
	if !dec.Replanned || !dec.Turned || dec.Reset {
		t.Fatalf("decision=%+v", dec)
	}
	if dec.Direction != game.Down || w.Snake.Heading != game.Down {
		t.Fatalf("direction=%v heading=%v want=DOWN", dec.Direction, w.Snake.Heading)
	}
	if got := c.Path(); len(got) != 2 || got[0] != game.Down || got[1] != game.Down {
		t.Fatalf("remaining path=%v want=[DOWN DOWN]", got)
	}

	// Buffer not empty and no reset: consume without replanning.
	dec = c.OnTick(w)
	if dec.Replanned {
		t.Fatalf("replanned with a non-empty buffer")
	}
	if len(c.Path()) != 1 {
		t.Fatalf("remaining path=%v", c.Path())
	}
	if len(c.Visited()) == 0 {
		t.Fatalf("expected visited cells from the last search")
	}
}

func TestOnTick_ReplansAfterReset(t *testing.T) {
	w := world([]game.Point{{X: 5, Y: 5}}, game.Up, game.Point{X: 5, Y: 8})
	c := New(planner.BreadthFirst)
	c.OnTick(w)

	// The snake respawned elsewhere; the stale buffer must be replaced.
	w.Snake.Body = []game.Point{{X: 10, Y: 10}}
	w.Snake.JustReset = true
	dec := c.OnTick(w)
	if !dec.Replanned {
		t.Fatalf("did not replan after reset")
	}
	cells := game.Walk(game.Point{X: 10, Y: 10}, append([]game.Direction{dec.Direction}, c.Path()...))
	if cells[len(cells)-1] != w.Food {
		t.Fatalf("new plan ends at %v want=%v", cells[len(cells)-1], w.Food)
	}
}

func TestOnTick_NoPathRequestsReset(t *testing.T) {
	// Head in the corner, boxed in by its own tail.
	w := world(
		[]game.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		game.Up,
		game.Point{X: 10, Y: 15},
	)
	for _, s := range []planner.Strategy{planner.DepthFirst, planner.BreadthFirst, planner.AStarSearch} {
		c := New(s)
		dec := c.OnTick(w)
		if !dec.Reset || dec.Turned {
			t.Fatalf("%v: decision=%+v want reset without turn", s, dec)
		}
		if len(c.Path()) != 0 {
			t.Fatalf("%v: buffer=%v want empty", s, c.Path())
		}
	}
}

func TestHuman_QueueAndNoSearch(t *testing.T) {
	w := world([]game.Point{{X: 5, Y: 5}, {X: 5, Y: 6}}, game.Up, game.Point{X: 0, Y: 0})
	w.Snake.JustReset = true
	c := New(planner.Human)

	dec := c.OnTick(w)
	if dec.Replanned || dec.Reset || dec.Turned {
		t.Fatalf("empty human queue produced %+v", dec)
	}

	c.Enqueue(game.Left)
	c.Enqueue(game.Down)
	dec = c.OnTick(w)
	if !dec.Turned || dec.Direction != game.Left || w.Snake.Heading != game.Left {
		t.Fatalf("decision=%+v heading=%v", dec, w.Snake.Heading)
	}
	if p := c.Path(); len(p) != 1 || p[0] != game.Down {
		t.Fatalf("queue=%v want=[DOWN]", p)
	}
}

func TestEnqueue_IgnoredByAutomaticStrategies(t *testing.T) {
	c := New(planner.AStarSearch)
	if c.Enqueue(game.Up) {
		t.Fatalf("automatic controller accepted a key press")
	}
	if len(c.Path()) != 0 {
		t.Fatalf("buffer=%v", c.Path())
	}
}

func TestPath_ReturnsCopy(t *testing.T) {
	c := New(planner.Human)
	c.Enqueue(game.Right)
	p := c.Path()
	p[0] = game.Left
	if c.Path()[0] != game.Right {
		t.Fatalf("Path exposed the internal buffer")
	}
}
