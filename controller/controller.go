// Package controller turns planned paths into per-tick turns.
//
// A Controller owns a buffer of directions. Automatic strategies refill it
// from a planner; the human strategy refills it from key presses. The
// controller only chooses which way the snake faces; moving is the driver's
// job.
package controller

import (
	"time"

	"github.com/brensch/snekpath/game"
	"github.com/brensch/snekpath/planner"
	"github.com/brensch/snekpath/rules"
)

// Decision reports what OnTick did.
type Decision struct {
	// Turned is true when a direction was consumed and passed to rules.Turn.
	Turned    bool
	Direction game.Direction

	Replanned bool
	PlanTime  time.Duration

	// Reset asks the driver to reset the snake because no path exists.
	Reset bool
}

type Controller struct {
	strategy planner.Strategy

	planned []game.Direction
	visited []game.Point
}

// New returns a controller for the given strategy with an empty buffer.
func New(strategy planner.Strategy) *Controller {
	return &Controller{strategy: strategy}
}

func (c *Controller) Strategy() planner.Strategy {
	return c.strategy
}

// OnTick replans when the buffer is empty or the snake was just reset, then
// consumes one direction.
func (c *Controller) OnTick(w *game.World) Decision {
	var dec Decision
	if len(c.planned) == 0 || w.Snake.JustReset {
		start := time.Now()
		found := c.Replan(w)
		if c.strategy.Automatic() {
			dec.Replanned = true
			dec.PlanTime = time.Since(start)
			if !found {
				dec.Reset = true
				return dec
			}
		}
	}

	if len(c.planned) == 0 {
		return dec
	}
	d := c.planned[0]
	c.planned = c.planned[1:]
	rules.Turn(&w.Snake, d)
	dec.Turned = true
	dec.Direction = d
	return dec
}

// Replan searches from the head to the food and replaces the buffer with the
// result. On failure the buffer is emptied and Replan returns false.
// For the human strategy it is a no-op that keeps queued key presses.
func (c *Controller) Replan(w *game.World) bool {
	if !c.strategy.Automatic() {
		return true
	}
	res := c.strategy.Plan(planner.NewRequest(w))
	c.visited = res.Visited
	if !res.Found {
		c.planned = c.planned[:0]
		return false
	}
	c.planned = append(c.planned[:0], res.Path...)
	return true
}

// Enqueue appends a direction from the input device. Automatic strategies
// ignore it and return false.
func (c *Controller) Enqueue(d game.Direction) bool {
	if c.strategy.Automatic() {
		return false
	}
	c.planned = append(c.planned, d)
	return true
}

// Path returns a copy of the remaining planned directions.
func (c *Controller) Path() []game.Direction {
	out := make([]game.Direction, len(c.planned))
	copy(out, c.planned)
	return out
}

// Visited returns a copy of the cells the last search expanded.
func (c *Controller) Visited() []game.Point {
	out := make([]game.Point, len(c.visited))
	copy(out, c.visited)
	return out
}
