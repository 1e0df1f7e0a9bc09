package session

import (
	"github.com/brensch/snekpath/game"
	"github.com/brensch/snekpath/planner"
)

// EventKind identifies what an input device asked for.
type EventKind uint8

const (
	EventDirection EventKind = iota + 1
	EventQuit
	EventRestart
	EventTickRate
)

// Event is a message from the UI to the tick driver. Only the field matching
// Kind is meaningful.
type Event struct {
	Kind      EventKind
	Direction game.Direction
	Strategy  planner.Strategy
	TickRate  int
}

func DirectionEvent(d game.Direction) Event {
	return Event{Kind: EventDirection, Direction: d}
}

func QuitEvent() Event {
	return Event{Kind: EventQuit}
}

// RestartEvent ends the session at the next tick so a fresh one can start
// with the given strategy.
func RestartEvent(s planner.Strategy) Event {
	return Event{Kind: EventRestart, Strategy: s}
}

func TickRateEvent(ticksPerSecond int) Event {
	return Event{Kind: EventTickRate, TickRate: ticksPerSecond}
}
