package web

import (
	"fmt"

	"github.com/brensch/snekpath/game"
	"github.com/brensch/snekpath/planner"
	"github.com/brensch/snekpath/session"
)

// Client → server message types.
const (
	MsgDirection = "dir"
	MsgRestart   = "restart"
	MsgRate      = "rate"
	MsgQuit      = "quit"
)

// Server → client message types.
const (
	MsgWelcome = "welcome"
	MsgFrame   = "frame"
	MsgError   = "error"
)

// ClientMessage is the single shape of every control message.
//
//	{"t":"dir","d":"UP"}
//	{"t":"restart","s":"a_star"}
//	{"t":"rate","fps":60}
//	{"t":"quit"}
type ClientMessage struct {
	Type      string `json:"t"`
	Direction string `json:"d,omitempty"`
	Strategy  string `json:"s,omitempty"`
	FPS       int    `json:"fps,omitempty"`
}

type WelcomeMsg struct {
	Type       string         `json:"t"`
	ID         string         `json:"id"`
	Strategies []StrategyInfo `json:"strategies"`
}

type FrameMsg struct {
	Type string       `json:"t"`
	View session.View `json:"view"`
}

type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"message"`
}

// StrategyInfo describes one entry of the strategy menu.
type StrategyInfo struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Automatic bool   `json:"automatic"`
}

var strategyLabels = map[planner.Strategy]string{
	planner.Human:        "Human",
	planner.DepthFirst:   "DFS",
	planner.BreadthFirst: "BFS",
	planner.AStarSearch:  "A*",
}

func strategyMenu() []StrategyInfo {
	out := make([]StrategyInfo, 0, len(planner.Strategies))
	for _, s := range planner.Strategies {
		out = append(out, StrategyInfo{
			Name:      s.String(),
			Label:     strategyLabels[s],
			Automatic: s.Automatic(),
		})
	}
	return out
}

// Event converts a client message into a session event.
func (m ClientMessage) Event() (session.Event, error) {
	switch m.Type {
	case MsgDirection:
		d, err := game.ParseDirection(m.Direction)
		if err != nil {
			return session.Event{}, err
		}
		return session.DirectionEvent(d), nil
	case MsgRestart:
		s, err := planner.ParseStrategy(m.Strategy)
		if err != nil {
			return session.Event{}, err
		}
		return session.RestartEvent(s), nil
	case MsgRate:
		if !session.ValidTickRate(m.FPS) {
			return session.Event{}, fmt.Errorf("fps must be in 1..%d, got %d", session.MaxTickRate, m.FPS)
		}
		return session.TickRateEvent(m.FPS), nil
	case MsgQuit:
		return session.QuitEvent(), nil
	}
	return session.Event{}, fmt.Errorf("unknown message type %q", m.Type)
}
