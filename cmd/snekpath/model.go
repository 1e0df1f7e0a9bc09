package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/snekpath/game"
	"github.com/brensch/snekpath/planner"
	"github.com/brensch/snekpath/session"
)

// rateStep is how much +/- change the tick rate.
const rateStep = 5

type frameMsg session.View

// playDoneMsg arrives once the session supervisor has returned.
type playDoneMsg struct{}

type model struct {
	frames <-chan session.View
	events chan<- session.Event
	styles styles

	view    session.View
	hasView bool
}

func initialModel(frames <-chan session.View, events chan<- session.Event) model {
	return model{
		frames: frames,
		events: events,
		styles: defaultStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return waitForFrame(m.frames)
}

func waitForFrame(frames <-chan session.View) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-frames
		if !ok {
			return playDoneMsg{}
		}
		return frameMsg(v)
	}
}

var arrowKeys = map[string]game.Direction{
	"up":    game.Up,
	"down":  game.Down,
	"left":  game.Left,
	"right": game.Right,
}

var strategyKeys = map[string]planner.Strategy{
	"1": planner.Human,
	"2": planner.DepthFirst,
	"3": planner.BreadthFirst,
	"4": planner.AStarSearch,
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "esc", "ctrl+c":
			m.send(session.QuitEvent())
			return m, tea.Quit
		case "+", "=":
			m.send(session.TickRateEvent(min(session.MaxTickRate, m.view.TickRate+rateStep)))
			return m, nil
		case "-", "_":
			m.send(session.TickRateEvent(max(1, m.view.TickRate-rateStep)))
			return m, nil
		}
		if d, ok := arrowKeys[key]; ok {
			m.send(session.DirectionEvent(d))
		} else if s, ok := strategyKeys[key]; ok {
			m.send(session.RestartEvent(s))
		}
	case frameMsg:
		m.view = session.View(msg)
		m.hasView = true
		return m, waitForFrame(m.frames)
	case playDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

// send drops the event if the session is not keeping up; key repeat will
// produce another.
func (m model) send(ev session.Event) {
	select {
	case m.events <- ev:
	default:
	}
}

func (m model) View() string {
	if !m.hasView {
		return "starting…\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		renderBoard(m.view, m.styles),
		m.styles.status.Render(statusLine(m.view)),
		m.styles.help.Render(helpText),
	) + "\n"
}
