package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/snekpath/game"
	"github.com/brensch/snekpath/planner"
	"github.com/brensch/snekpath/session"
)

func plainStyles() styles {
	var s styles
	for i := range s.cells {
		s.cells[i] = lipgloss.NewStyle()
	}
	s.border = lipgloss.NewStyle()
	s.status = lipgloss.NewStyle()
	s.help = lipgloss.NewStyle()
	return s
}

func sampleView() session.View {
	path := []game.Direction{game.Right, game.Right, game.Down}
	head := game.Point{X: 1, Y: 1}
	return session.View{
		Tick:      7,
		Strategy:  planner.BreadthFirst,
		TickRate:  30,
		Width:     5,
		Height:    4,
		Snake:     []game.Point{head, {X: 0, Y: 1}, {X: 0, Y: 2}},
		Food:      game.Point{X: 3, Y: 2},
		Obstacles: []game.Point{{X: 4, Y: 0}},
		Path:      path,
		PathCells: game.Walk(head, path),
		Visited:   []game.Point{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 2}},
		Score:     2,
		Length:    3,
	}
}

func TestLayers_Precedence(t *testing.T) {
	grid := layers(sampleView())
	want := [][]cellKind{
		{cellEmpty, cellVisited, cellEmpty, cellEmpty, cellObstacle},
		{cellBody, cellHead, cellPath, cellPath, cellEmpty},
		{cellBody, cellVisited, cellEmpty, cellFood, cellEmpty},
		{cellEmpty, cellEmpty, cellEmpty, cellEmpty, cellEmpty},
	}
	for y := range want {
		for x := range want[y] {
			if grid[y][x] != want[y][x] {
				t.Fatalf("cell (%d,%d)=%d want=%d", x, y, grid[y][x], want[y][x])
			}
		}
	}
}

func TestRenderBoard_Plain(t *testing.T) {
	out := renderBoard(sampleView(), plainStyles())
	t.Logf("\n%s", out)
	rows := strings.Split(out, "\n")
	if len(rows) != 4 {
		t.Fatalf("rows=%d want=4", len(rows))
	}
	if rows[1] != "████░░░░  " {
		t.Fatalf("row 1=%q", rows[1])
	}
	if rows[2] != "██··  ()  " {
		t.Fatalf("row 2=%q", rows[2])
	}
}

func TestStatusLine(t *testing.T) {
	s := statusLine(sampleView())
	for _, want := range []string{"bfs", "score 2", "length 3", "tick 7", "30 fps"} {
		if !strings.Contains(s, want) {
			t.Fatalf("status %q missing %q", s, want)
		}
	}
}

func TestModel_KeysBecomeEvents(t *testing.T) {
	frames := make(chan session.View)
	events := make(chan session.Event, 8)
	m := initialModel(frames, events)

	next, _ := m.Update(frameMsg(sampleView()))
	m = next.(model)

	press := func(k tea.KeyMsg) {
		next, _ := m.Update(k)
		m = next.(model)
	}
	press(tea.KeyMsg{Type: tea.KeyUp})
	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	want := []session.Event{
		session.DirectionEvent(game.Up),
		session.RestartEvent(planner.AStarSearch),
		session.TickRateEvent(35),
	}
	for i, w := range want {
		select {
		case got := <-events:
			if got != w {
				t.Fatalf("event %d=%+v want=%+v", i, got, w)
			}
		default:
			t.Fatalf("event %d missing", i)
		}
	}
	if len(events) != 0 {
		t.Fatalf("unexpected extra event %+v", <-events)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("quit key returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit key did not quit")
	}
	if got := <-events; got != session.QuitEvent() {
		t.Fatalf("quit event=%+v", got)
	}
}

func TestModel_SlowerRateFloorsAtOne(t *testing.T) {
	events := make(chan session.Event, 1)
	m := initialModel(nil, events)
	v := sampleView()
	v.TickRate = 3
	next, _ := m.Update(frameMsg(v))
	m = next.(model)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("-")})
	if got := <-events; got != session.TickRateEvent(1) {
		t.Fatalf("event=%+v want rate 1", got)
	}
}

func TestModel_FasterRateCapped(t *testing.T) {
	events := make(chan session.Event, 1)
	m := initialModel(nil, events)
	v := sampleView()
	v.TickRate = session.MaxTickRate - 2
	next, _ := m.Update(frameMsg(v))
	m = next.(model)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	if got := <-events; got != session.TickRateEvent(session.MaxTickRate) {
		t.Fatalf("event=%+v want rate %d", got, session.MaxTickRate)
	}
}

func TestWaitForFrame_ClosedChannelEndsProgram(t *testing.T) {
	frames := make(chan session.View)
	close(frames)
	if _, ok := waitForFrame(frames)().(playDoneMsg); !ok {
		t.Fatalf("closed frame channel should report playDoneMsg")
	}
}
