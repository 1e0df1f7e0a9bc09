package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/snekpath/game"
	"github.com/brensch/snekpath/session"
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellVisited
	cellPath
	cellObstacle
	cellFood
	cellBody
	cellHead
)

var glyphs = [...]string{
	cellEmpty:    "  ",
	cellVisited:  "··",
	cellPath:     "░░",
	cellObstacle: "▓▓",
	cellFood:     "()",
	cellBody:     "██",
	cellHead:     "██",
}

type styles struct {
	cells  [len(glyphs)]lipgloss.Style
	border lipgloss.Style
	status lipgloss.Style
	help   lipgloss.Style
}

func defaultStyles() styles {
	var s styles
	s.cells[cellEmpty] = lipgloss.NewStyle()
	s.cells[cellVisited] = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	s.cells[cellPath] = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	s.cells[cellObstacle] = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	s.cells[cellFood] = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	s.cells[cellBody] = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	s.cells[cellHead] = lipgloss.NewStyle().Foreground(lipgloss.Color("118"))
	s.border = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	s.status = lipgloss.NewStyle().Bold(true)
	s.help = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return s
}

// layers builds the cell grid. Later layers win: visited < path < obstacle
// < food < body < head.
func layers(v session.View) [][]cellKind {
	grid := make([][]cellKind, v.Height)
	for y := range grid {
		grid[y] = make([]cellKind, v.Width)
	}
	bounds := game.Grid{Width: v.Width, Height: v.Height}
	paint := func(k cellKind, pts ...game.Point) {
		for _, p := range pts {
			if bounds.InBounds(p) {
				grid[p.Y][p.X] = k
			}
		}
	}

	paint(cellVisited, v.Visited...)
	paint(cellPath, v.PathCells...)
	paint(cellObstacle, v.Obstacles...)
	paint(cellFood, v.Food)
	if len(v.Snake) > 0 {
		paint(cellBody, v.Snake[1:]...)
		paint(cellHead, v.Snake[0])
	}
	return grid
}

func renderBoard(v session.View, st styles) string {
	var b strings.Builder
	for y, row := range layers(v) {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, k := range row {
			b.WriteString(st.cells[k].Render(glyphs[k]))
		}
	}
	return st.border.Render(b.String())
}

func statusLine(v session.View) string {
	return fmt.Sprintf("%-6s score %-4d length %-4d tick %-6d %d fps",
		v.Strategy, v.Score, v.Length, v.Tick, v.TickRate)
}

const helpText = "arrows: steer (human)  1-4: human/dfs/bfs/a*  +/-: speed  q: quit"
