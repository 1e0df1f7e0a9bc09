package planner

import (
	"fmt"
	"strings"
)

// Strategy selects how the snake is steered.
type Strategy uint8

const (
	Human Strategy = iota
	DepthFirst
	BreadthFirst
	AStarSearch
)

// Strategies lists every strategy in menu order.
var Strategies = []Strategy{Human, DepthFirst, BreadthFirst, AStarSearch}

var strategyNames = map[Strategy]string{
	Human:        "human",
	DepthFirst:   "dfs",
	BreadthFirst: "bfs",
	AStarSearch:  "a_star",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// Automatic reports whether the strategy plans on its own.
func (s Strategy) Automatic() bool {
	return s != Human
}

// Plan runs the strategy's search. Human never searches and always reports
// no path.
func (s Strategy) Plan(req Request) Result {
	switch s {
	case DepthFirst:
		return DFS(req)
	case BreadthFirst:
		return BFS(req)
	case AStarSearch:
		return AStar(req)
	default:
		return Result{}
	}
}

func (s Strategy) MarshalText() ([]byte, error) {
	if _, ok := strategyNames[s]; !ok {
		return nil, fmt.Errorf("invalid strategy %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(b []byte) error {
	parsed, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStrategy accepts the strategy names case-insensitively, plus a few
// menu spellings such as "A*".
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "human", "manual":
		return Human, nil
	case "dfs", "depth-first":
		return DepthFirst, nil
	case "bfs", "breadth-first":
		return BreadthFirst, nil
	case "a_star", "a*", "astar", "a-star":
		return AStarSearch, nil
	}
	return 0, fmt.Errorf("unknown strategy %q (want human, dfs, bfs or a_star)", name)
}
