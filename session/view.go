package session

import (
	"time"

	"github.com/brensch/snekpath/game"
	"github.com/brensch/snekpath/planner"
)

// View is the end-of-tick snapshot handed to renderers. Every slice is a
// fresh copy; renderers may keep or modify it without affecting the game.
type View struct {
	SessionID string           `json:"session_id"`
	Tick      int              `json:"tick"`
	Strategy  planner.Strategy `json:"strategy"`
	TickRate  int              `json:"tick_rate"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Snake     []game.Point     `json:"snake"`
	Heading   game.Direction   `json:"heading"`
	Food      game.Point       `json:"food"`
	Obstacles []game.Point     `json:"obstacles"`
	Path      []game.Direction `json:"path"`
	PathCells []game.Point     `json:"path_cells"`
	Visited   []game.Point     `json:"visited,omitempty"`

	Score  int  `json:"score"`
	Length int  `json:"length"`
	Reset  bool `json:"reset"`

	Stats Stats `json:"stats"`
}

// Head returns the snake head in the view.
func (v View) Head() game.Point {
	return v.Snake[0]
}

// Stats accumulates over a session.
type Stats struct {
	Ticks        int           `json:"ticks"`
	FoodEaten    int           `json:"food_eaten"`
	Resets       int           `json:"resets"`
	Collisions   int           `json:"collisions"`
	PlanFailures int           `json:"plan_failures"`
	Starvations  int           `json:"starvations"`
	Replans      int           `json:"replans"`
	ObstacleHits int           `json:"obstacle_hits"`
	BestScore    int           `json:"best_score"`
	PlanTime     time.Duration `json:"plan_time_ns"`
}
