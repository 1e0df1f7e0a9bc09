// Package session drives one game: it owns the world, asks the controller for
// a turn every tick, applies the rules, and hands an end-of-tick View to the
// renderer.
//
// A session is single-goroutine: Run (or repeated Tick calls) is the only
// code that touches the world. Input reaches it through an Event channel.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/brensch/snekpath/controller"
	"github.com/brensch/snekpath/game"
	"github.com/brensch/snekpath/planner"
	"github.com/brensch/snekpath/rules"
	"github.com/google/uuid"
)

// Reason says why Run returned.
type Reason uint8

const (
	ReasonQuit Reason = iota
	ReasonRestart
	ReasonCancelled
)

func (r Reason) String() string {
	switch r {
	case ReasonQuit:
		return "quit"
	case ReasonRestart:
		return "restart"
	case ReasonCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("Reason(%d)", uint8(r))
}

// Outcome is returned by Run. Next is the strategy requested by a restart.
type Outcome struct {
	Reason Reason
	Next   planner.Strategy
	Stats  Stats
}

type Session struct {
	ID string

	cfg   Config
	world *game.World
	ctrl  *controller.Controller
	rng   *rand.Rand
	log   *slog.Logger

	tick    int
	stats   Stats
	restart *planner.Strategy
}

// New validates cfg and builds a fresh world. Nothing is kept on failure.
func New(cfg Config, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := newRand(cfg.Seed)
	w, err := rules.NewWorld(cfg.settings(), rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return newSession(cfg, w, rng, logger), nil
}

// NewWithWorld starts a session on a prepared world, e.g. a scenario loaded
// from a test. Grid and obstacle settings in cfg are replaced by the world's.
func NewWithWorld(cfg Config, w *game.World, logger *slog.Logger) (*Session, error) {
	if w == nil || len(w.Snake.Body) == 0 {
		return nil, fmt.Errorf("%w: world has no snake", ErrInvalidConfig)
	}
	cfg.Width, cfg.Height = w.Grid.Width, w.Grid.Height
	cfg.Obstacles = len(w.Obstacles)
	if w.InitLength <= 0 {
		w.InitLength = rules.InitLength
	}
	cfg.InitLength = w.InitLength
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newSession(cfg, w.Clone(), newRand(cfg.Seed), logger), nil
}

func newSession(cfg Config, w *game.World, rng *rand.Rand, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &Session{
		ID:    id,
		cfg:   cfg,
		world: w,
		ctrl:  controller.New(cfg.Strategy),
		rng:   rng,
		log:   logger.With("session", id, "strategy", cfg.Strategy.String()),
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (s *Session) Config() Config { return s.cfg }
func (s *Session) Stats() Stats   { return s.stats }

// Tick advances the world by one step and returns the end-of-tick view.
func (s *Session) Tick() View {
	s.tick++
	s.stats.Ticks++

	dec := s.ctrl.OnTick(s.world)
	if dec.Replanned {
		s.stats.Replans++
		s.stats.PlanTime += dec.PlanTime
	}
	if dec.Reset {
		s.stats.PlanFailures++
		s.stats.Resets++
		s.log.Debug("no path to food, resetting",
			"tick", s.tick,
			"head", s.world.Snake.Head(),
			"food", s.world.Food,
			"score", s.world.Snake.Score)
		rules.Reset(s.world, s.rng)
		return s.view(true)
	}

	reset := false
	if !rules.Step(s.world, s.rng) {
		reset = true
		s.stats.Collisions++
		s.stats.Resets++
		s.log.Debug("collision, resetting", "tick", s.tick)
	}
	if rules.Eat(s.world, s.rng) {
		s.stats.FoodEaten++
	}
	if hits := rules.HitObstacles(s.world, s.rng); hits > 0 {
		s.stats.ObstacleHits += hits
		if s.world.Snake.JustReset && !reset {
			reset = true
			s.stats.Starvations++
			s.stats.Resets++
			s.log.Debug("shrunk to nothing on obstacles, resetting", "tick", s.tick)
		}
	}
	s.stats.BestScore = max(s.stats.BestScore, s.world.Snake.Score)

	return s.view(reset)
}

// View returns the current state without advancing.
func (s *Session) View() View {
	return s.view(false)
}

func (s *Session) view(reset bool) View {
	w := s.world
	snake := make([]game.Point, len(w.Snake.Body))
	copy(snake, w.Snake.Body)
	obstacles := make([]game.Point, len(w.Obstacles))
	copy(obstacles, w.Obstacles)
	path := s.ctrl.Path()

	return View{
		SessionID: s.ID,
		Tick:      s.tick,
		Strategy:  s.cfg.Strategy,
		TickRate:  s.cfg.TickRate,
		Width:     w.Grid.Width,
		Height:    w.Grid.Height,
		Snake:     snake,
		Heading:   w.Snake.Heading,
		Food:      w.Food,
		Obstacles: obstacles,
		Path:      path,
		PathCells: game.Walk(w.Snake.Head(), path),
		Visited:   s.ctrl.Visited(),
		Score:     w.Snake.Score,
		Length:    w.Snake.Length,
		Reset:     reset,
		Stats:     s.stats,
	}
}

// Run ticks at the configured rate until the context ends, a quit event
// arrives, the event channel closes, or a restart is requested. Events are
// handled between ticks; a restart takes effect at the next tick boundary.
// render is called once per tick with the end-of-tick view.
func (s *Session) Run(ctx context.Context, events <-chan Event, render func(View)) (Outcome, error) {
	if render == nil {
		render = func(View) {}
	}
	ticker := time.NewTicker(tickInterval(s.cfg.TickRate))
	defer ticker.Stop()

	s.log.Info("session started",
		"width", s.cfg.Width,
		"height", s.cfg.Height,
		"obstacles", s.cfg.Obstacles,
		"tick_rate", s.cfg.TickRate)
	render(s.View())

	for {
		select {
		case <-ctx.Done():
			s.logStopped(ReasonCancelled)
			return Outcome{Reason: ReasonCancelled, Stats: s.stats}, ctx.Err()

		case ev, ok := <-events:
			if stop := s.handle(ev, ok, ticker); stop {
				s.logStopped(ReasonQuit)
				return Outcome{Reason: ReasonQuit, Stats: s.stats}, nil
			}

		case <-ticker.C:
			// Apply everything queued before this boundary first.
			if s.drain(events, ticker) {
				s.logStopped(ReasonQuit)
				return Outcome{Reason: ReasonQuit, Stats: s.stats}, nil
			}
			if s.restart != nil {
				s.logStopped(ReasonRestart)
				return Outcome{Reason: ReasonRestart, Next: *s.restart, Stats: s.stats}, nil
			}
			render(s.Tick())
		}
	}
}

// drain handles queued events without blocking and reports whether one of
// them stops the session.
func (s *Session) drain(events <-chan Event, ticker *time.Ticker) bool {
	for {
		select {
		case ev, ok := <-events:
			if s.handle(ev, ok, ticker) {
				return true
			}
		default:
			return false
		}
	}
}

// handle applies one event. A closed channel counts as quit: the input side
// has gone away.
func (s *Session) handle(ev Event, ok bool, ticker *time.Ticker) bool {
	if !ok {
		return true
	}
	switch ev.Kind {
	case EventQuit:
		return true
	case EventRestart:
		next := ev.Strategy
		s.restart = &next
	case EventDirection:
		if !s.ctrl.Enqueue(ev.Direction) {
			s.log.Debug("direction ignored by automatic strategy", "direction", ev.Direction)
		}
	case EventTickRate:
		if !ValidTickRate(ev.TickRate) {
			s.log.Warn("ignoring out-of-range tick rate", "tick_rate", ev.TickRate, "max", MaxTickRate)
			return false
		}
		s.cfg.TickRate = ev.TickRate
		ticker.Reset(tickInterval(ev.TickRate))
		s.log.Debug("tick rate changed", "tick_rate", ev.TickRate)
	}
	return false
}

func (s *Session) logStopped(r Reason) {
	s.log.Info("session stopped",
		"reason", r.String(),
		"ticks", s.stats.Ticks,
		"food", s.stats.FoodEaten,
		"resets", s.stats.Resets,
		"best_score", s.stats.BestScore)
}

// tickInterval never returns less than a millisecond, so the ticker cannot
// be handed a zero interval.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		return time.Second
	}
	return max(time.Second/time.Duration(rate), time.Millisecond)
}
