package session

import (
	"errors"
	"fmt"

	"github.com/brensch/snekpath/planner"
	"github.com/brensch/snekpath/rules"
)

// ErrInvalidConfig wraps every session construction failure.
var ErrInvalidConfig = errors.New("invalid session config")

// MaxTickRate bounds the tick rate from configs and rate events.
const MaxTickRate = 1000

// Config holds the parameters fixed for the life of a session.
type Config struct {
	Strategy   planner.Strategy
	TickRate   int // ticks per second
	Width      int
	Height     int
	Obstacles  int
	InitLength int
	Seed       int64 // 0 seeds from the clock
}

// DefaultConfig is a human-controlled 20×20 game at 30 ticks/s with 40 obstacles.
func DefaultConfig() Config {
	return Config{
		Strategy:   planner.Human,
		TickRate:   30,
		Width:      rules.DefaultSettings.Width,
		Height:     rules.DefaultSettings.Height,
		Obstacles:  rules.DefaultSettings.Obstacles,
		InitLength: rules.InitLength,
	}
}

func (c Config) settings() rules.Settings {
	return rules.Settings{
		Width:      c.Width,
		Height:     c.Height,
		Obstacles:  c.Obstacles,
		InitLength: c.InitLength,
	}
}

// Validate reports the first problem with the config. Errors match
// ErrInvalidConfig with errors.Is.
func (c Config) Validate() error {
	if _, err := c.Strategy.MarshalText(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !ValidTickRate(c.TickRate) {
		return fmt.Errorf("%w: tick rate must be in 1..%d, got %d", ErrInvalidConfig, MaxTickRate, c.TickRate)
	}
	if err := c.settings().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ValidTickRate reports whether rate ticks per second can drive a session.
func ValidTickRate(rate int) bool {
	return rate > 0 && rate <= MaxTickRate
}
