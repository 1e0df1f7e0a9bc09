// Package config binds session and logging parameters to command-line flags.
// Every flag falls back to a SNEK_* environment variable, then to the
// built-in default.
package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/brensch/snekpath/logging"
	"github.com/brensch/snekpath/planner"
	"github.com/brensch/snekpath/session"
)

const (
	EnvStrategy  = "SNEK_STRATEGY"
	EnvTickRate  = "SNEK_TICK_RATE"
	EnvWidth     = "SNEK_WIDTH"
	EnvHeight    = "SNEK_HEIGHT"
	EnvObstacles = "SNEK_OBSTACLES"
	EnvSeed      = "SNEK_SEED"
	EnvLogLevel  = "SNEK_LOG_LEVEL"
	EnvLogFormat = "SNEK_LOG_FORMAT"
	EnvLogFile   = "SNEK_LOG_FILE"
	EnvAltScreen = "SNEK_ALT_SCREEN"
)

// BindSession registers the session flags on fs. Values already in cfg are
// the defaults; environment variables override them and flags override both.
func BindSession(fs *flag.FlagSet, cfg *session.Config) {
	cfg.Strategy = envStrategyOrDefault(EnvStrategy, cfg.Strategy)
	fs.TextVar(&cfg.Strategy, "strategy", cfg.Strategy, "Steering strategy: human, dfs, bfs or a_star")
	fs.IntVar(&cfg.TickRate, "tick-rate", EnvIntOrDefault(EnvTickRate, cfg.TickRate), "Ticks per second")
	fs.IntVar(&cfg.Width, "width", EnvIntOrDefault(EnvWidth, cfg.Width), "Grid width in cells")
	fs.IntVar(&cfg.Height, "height", EnvIntOrDefault(EnvHeight, cfg.Height), "Grid height in cells")
	fs.IntVar(&cfg.Obstacles, "obstacles", EnvIntOrDefault(EnvObstacles, cfg.Obstacles), "Number of obstacles")
	fs.Int64Var(&cfg.Seed, "seed", envInt64OrDefault(EnvSeed, cfg.Seed), "Random seed (0 seeds from the clock)")
}

// Logging holds the log flags.
type Logging struct {
	Level  string
	Format string
	File   string
}

// BindLogging registers -log-level, -log-format and -log-file on fs.
func BindLogging(fs *flag.FlagSet) *Logging {
	l := &Logging{}
	fs.StringVar(&l.Level, "log-level", EnvOrDefault(EnvLogLevel, "info"), "Log level: debug, info, warn, error")
	fs.StringVar(&l.Format, "log-format", EnvOrDefault(EnvLogFormat, logging.FormatPretty), "Log format: pretty, json, text")
	fs.StringVar(&l.File, "log-file", EnvOrDefault(EnvLogFile, ""), "Append logs to this file instead of the default output")
	return l
}

// Open builds the logger. Records go to File when set, else to fallback.
// The returned closer is never nil.
func (l *Logging) Open(fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(l.Level)
	if err != nil {
		return nil, nil, err
	}

	w := fallback
	var closer io.Closer = nopCloser{}
	if l.File != "" {
		f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	logger, err := logging.New(w, l.Format, level)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return logger, closer, nil
}

// EnvOrDefault and the typed variants below read an environment variable,
// returning defaultVal when it is unset or does not parse.
func EnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func EnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		var i int
		if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
			return i
		}
	}
	return defaultVal
}

func envInt64OrDefault(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		var i int64
		if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
			return i
		}
	}
	return defaultVal
}

func EnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func EnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func envStrategyOrDefault(key string, defaultVal planner.Strategy) planner.Strategy {
	if val := os.Getenv(key); val != "" {
		if s, err := planner.ParseStrategy(val); err == nil {
			return s
		}
	}
	return defaultVal
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
