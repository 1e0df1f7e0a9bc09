package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/brensch/snekpath/planner"
	"github.com/brensch/snekpath/session"
)

func TestBindSession_Precedence(t *testing.T) {
	t.Setenv(EnvStrategy, "bfs")
	t.Setenv(EnvWidth, "12")
	t.Setenv(EnvHeight, "not-a-number")
	t.Setenv(EnvSeed, "99")

	cfg := session.DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	BindSession(fs, &cfg)

	if err := fs.Parse([]string{"-width", "15", "-obstacles", "3"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Strategy != planner.BreadthFirst {
		t.Fatalf("strategy=%v want=bfs (env)", cfg.Strategy)
	}
	if cfg.Width != 15 {
		t.Fatalf("width=%d want=15 (flag beats env)", cfg.Width)
	}
	if cfg.Height != 20 {
		t.Fatalf("height=%d want=20 (bad env ignored)", cfg.Height)
	}
	if cfg.Obstacles != 3 || cfg.Seed != 99 || cfg.TickRate != 30 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestBindSession_StrategyFlag(t *testing.T) {
	cfg := session.DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	BindSession(fs, &cfg)

	if err := fs.Parse([]string{"-strategy", "A*"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Strategy != planner.AStarSearch {
		t.Fatalf("strategy=%v want=a_star", cfg.Strategy)
	}

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	BindSession(fs, &cfg)
	if err := fs.Parse([]string{"-strategy", "greedy"}); err == nil {
		t.Fatalf("expected parse error for unknown strategy")
	}
}

func TestLogging_OpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snek.log")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	l := BindLogging(fs)
	if err := fs.Parse([]string{"-log-file", path, "-log-format", "text", "-log-level", "debug"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	logger, closer, err := l.Open(io.Discard)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger.Debug("replanned", "len", 4)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "msg=replanned") {
		t.Fatalf("log file=%q", b)
	}
}

func TestLogging_OpenRejectsBadLevel(t *testing.T) {
	l := &Logging{Level: "chatty", Format: "pretty"}
	if _, _, err := l.Open(io.Discard); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEnvBoolOrDefault(t *testing.T) {
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"", false, false},
		{"1", false, true},
		{"true", false, true},
		{"yes", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
	}
	for _, tc := range cases {
		t.Setenv(EnvAltScreen, tc.val)
		if got := EnvBoolOrDefault(EnvAltScreen, tc.def); got != tc.want {
			t.Fatalf("%s=%q default=%v: got=%v want=%v", EnvAltScreen, tc.val, tc.def, got, tc.want)
		}
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SNEK_TEST_DUR", "250ms")
	t.Setenv("SNEK_TEST_BOOL", "yes")
	if got := EnvDurationOrDefault("SNEK_TEST_DUR", time.Second); got != 250*time.Millisecond {
		t.Fatalf("duration=%v", got)
	}
	if got := EnvDurationOrDefault("SNEK_TEST_MISSING", time.Second); got != time.Second {
		t.Fatalf("duration default=%v", got)
	}
	if !EnvBoolOrDefault("SNEK_TEST_BOOL", false) {
		t.Fatalf("bool=false want=true")
	}
	if EnvOrDefault("SNEK_TEST_MISSING", "x") != "x" {
		t.Fatalf("string default")
	}
}
