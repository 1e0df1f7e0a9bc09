// Command snekpath plays snake in the terminal. The snake is steered by the
// arrow keys or by one of the search strategies, switchable while running.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/snekpath/config"
	"github.com/brensch/snekpath/session"
)

func main() {
	cfg := session.DefaultConfig()
	config.BindSession(flag.CommandLine, &cfg)
	logFlags := config.BindLogging(flag.CommandLine)
	altScreen := flag.Bool("alt-screen", config.EnvBoolOrDefault(config.EnvAltScreen, true), "Draw in the terminal's alternate screen")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// The terminal belongs to the UI; logs only go somewhere with -log-file.
	logger, closer, err := logFlags.Open(io.Discard)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan session.View, 1)
	events := make(chan session.Event, 16)

	render := func(v session.View) {
		// Keep only the newest frame if the UI is behind.
		select {
		case <-frames:
		default:
		}
		select {
		case frames <- v:
		case <-ctx.Done():
		}
	}

	playErr := make(chan error, 1)
	go func() {
		defer close(frames)
		playErr <- session.Play(ctx, cfg, events, render, logger)
	}()

	p := tea.NewProgram(initialModel(frames, events), programOptions(ctx, *altScreen)...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		cancel()
		log.Fatalf("UI error: %v", err)
	}
	cancel()

	if err := <-playErr; err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

func programOptions(ctx context.Context, altScreen bool) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return opts
}
