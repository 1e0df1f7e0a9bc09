package session

import (
	"context"
	"errors"
	"log/slog"
)

// Play runs sessions back to back. A restart event ends the current session
// and starts a fresh one with the requested strategy; sessions share nothing
// but the tick rate the user last picked. Play returns nil on quit or
// cancellation.
func Play(ctx context.Context, cfg Config, events <-chan Event, render func(View), logger *slog.Logger) error {
	for {
		s, err := New(cfg, logger)
		if err != nil {
			return err
		}
		out, err := s.Run(ctx, events, render)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		if out.Reason != ReasonRestart {
			return nil
		}
		cfg.Strategy = out.Next
		cfg.TickRate = s.Config().TickRate
	}
}
