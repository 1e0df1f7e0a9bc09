package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/brensch/snekpath/planner"
	"github.com/brensch/snekpath/session"
	"github.com/brensch/snekpath/store"
)

type benchConfig struct {
	Base       session.Config
	Strategies []planner.Strategy
	Seeds      int
	Ticks      int
	Workers    int
}

type job struct {
	strategy planner.Strategy
	seed     int64
}

// result is one finished session.
type result struct {
	Strategy  planner.Strategy
	Seed      int64
	SessionID string
	Stats     session.Stats
	Elapsed   time.Duration
}

// summary aggregates every session of one strategy.
type summary struct {
	Strategy     planner.Strategy
	Sessions     int
	Ticks        int
	FoodEaten    int
	Resets       int
	PlanFailures int
	BestScore    int
	PlanTime     time.Duration
}

func (s summary) FoodPer1k() float64 {
	if s.Ticks == 0 {
		return 0
	}
	return float64(s.FoodEaten) * 1000 / float64(s.Ticks)
}

func (s summary) AvgPlan() time.Duration {
	if s.Ticks == 0 {
		return 0
	}
	return s.PlanTime / time.Duration(s.Ticks)
}

// runBench plays Seeds sessions per strategy, Ticks ticks each, across
// Workers goroutines. When rows is non-nil every tick is sent to it; the
// caller owns draining it. Cancelling ctx stops handing out new sessions.
func runBench(ctx context.Context, bc benchConfig, logger *slog.Logger, rows chan<- []store.TickRow) ([]result, error) {
	jobs := make(chan job)
	results := make(chan result)

	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	workers := max(1, bc.Workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				r, err := playOne(bc, j, logger, rows)
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					continue
				}
				results <- r
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, strat := range bc.Strategies {
			for seed := int64(1); seed <= int64(bc.Seeds); seed++ {
				if ctx.Err() != nil {
					return
				}
				select {
				case jobs <- job{strategy: strat, seed: seed}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var out []result
	for r := range results {
		out = append(out, r)
	}
	return out, firstErr
}

func playOne(bc benchConfig, j job, logger *slog.Logger, rows chan<- []store.TickRow) (result, error) {
	cfg := bc.Base
	cfg.Strategy = j.strategy
	cfg.Seed = j.seed

	s, err := session.New(cfg, logger)
	if err != nil {
		return result{}, err
	}

	var batch []store.TickRow
	if rows != nil {
		batch = make([]store.TickRow, 0, bc.Ticks)
	}
	start := time.Now()
	for i, n := 0, bc.Ticks; i < n; i++ {
		v := s.Tick()
		if rows != nil {
			batch = append(batch, store.NewTickRow(v))
		}
	}
	elapsed := time.Since(start)
	if rows != nil {
		rows <- batch
	}

	logger.Debug("session finished",
		"strategy", j.strategy.String(),
		"seed", j.seed,
		"food", s.Stats().FoodEaten,
		"resets", s.Stats().Resets,
		"elapsed", elapsed)

	return result{
		Strategy:  j.strategy,
		Seed:      j.seed,
		SessionID: s.ID,
		Stats:     s.Stats(),
		Elapsed:   elapsed,
	}, nil
}

// summarize groups results by strategy, in the order strategies were given.
func summarize(strategies []planner.Strategy, results []result) []summary {
	byStrategy := make(map[planner.Strategy]*summary, len(strategies))
	out := make([]summary, len(strategies))
	for i, s := range strategies {
		out[i].Strategy = s
		byStrategy[s] = &out[i]
	}
	for _, r := range results {
		sum, ok := byStrategy[r.Strategy]
		if !ok {
			continue
		}
		sum.Sessions++
		sum.Ticks += r.Stats.Ticks
		sum.FoodEaten += r.Stats.FoodEaten
		sum.Resets += r.Stats.Resets
		sum.PlanFailures += r.Stats.PlanFailures
		sum.BestScore = max(sum.BestScore, r.Stats.BestScore)
		sum.PlanTime += r.Stats.PlanTime
	}
	return out
}
