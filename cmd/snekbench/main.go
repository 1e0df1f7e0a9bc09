// Command snekbench plays many headless sessions per search strategy and
// prints how each one did. With -out it also records every tick to a Parquet
// trace.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/brensch/snekpath/config"
	"github.com/brensch/snekpath/planner"
	"github.com/brensch/snekpath/session"
	"github.com/brensch/snekpath/store"
)

func main() {
	base := session.DefaultConfig()
	strategies := flag.String("strategies", config.EnvOrDefault("SNEK_BENCH_STRATEGIES", "dfs,bfs,a_star"), "Comma-separated strategies to benchmark")
	seeds := flag.Int("seeds", config.EnvIntOrDefault("SNEK_BENCH_SEEDS", 5), "Sessions per strategy (seeds 1..n)")
	ticks := flag.Int("ticks", config.EnvIntOrDefault("SNEK_BENCH_TICKS", 2000), "Ticks per session")
	workers := flag.Int("workers", config.EnvIntOrDefault("SNEK_BENCH_WORKERS", runtime.NumCPU()), "Sessions played in parallel")
	outPath := flag.String("out", config.EnvOrDefault("SNEK_BENCH_OUT", ""), "Write every tick to this Parquet file")
	flag.IntVar(&base.Width, "width", config.EnvIntOrDefault(config.EnvWidth, base.Width), "Grid width in cells")
	flag.IntVar(&base.Height, "height", config.EnvIntOrDefault(config.EnvHeight, base.Height), "Grid height in cells")
	flag.IntVar(&base.Obstacles, "obstacles", config.EnvIntOrDefault(config.EnvObstacles, base.Obstacles), "Number of obstacles")
	logFlags := config.BindLogging(flag.CommandLine)
	flag.Parse()

	strats, err := parseStrategies(*strategies)
	if err != nil {
		log.Fatalf("Invalid -strategies: %v", err)
	}
	if *seeds <= 0 || *ticks <= 0 {
		log.Fatalf("-seeds and -ticks must be positive")
	}
	base.Strategy = strats[0]
	if err := base.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger, closer, err := logFlags.Open(os.Stderr)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bc := benchConfig{
		Base:       base,
		Strategies: strats,
		Seeds:      *seeds,
		Ticks:      *ticks,
		Workers:    *workers,
	}

	var rows chan []store.TickRow
	writerDone := make(chan struct{})
	if *outPath != "" {
		tw, err := store.NewTraceWriter(*outPath)
		if err != nil {
			log.Fatalf("Failed to open trace: %v", err)
		}
		rows = make(chan []store.TickRow, bc.Workers)
		go func() {
			traceWriterLoop(tw, rows)
			close(writerDone)
		}()
	} else {
		close(writerDone)
	}

	log.Printf("Benchmarking %s: %d seeds × %d ticks on %dx%d with %d obstacles (%d workers)",
		*strategies, bc.Seeds, bc.Ticks, base.Width, base.Height, base.Obstacles, bc.Workers)

	results, err := runBench(ctx, bc, logger, rows)
	if rows != nil {
		close(rows)
	}
	<-writerDone
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	printSummary(os.Stdout, summarize(strats, results))
}

// traceWriterLoop owns tw until in is closed.
func traceWriterLoop(tw *store.TraceWriter, in <-chan []store.TickRow) {
	failed := false
	for batch := range in {
		if failed {
			continue
		}
		if err := tw.WriteRows(batch); err != nil {
			log.Printf("Trace write failed, dropping trace: %v", err)
			tw.Abort()
			failed = true
		}
	}
	if failed {
		return
	}

	outPath, n, err := tw.Finalize()
	if err != nil {
		log.Printf("Trace finalize failed: %v", err)
		return
	}
	log.Printf("Trace written: %s (sessions=%d rows=%d)", outPath, tw.Sessions(), n)
}

func parseStrategies(s string) ([]planner.Strategy, error) {
	seen := make(map[planner.Strategy]bool)
	var out []planner.Strategy
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		strat, err := planner.ParseStrategy(part)
		if err != nil {
			return nil, err
		}
		if !strat.Automatic() {
			return nil, fmt.Errorf("%s cannot be benchmarked", strat)
		}
		if !seen[strat] {
			seen[strat] = true
			out = append(out, strat)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no strategies given")
	}
	return out, nil
}

func printSummary(w io.Writer, sums []summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "strategy\tsessions\tticks\tfood\tfood/1k\tresets\tno-path\tbest\tavg plan\t")
	for _, s := range sums {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f\t%d\t%d\t%d\t%s\t\n",
			s.Strategy, s.Sessions, s.Ticks, s.FoodEaten, s.FoodPer1k(),
			s.Resets, s.PlanFailures, s.BestScore, s.AvgPlan())
	}
	tw.Flush()
}
