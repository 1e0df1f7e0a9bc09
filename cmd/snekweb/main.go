// Command snekweb serves the browser version of snekpath. Each visitor plays
// their own game and can switch strategy or speed from the page.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brensch/snekpath/config"
	"github.com/brensch/snekpath/session"
	"github.com/brensch/snekpath/web"
)

func main() {
	cfg := session.DefaultConfig()
	config.BindSession(flag.CommandLine, &cfg)
	logFlags := config.BindLogging(flag.CommandLine)
	addr := flag.String("addr", config.EnvOrDefault("SNEK_ADDR", ":8080"), "Listen address")
	maxConns := flag.Int("max-conns", config.EnvIntOrDefault("SNEK_MAX_CONNS", web.DefaultMaxConns), "Maximum concurrent games")
	shutdownTimeout := flag.Duration("shutdown-timeout", config.EnvDurationOrDefault("SNEK_SHUTDOWN_TIMEOUT", 5*time.Second), "Grace period for open requests on shutdown")
	flag.Parse()

	logger, closer, err := logFlags.Open(os.Stderr)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	srv, err := web.NewServer(cfg, *maxConns, logger)
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		srv.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	log.Printf("snekweb listening on %s (default strategy %s, %d fps, %dx%d, %d obstacles)",
		*addr, cfg.Strategy, cfg.TickRate, cfg.Width, cfg.Height, cfg.Obstacles)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
	<-shutdownDone
}
