// Package web serves a browser front end for snekpath. Every websocket client
// gets its own game: frames stream out as JSON and control messages (turns,
// strategy restarts, frame-rate changes) stream back in.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/brensch/snekpath/planner"
	"github.com/brensch/snekpath/session"
)

//go:embed static/index.html
var staticFS embed.FS

var indexTmpl = template.Must(template.ParseFS(staticFS, "static/index.html"))

// DefaultMaxConns caps concurrent games.
const DefaultMaxConns = 32

type Server struct {
	cfg      session.Config
	maxConns int
	log      *slog.Logger
	conns    *ConnManager
	upgrader websocket.Upgrader
	started  time.Time
}

// NewServer returns a server whose games start from cfg. The config is
// validated here so a bad flag fails at startup rather than per client.
func NewServer(cfg session.Config, maxConns int, logger *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		maxConns: maxConns,
		log:      logger,
		conns:    NewConnManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		started: time.Now(),
	}, nil
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/strategies", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, strategyMenu())
		})
		r.Get("/health", s.handleHealth)
	})
	r.Get("/ws", s.handleWS)
	r.Get("/", s.handleIndex)

	return r
}

// Shutdown disconnects every client; their games end as if they had quit.
func (s *Server) Shutdown() {
	s.conns.CloseAll()
}

type indexData struct {
	Strategies []StrategyInfo
	Default    string
	TickRate   int
	Width      int
	Height     int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTmpl.Execute(w, indexData{
		Strategies: strategyMenu(),
		Default:    s.cfg.Strategy.String(),
		TickRate:   s.cfg.TickRate,
		Width:      s.cfg.Width,
		Height:     s.cfg.Height,
	})
	if err != nil {
		s.log.Error("render index", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"connections": s.conns.Count(),
		"uptime":      time.Since(s.started).Round(time.Second).String(),
	})
}

// handleWS runs one game for the lifetime of the websocket. Optional query
// parameters strategy and fps override the server defaults.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.clientConfig(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade failed", "error", err)
		return
	}

	conn := NewConn(ws)
	if !s.conns.TryAdd(conn, s.maxConns) {
		_ = conn.Send(ErrorMsg{Type: MsgError, Message: "server full, try again later"})
		conn.Close()
		return
	}
	defer s.conns.Remove(conn.ID)

	log := s.log.With("conn", conn.ID)
	log.Info("client connected", "strategy", cfg.Strategy.String(), "tick_rate", cfg.TickRate)

	if err := conn.Send(WelcomeMsg{Type: MsgWelcome, ID: conn.ID, Strategies: strategyMenu()}); err != nil {
		conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan session.Event, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		render := func(v session.View) {
			if err := conn.Send(FrameMsg{Type: MsgFrame, View: v}); err != nil {
				log.Debug("frame send failed", "error", err)
				cancel()
			}
		}
		if err := session.Play(ctx, cfg, events, render, log); err != nil {
			log.Error("game ended with error", "error", err)
		}
		// Unblocks ReadLoop once the game is over.
		conn.Close()
	}()

	conn.ReadLoop(ctx, events, log)
	cancel()
	<-done
	log.Info("client disconnected")
}

func (s *Server) clientConfig(r *http.Request) (session.Config, error) {
	cfg := s.cfg
	q := r.URL.Query()
	if v := strings.TrimSpace(q.Get("strategy")); v != "" {
		strat, err := planner.ParseStrategy(v)
		if err != nil {
			return cfg, err
		}
		cfg.Strategy = strat
	}
	if v := strings.TrimSpace(q.Get("fps")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !session.ValidTickRate(n) {
			return cfg, fmt.Errorf("bad fps %q", v)
		}
		cfg.TickRate = n
	}
	return cfg, nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode json response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
