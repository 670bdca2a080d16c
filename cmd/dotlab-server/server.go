package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"gopkg.in/yaml.v2"

	"dotlab/internal/core"
	"dotlab/internal/sims/dots"
	"dotlab/internal/stream"
)

// Server steps one world and exposes it over HTTP and websocket.
type Server struct {
	mu    sync.Mutex
	world *dots.World
	views []dots.DotView

	hub      *stream.Hub
	commands <-chan stream.Command
	log      core.Logger

	tps        int
	frameEvery int
	ticks      int
}

// NewServer wires world to hub. Explosions are broadcast as they happen;
// full frames go out fps times per second.
func NewServer(world *dots.World, hub *stream.Hub, log core.Logger, tps, fps int) *Server {
	s := &Server{
		world:      world,
		hub:        hub,
		commands:   hub.Commands(),
		log:        log,
		tps:        tps,
		frameEvery: max(1, tps/max(fps, 1)),
	}
	world.OnExplosion(func(e dots.Explosion) {
		hub.Publish(stream.BlastFrame(world.Now(), e))
	})
	return s
}

// Routes returns the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s.hub)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/config", s.handleConfig)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := s.world.Stats()
	s.mu.Unlock()
	writeJSON(w, stats)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	frame, views := stream.SnapshotFrame(s.world, nil)
	s.mu.Unlock()
	frame.Dots = views
	writeJSON(w, frame)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cfg := s.world.Config()
	s.mu.Unlock()
	out, err := yaml.Marshal(cfg)
	if err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
	}
}

// tick applies pending client commands, steps the world once and publishes
// a frame when one is due.
func (s *Server) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for drained := false; !drained; {
		select {
		case cmd := <-s.commands:
			s.log.Debugf("command %s at (%.0f, %.0f)", cmd.Op, cmd.X, cmd.Y)
			stream.Apply(s.world, cmd)
		default:
			drained = true
		}
	}
	s.world.Step()
	s.ticks++
	if s.ticks%s.frameEvery == 0 && s.hub.Clients() > 0 {
		var frame stream.Frame
		frame, s.views = stream.SnapshotFrame(s.world, s.views)
		s.hub.Publish(frame)
	}
}

// Run steps the world at the configured rate until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(max(s.tps, 1)))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.tick()
		}
	}
}
