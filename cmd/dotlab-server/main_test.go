package main

import (
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dotlab/internal/core"
	"dotlab/internal/sims/dots"
	"dotlab/internal/stream"
)

func TestLoadServerConfigPrecedence(t *testing.T) {
	env := map[string]string{"DOTLAB_ADDR": ":9000", "DOTLAB_TPS": "30", "DOTLAB_SIM": "dots"}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := loadServerConfig(fs, []string{"-sim", "scatter", "-fps", "10"}, func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("loadServerConfig: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.TPS != 30 {
		t.Fatalf("env should fill unset flags: %+v", cfg)
	}
	if cfg.Sim != "scatter" || cfg.FPS != 10 {
		t.Fatalf("flags should win over env: %+v", cfg)
	}
	if cfg.LogLevel != "INFO" || cfg.Seed != 0 {
		t.Fatalf("defaults missing: %+v", cfg)
	}
}

func TestLoadServerConfigRejectsBadValues(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	_, err := loadServerConfig(fs, []string{"-tps", "0"}, func(string) string { return "" })
	if err == nil || !strings.Contains(err.Error(), "-tps") {
		t.Fatalf("expected a -tps error, got %v", err)
	}
}

func newTestServer(t *testing.T) (*Server, chan stream.Command) {
	t.Helper()
	cfg := dots.DefaultConfig()
	cfg.Width, cfg.Height = 100, 80
	cfg.Params.Lanes = 1
	world := dots.NewWithConfig(cfg)
	hub := stream.NewHub(nil)
	t.Cleanup(func() {
		hub.Close()
		world.Close()
	})
	s := NewServer(world, hub, core.NopLogger{}, 60, 20)
	cmds := make(chan stream.Command, 4)
	s.commands = cmds
	return s, cmds
}

func TestTickAppliesCommands(t *testing.T) {
	s, cmds := newTestServer(t)
	cmds <- stream.Command{Op: "spawn", X: 50, Y: 10}
	cmds <- stream.Command{Op: "spawn", X: 20, Y: 10}
	s.tick()
	if s.world.Len() != 2 || s.world.Stats().Ticks != 1 {
		t.Fatalf("tick should apply both spawns then step: %d dots, %d ticks", s.world.Len(), s.world.Stats().Ticks)
	}
}

func TestHTTPHandlers(t *testing.T) {
	s, cmds := newTestServer(t)
	cmds <- stream.Command{Op: "spawn", X: 50, Y: 10}
	s.tick()
	srv := httptest.NewServer(s.Routes())
	defer srv.Close()

	get := func(path string) (*http.Response, []byte) {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp, body
	}

	if resp, body := get("/healthz"); resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("healthz: %d %q", resp.StatusCode, body)
	}

	_, body := get("/stats")
	var stats dots.Stats
	if err := json.Unmarshal(body, &stats); err != nil || stats.Live != 1 || stats.Ticks != 1 {
		t.Fatalf("stats: %v %+v", err, stats)
	}

	_, body = get("/snapshot")
	var frame stream.Frame
	if err := json.Unmarshal(body, &frame); err != nil || len(frame.Dots) != 1 || frame.Type != "frame" {
		t.Fatalf("snapshot: %v %+v", err, frame)
	}

	resp, body := get("/config")
	if ct := resp.Header.Get("Content-Type"); ct != "application/yaml" || !strings.Contains(string(body), "gravity:") {
		t.Fatalf("config: %s %q", ct, body)
	}
}
