package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"dotlab/internal/material"
	"dotlab/internal/sims/dots"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, h.Clients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastReachesClients(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	a, b := dial(t, srv), dial(t, srv)
	waitClients(t, hub, 2)

	if !hub.Publish(BlastFrame(1.5, dots.Explosion{X: 3, Y: 4, Radius: 50})) {
		t.Fatal("publish should queue")
	}
	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var f Frame
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("read: %v", err)
		}
		if f.Type != "explosion" || f.Blast == nil || f.Blast.Radius != 50 || f.Time != 1.5 {
			t.Fatalf("unexpected frame %+v", f)
		}
	}
}

func TestCommandsFromClient(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	waitClients(t, hub, 1)
	for _, cmd := range []Command{{Op: "explode"}, {Op: "spawn", X: 10, Y: 12}} {
		if err := conn.WriteJSON(cmd); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	select {
	case cmd := <-hub.Commands():
		if cmd.Op != "spawn" || cmd.X != 10 || cmd.Y != 12 {
			t.Fatalf("unexpected command %+v", cmd)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("command never arrived")
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	waitClients(t, hub, 1)
	conn.Close()
	waitClients(t, hub, 0)
}

func TestCloseIsIdempotent(t *testing.T) {
	hub := NewHub(nil)
	hub.Close()
	hub.Close()
	if hub.Publish(Frame{Type: "frame"}) {
		t.Fatal("closed hub must refuse frames")
	}
}

func TestApplyAndSnapshotFrame(t *testing.T) {
	cfg := dots.DefaultConfig()
	cfg.Params.Lanes = 1
	w := dots.NewWithConfig(cfg)
	defer w.Close()

	Apply(w, Command{Op: "spawn", X: 20, Y: 20})
	Apply(w, Command{Op: "select", X: 20, Y: 20})
	f, buf := SnapshotFrame(w, nil)
	if len(f.Dots) != 1 || !f.Dots[0].Selected || f.Stats.Live != 1 || len(buf) != 1 {
		t.Fatalf("unexpected frame %+v", f)
	}
	Apply(w, Command{Op: "clear"})
	if w.Len() != 0 {
		t.Fatal("clear command should empty the arena")
	}
	w.Spawn(30, 30, material.Encode(material.Default(), 1))
	Apply(w, Command{Op: "reset", Seed: 3})
	if w.Len() != 0 {
		t.Fatal("reset without auto-spawn should leave an empty arena")
	}
}
