// Package stream broadcasts dots frames to websocket clients and collects
// the commands they send back.
package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"dotlab/internal/core"
	"dotlab/internal/sims/dots"
)

const writeWait = 5 * time.Second

// Frame is one message pushed to every client.
type Frame struct {
	Type  string          `json:"type"`
	Time  float64         `json:"t"`
	Stats *dots.Stats     `json:"stats,omitempty"`
	Dots  []dots.DotView  `json:"dots,omitempty"`
	Blast *dots.Explosion `json:"blast,omitempty"`
}

// Command is a request sent by a client. Op is one of "spawn", "select",
// "clear" or "reset".
type Command struct {
	Op   string  `json:"op"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	Seed int64   `json:"seed,omitempty"`
}

// Hub fans frames out to connected clients. Publishing never blocks the
// caller: when the queue is full the frame is dropped.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	log      core.Logger

	broadcast chan []byte
	commands  chan Command
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewHub starts a hub. Call Close to disconnect every client.
func NewHub(log core.Logger) *Hub {
	if log == nil {
		log = core.NopLogger{}
	}
	h := &Hub{
		clients:   make(map[*websocket.Conn]bool),
		log:       log,
		broadcast: make(chan []byte, 16),
		commands:  make(chan Command, 64),
		done:      make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	h.wg.Add(1)
	go h.run()
	return h
}

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Commands delivers client requests. The simulation goroutine should drain
// it between steps.
func (h *Hub) Commands() <-chan Command { return h.commands }

// Publish encodes f and queues it for broadcast. It reports false when the
// frame was dropped or could not be encoded.
func (h *Hub) Publish(f Frame) bool {
	data, err := json.Marshal(f)
	if err != nil {
		h.log.Errorf("encode frame: %v", err)
		return false
	}
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.broadcast <- data:
		return true
	default:
		return false
	}
}

// ServeHTTP upgrades the request to a websocket and registers the client
// until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warningf("websocket upgrade: %v", err)
		return
	}
	h.mu.Lock()
	select {
	case <-h.done:
		h.mu.Unlock()
		conn.Close()
		return
	default:
	}
	h.clients[conn] = true
	h.wg.Add(1)
	h.mu.Unlock()
	h.log.Debugf("client %s connected", conn.RemoteAddr())

	go h.readLoop(conn)
}

func (h *Hub) readLoop(conn *websocket.Conn) {
	defer h.wg.Done()
	defer h.drop(conn)
	conn.SetReadLimit(4096)
	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debugf("client read: %v", err)
			}
			return
		}
		if err := cmd.validate(); err != nil {
			h.log.Debugf("ignoring command: %v", err)
			continue
		}
		select {
		case h.commands <- cmd:
		default:
			h.log.Warningf("command queue full, dropping %s", cmd.Op)
		}
	}
}

func (c Command) validate() error {
	switch c.Op {
	case "spawn", "select", "clear", "reset":
		return nil
	}
	return fmt.Errorf("unknown op %q", c.Op)
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if h.clients[conn] {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return
		case data := <-h.broadcast:
			h.mu.RLock()
			conns := make([]*websocket.Conn, 0, len(h.clients))
			for conn := range h.clients {
				conns = append(conns, conn)
			}
			h.mu.RUnlock()

			for _, conn := range conns {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					h.log.Debugf("client write: %v", err)
					h.drop(conn)
				}
			}
		}
	}
}

// Close disconnects every client and stops the broadcaster. It is safe to
// call more than once.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		close(h.done)
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
		h.mu.Unlock()
		h.wg.Wait()
	})
}
