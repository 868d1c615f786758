package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
)

// writeWait bounds a single write to a live client.
const writeWait = 10 * time.Second

// client wraps a WebSocket connection with its own mutex for thread-safe writes.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// Hub tracks live preview connections for broadcasting.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	logger  hclog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger hclog.Logger) *Hub {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Hub{
		clients: make(map[string]*client),
		logger:  logger,
	}
}

// Add registers a connection and returns its id.
func (h *Hub) Add(conn *websocket.Conn) string {
	c := &client{id: uuid.NewString(), conn: conn}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	h.logger.Debug("live client connected", "client", c.id, "remote", conn.RemoteAddr())
	return c.id
}

// Remove forgets a connection. The caller owns closing it.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	_, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()

	if ok {
		h.logger.Debug("live client disconnected", "client", id)
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send writes a message to one client.
func (h *Hub) Send(id string, msg any) error {
	h.mu.RLock()
	c, ok := h.clients[id]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	return c.writeJSON(msg)
}

// Broadcast sends a message to all connected clients, dropping any whose
// write fails.
func (h *Hub) Broadcast(msg any) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.writeJSON(msg); err != nil {
			h.logger.Debug("dropping live client", "client", c.id, "error", err)
			h.Remove(c.id)
			_ = c.conn.Close()
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range clients {
		c.mu.Lock()
		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		c.mu.Unlock()
		_ = c.conn.Close()
	}
}
