package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait = 5 * time.Second
	// sendBufferSize is how many messages a subscriber may lag behind before it is dropped.
	sendBufferSize = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans messages out to every registered websocket connection. Each connection has
// its own writer goroutine, so Broadcast never waits on the network.
type Hub struct {
	mutex   sync.Mutex
	clients map[*websocket.Conn]*client
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

// Register adds conn to the hub and starts its writer. It returns false once the hub is closed.
func (h *Hub) Register(conn *websocket.Conn) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.closed {
		return false
	}
	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}
	h.clients[conn] = c
	go h.writeLoop(c)
	return true
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, ok := h.clients[conn]; ok {
		h.removeLocked(c)
	}
}

// Broadcast queues message for every connection. Subscribers whose queue is full are dropped.
func (h *Hub) Broadcast(message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, c := range h.clients {
		select {
		case c.send <- message:
		default:
			zap.L().Warn("dropping slow websocket subscriber", zap.String("remote", c.conn.RemoteAddr().String()))
			h.removeLocked(c)
		}
	}
}

func (h *Hub) Len() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Close sends a going-away frame to every subscriber and refuses new ones.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.closed = true
	closeMessage := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, c := range h.clients {
		_ = c.conn.WriteControl(websocket.CloseMessage, closeMessage, time.Now().Add(writeWait))
		h.removeLocked(c)
	}
}

func (h *Hub) writeLoop(c *client) {
	for message := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			zap.L().Warn("failed to send websocket message", zap.String("remote", c.conn.RemoteAddr().String()), zap.Error(err))
			h.Unregister(c.conn)
			return
		}
	}
}

// removeLocked must be called with h.mutex held. Closing send stops the writer.
func (h *Hub) removeLocked(c *client) {
	delete(h.clients, c.conn)
	close(c.send)
	_ = c.conn.Close()
}
