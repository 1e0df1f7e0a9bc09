package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/brensch/snekpath/session"
)

// Conn wraps one websocket client. Writes are serialised; reads belong to
// ReadLoop.
type Conn struct {
	ID string

	ws     *websocket.Conn
	mu     sync.Mutex // protects ws writes and closed
	closed bool
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ID: uuid.New().String(),
		ws: ws,
	}
}

// Send serializes msg to JSON and writes it as one text frame. Sending on a
// closed connection is a no-op.
func (c *Conn) Send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Close is safe to call more than once.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.ws.Close()
}

// ReadLoop decodes control messages and forwards them as session events
// until the client disconnects or ctx ends. Malformed messages are answered
// with an error frame and skipped.
func (c *Conn) ReadLoop(ctx context.Context, events chan<- session.Event, log *slog.Logger) {
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("ws read ended", "conn", c.ID, "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Debug("bad message", "conn", c.ID, "error", err)
			_ = c.Send(ErrorMsg{Type: MsgError, Message: "malformed message"})
			continue
		}
		ev, err := msg.Event()
		if err != nil {
			_ = c.Send(ErrorMsg{Type: MsgError, Message: err.Error()})
			continue
		}

		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// ConnManager tracks live connections.
type ConnManager struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

func NewConnManager() *ConnManager {
	return &ConnManager{conns: make(map[string]*Conn)}
}

// TryAdd registers c unless limit connections are already live.
func (m *ConnManager) TryAdd(c *Conn, limit int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.conns) >= limit {
		return false
	}
	m.conns[c.ID] = c
	return true
}

func (m *ConnManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, id)
}

func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// CloseAll disconnects every client, e.g. on shutdown.
func (m *ConnManager) CloseAll() {
	m.mu.RLock()
	list := make([]*Conn, 0, len(m.conns))
	for _, c := range m.conns {
		list = append(list, c)
	}
	m.mu.RUnlock()
	for _, c := range list {
		c.Close()
	}
}
