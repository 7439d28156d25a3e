package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// clientConn wraps a websocket connection with a write lock, so the reader
// loop, the pinger and room broadcasts never interleave frames.
type clientConn struct {
	id      string
	rawConn *websocket.Conn
	mu      sync.Mutex
}

func (c *clientConn) ID() string { return c.id }

func (c *clientConn) write(mt int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteMessage(mt, data)
}

func (c *clientConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteJSON(v)
}

// Send delivers a private envelope to this client only.
func (c *clientConn) Send(event string, body any) error {
	env := map[string]any{"event": event}
	if body != nil {
		env["body"] = body
	}
	return c.writeJSON(env)
}

func (c *clientConn) close() { _ = c.rawConn.Close() }
