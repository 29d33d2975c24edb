package runtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WireConn is the subset of *websocket.Conn the relay path needs,
// narrowed so fan-out and teardown can be exercised without a socket.
type WireConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Connection is one live participant of a party room. It belongs to
// exactly one room for its lifetime. Writes are serialized with a
// per-connection mutex because fan-out and forced close run on
// different goroutines than the greeting.
type Connection struct {
	PartyID string
	UserID  string

	ws WireConn
	mu sync.Mutex
}

func NewConnection(partyID, userID string, ws WireConn) *Connection {
	return &Connection{
		PartyID: partyID,
		UserID:  userID,
		ws:      ws,
	}
}

// Send writes a text frame with the raw payload.
func (c *Connection) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

// CloseWith sends a close frame with the given code and reason, then
// closes the underlying socket.
func (c *Connection) CloseWith(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))

	return c.ws.Close()
}
