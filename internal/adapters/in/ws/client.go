// Package ws carries the real-time channel: the handshake that turns an HTTP
// request into a registered connection, and the per-connection pumps that
// move envelopes to the peer.
package ws

import (
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/session"

	"github.com/gorilla/websocket"
)

const (
	// writeWait is how long one write to the peer may take.
	writeWait = 10 * time.Second

	// pongWait is how long the peer may stay silent before the read pump
	// declares it dead.
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// sendBuffer bounds the per-connection outbound queue. A peer that falls
	// further behind loses frames instead of blocking broadcasts.
	sendBuffer = 64
)

// Client is one live WebSocket connection implementing ports.Connection.
// Send never blocks: envelopes go through a buffered channel drained by the
// write pump, and overflow is dropped with a warning.
type Client struct {
	key  session.Key
	conn *websocket.Conn
	send chan session.Envelope
	done chan struct{}
	once sync.Once
	log  *slog.Logger
}

// NewClient wraps an upgraded connection. The caller starts the pumps.
func NewClient(key session.Key, conn *websocket.Conn, log *slog.Logger) *Client {
	return &Client{
		key:  key,
		conn: conn,
		send: make(chan session.Envelope, sendBuffer),
		done: make(chan struct{}),
		log:  log.With("component", "ws_client", "key", key.String()),
	}
}

// Key returns the role-scoped identity this connection is addressed by.
func (c *Client) Key() session.Key { return c.key }

// Send queues one envelope for delivery. Fire-and-forget: a closed or slow
// connection drops the frame rather than stalling the broadcaster.
func (c *Client) Send(envelope session.Envelope) {
	select {
	case <-c.done:
	case c.send <- envelope:
	default:
		c.log.Warn("send buffer full, dropping frame", "type", string(envelope.Type))
	}
}

// Close releases the transport. Safe to call more than once.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// WritePump drains the send queue to the peer and keeps the connection alive
// with pings. Runs in its own goroutine until Close or a write failure.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case envelope := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(envelope); err != nil {
				c.log.Debug("write failed, closing", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump consumes inbound frames until the peer goes away. The channel is
// push-only, so payloads are discarded; reading still services pongs and
// close frames. onClose runs exactly once when the pump exits.
func (c *Client) ReadPump(onClose func()) {
	defer func() {
		c.Close()
		onClose()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
