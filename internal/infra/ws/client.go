package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer. A peer
	// that misses this window is considered gone, which is how abrupt
	// drops end up flipping presence.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 64 * 1024

	// Outbound frames buffered per connection before it is considered stalled.
	sendBufferSize = 64
)

//nolint:gochecknoglobals
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Cross-origin is enforced by the token handshake, not the Origin header.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one live websocket connection. deviceID is empty for user-only
// connections (dashboards) that observe but never execute.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	userID   uuid.UUID
	deviceID string
	send     chan []byte
}

// Serve upgrades an authenticated request and runs the connection's pumps.
// It blocks until the connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID uuid.UUID, deviceID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		userID:   userID,
		deviceID: deviceID,
		send:     make(chan []byte, sendBufferSize),
	}
	h.register(client)

	go client.writePump()
	client.readPump()

	return nil
}

// ctx returns the context for store writes triggered by this connection.
// Connection lifetime is independent of any single HTTP request.
func (c *Client) ctx() context.Context {
	return context.Background()
}

// sendEvent queues an event frame for this connection only.
func (c *Client) sendEvent(event string, payload any) {
	data, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		return
	}

	select {
	case c.send <- data:
	default:
	}
}

// readPump reads frames from the connection until it closes.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		// Any frame proves liveness, not just protocol pongs.
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		c.hub.handleInbound(c, data)
	}
}

// writePump writes queued frames and keepalive pings to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
