package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Outbound queue depth per connection. A connection that falls this
	// far behind starts missing broadcasts rather than stalling them.
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Client is one upgraded socket. It belongs to at most one session and
// implements session.Conn through its buffered outbound queue.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// TrySend queues a message without blocking. It reports false when the
// queue is full or the payload is empty; the message is then dropped,
// which is the accepted cost of keeping broadcasts non-blocking.
func (c *Client) TrySend(message []byte) bool {
	if len(message) == 0 {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// sendEvent is TrySend for locally generated unicast events.
func (c *Client) sendEvent(e Event) {
	c.TrySend(e.encode())
}

// close shuts the outbound queue exactly once. The write pump drains
// what is already queued, sends a close frame, and closes the socket.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// writePump pumps queued messages to the websocket connection and keeps
// the peer alive with periodic pings. One event per websocket message;
// events are never coalesced into a single frame.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
