package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dropfour/dropfour/game/engine"
	"github.com/dropfour/dropfour/game/session"
)

// Handler upgrades incoming sockets and drives the per-connection
// protocol: one init message decides the role (start a game, join as
// Player 2, or watch), then the connection stays in that role until the
// socket closes.
type Handler struct {
	registry *session.Registry
}

// NewHandler creates a websocket handler over the given registry.
func NewHandler(registry *session.Registry) *Handler {
	return &Handler{registry: registry}
}

// ServeWS upgrades the request and runs the connection protocol in the
// request's goroutine. A second goroutine pumps outbound messages.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := newClient(conn)
	go client.writePump()
	h.handle(client)
}

// handle reads exactly one init message and dispatches the role. A
// malformed or missing init is a protocol violation: the connection is
// closed with no response guaranteed.
func (h *Handler) handle(c *Client) {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	_, raw, err := c.conn.ReadMessage()
	if err != nil {
		return
	}

	var init Event
	if err := json.Unmarshal(raw, &init); err != nil || init.Type != EventInit {
		log.Printf("conn %s: protocol violation on init, closing", c.id)
		return
	}

	// Join takes precedence over watch; only the absence of both starts
	// a new game. A watch token never falls through to starting one.
	switch {
	case init.Join != "":
		h.join(c, init.Join)
	case init.Watch != "":
		h.watch(c, init.Watch)
	default:
		h.start(c)
	}
}

// start creates a session owned by this connection, which becomes
// Player 1. The session and both its tokens die with this connection,
// on every exit path, no matter who else is still attached.
func (h *Handler) start(c *Client) {
	sess, err := h.registry.Create()
	if err != nil {
		log.Printf("conn %s: session creation failed: %v", c.id, err)
		c.sendEvent(newErrorEvent("failed to create game"))
		return
	}
	defer h.registry.Destroy(sess)

	sess.Attach(c)
	defer sess.Detach(c)

	c.sendEvent(newInitEvent(sess.JoinToken(), sess.WatchToken()))
	log.Printf("conn %s: created session %s as player 1", c.id, sess.ID)

	h.playLoop(c, sess, engine.PlayerOne)
	log.Printf("conn %s: player 1 left, destroying session %s", c.id, sess.ID)
}

// join claims the Player 2 seat in the session the token resolves to.
func (h *Handler) join(c *Client, token string) {
	sess, err := h.registry.ResolveJoin(token)
	if err != nil {
		c.sendEvent(newErrorEvent(MsgGameNotFound))
		return
	}

	if err := sess.ClaimSeatTwo(c); err != nil {
		c.sendEvent(newErrorEvent(err.Error()))
		return
	}
	defer sess.Detach(c)

	log.Printf("conn %s: joined session %s as player 2", c.id, sess.ID)
	h.playLoop(c, sess, engine.PlayerTwo)
}

// watch attaches as a spectator: full history replay, then nothing but
// live broadcasts until the socket closes. Watchers never submit moves.
func (h *Handler) watch(c *Client, token string) {
	sess, err := h.registry.ResolveWatch(token)
	if err != nil {
		c.sendEvent(newErrorEvent(MsgGameNotFound))
		return
	}

	sess.AttachWatcher(c)
	defer sess.Detach(c)

	log.Printf("conn %s: watching session %s", c.id, sess.ID)
	h.idleLoop(c)
}

// playLoop handles inbound messages for a seated player. Rejected moves
// produce a unicast error event and the connection stays active; the
// session handles broadcasting accepted moves. A frame that does not
// decode as a move kills the connection.
func (h *Handler) playLoop(c *Client, sess *session.Session, seat engine.Player) {
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			logUnexpectedClose(c, err)
			return
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil || ev.Column == nil {
			log.Printf("conn %s: unreadable move frame, closing", c.id)
			return
		}

		if err := sess.SubmitMove(seat, *ev.Column); err != nil {
			c.sendEvent(newErrorEvent(err.Error()))
		}
	}
}

// idleLoop discards inbound frames until the socket closes. This is the
// watcher's only suspension point.
func (h *Handler) idleLoop(c *Client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			logUnexpectedClose(c, err)
			return
		}
	}
}

func logUnexpectedClose(c *Client, err error) {
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		log.Printf("conn %s: read error: %v", c.id, err)
	}
}
