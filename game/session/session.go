package session

import (
	"sync"
	"time"

	"github.com/dropfour/dropfour/game/engine"
)

// Conn is one socket attached to a session. TrySend must never block:
// implementations queue the message or report it dropped. Delivery is
// best-effort; a recipient mid-close may simply miss the event.
type Conn interface {
	TrySend(message []byte) bool
}

// EventEncoder renders session events into wire payloads. Implemented by
// the websocket transport's codec so this package stays transport-free.
type EventEncoder interface {
	Play(move engine.Move) []byte
	Win(player engine.Player) []byte
}

// Session is one live game: the engine instance plus every socket
// currently attached to it. The session mutex serializes engine access,
// connection-set mutation, and broadcasts, so no task ever observes a
// partially applied move. Two sessions share nothing and never contend.
type Session struct {
	ID        string
	CreatedAt time.Time

	joinToken  string
	watchToken string
	enc        EventEncoder

	mu           sync.Mutex
	game         *engine.Game
	conns        map[Conn]struct{}
	seatTwoTaken bool
}

// View is a point-in-time copy of a session used by the read-only
// service layer. It carries no tokens.
type View struct {
	ID          string
	CreatedAt   time.Time
	Board       engine.Config
	Moves       []engine.Move
	NextPlayer  engine.Player
	Winner      engine.Player
	Draw        bool
	Connections int
}

// JoinToken returns the capability granting the Player 2 seat.
func (s *Session) JoinToken() string { return s.joinToken }

// WatchToken returns the capability granting spectator access.
func (s *Session) WatchToken() string { return s.watchToken }

// Attach adds a socket to the session's connection set.
func (s *Session) Attach(c Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c] = struct{}{}
}

// Detach removes a socket from the connection set. Detaching a socket
// that was never attached is a no-op.
func (s *Session) Detach(c Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c)
}

// ClaimSeatTwo attaches the socket as Player 2. Only the first claimant
// gets the seat; later claimants are rejected and left unattached.
func (s *Session) ClaimSeatTwo(c Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seatTwoTaken {
		return ErrSeatTaken
	}
	s.seatTwoTaken = true
	s.conns[c] = struct{}{}
	return nil
}

// AttachWatcher adds a spectator socket and replays the entire move
// history to it, in application order. Attach and replay happen under
// one lock acquisition, so the replay plus subsequent live events are
// indistinguishable from having been connected from the start.
func (s *Session) AttachWatcher(c Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c] = struct{}{}
	for _, m := range s.game.Moves() {
		c.TrySend(s.enc.Play(m))
	}
}

// SubmitMove validates and applies one move for the given seat. Turn
// order is enforced by comparing the submitter against the last mover.
// Accepted moves are broadcast to every attached socket (including the
// mover), followed by a win event when the move ended the game. A
// rejection mutates nothing and broadcasts nothing; the error text is
// what the caller should report to the submitting socket.
func (s *Session) SubmitMove(p engine.Player, column int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.LastPlayer() == p {
		return engine.ErrNotYourTurn
	}
	row, err := s.game.Play(p, column)
	if err != nil {
		return err
	}

	s.broadcastLocked(s.enc.Play(engine.Move{Player: p, Column: column, Row: row}))
	if s.game.LastPlayerWon() {
		s.broadcastLocked(s.enc.Win(p))
	}
	return nil
}

// broadcastLocked fans one payload out to every attached socket.
// Non-blocking per recipient: a slow or closing socket is skipped and
// never delays the others. Callers hold s.mu.
func (s *Session) broadcastLocked(payload []byte) {
	for c := range s.conns {
		c.TrySend(payload)
	}
}

// ConnCount returns the number of currently attached sockets.
func (s *Session) ConnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// View returns a consistent snapshot for observability surfaces.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		Board:       s.game.Config(),
		Moves:       s.game.Moves(),
		NextPlayer:  s.game.NextPlayer(),
		Winner:      s.game.Winner(),
		Draw:        s.game.IsDraw(),
		Connections: len(s.conns),
	}
}
