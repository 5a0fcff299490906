package session

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dropfour/dropfour/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")

	// ErrSeatTaken travels verbatim to the rejected joiner.
	ErrSeatTaken = errors.New("This game already has two players.")
)

// tokenBytes is the entropy behind each capability token. 16 bytes keeps
// collisions out of reach at any realistic session count, so the
// registry does no collision handling on tokens.
const tokenBytes = 16

// Registry is the process-wide mapping from capability tokens to live
// sessions. It owns session creation and destruction. Its lock covers
// only the token maps and is independent of every session's lock, since
// lookups and teardown race across sessions.
type Registry struct {
	board engine.Config
	enc   EventEncoder

	mu      sync.RWMutex
	joins   map[string]*Session
	watches map[string]*Session
	byID    map[string]*Session
}

// NewRegistry creates a registry whose sessions all play on the given
// board. The encoder renders broadcast events for every session.
func NewRegistry(board engine.Config, enc EventEncoder) (*Registry, error) {
	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("invalid board config: %w", err)
	}
	return &Registry{
		board:   board,
		enc:     enc,
		joins:   make(map[string]*Session),
		watches: make(map[string]*Session),
		byID:    make(map[string]*Session),
	}, nil
}

// Create allocates a session with a fresh game and two new capability
// tokens, and registers both token mappings. The caller (the Player 1
// handler) is responsible for calling Destroy exactly once when its
// connection terminates.
func (r *Registry) Create() (*Session, error) {
	game, err := engine.New(r.board)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s := &Session{
		CreatedAt:  time.Now(),
		joinToken:  newToken(),
		watchToken: newToken(),
		enc:        r.enc,
		game:       game,
		conns:      make(map[Conn]struct{}),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.newSessionIDLocked()
	r.joins[s.joinToken] = s
	r.watches[s.watchToken] = s
	r.byID[s.ID] = s
	return s, nil
}

// ResolveJoin returns the session whose join token matches.
func (r *Registry) ResolveJoin(token string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.joins[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// ResolveWatch returns the session whose watch token matches.
func (r *Registry) ResolveWatch(token string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.watches[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Get returns a session by its non-secret ID. Observability only; the
// ID grants no protocol role.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Destroy evicts the session's tokens and ID unconditionally. The
// tokens become permanently invalid; they are never recycled. Repeated
// destruction of the same session cannot touch other sessions' entries.
func (r *Registry) Destroy(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.joins, s.joinToken)
	delete(r.watches, s.watchToken)
	delete(r.byID, s.ID)
}

// List returns every live session.
func (r *Registry) List() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Board returns the board configuration sessions are created with.
func (r *Registry) Board() engine.Config {
	return r.board
}

// newToken generates an unguessable URL-safe capability token.
func newToken() string {
	buf := make([]byte, tokenBytes)
	rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// newSessionIDLocked generates a short hex ID for logs and the
// observability API. IDs are not capabilities, so a small space with a
// uniqueness check is enough. Callers hold r.mu.
func (r *Registry) newSessionIDLocked() string {
	for {
		buf := make([]byte, 2)
		rand.Read(buf)
		id := hex.EncodeToString(buf)
		if _, taken := r.byID[id]; !taken {
			return id
		}
	}
}
