// Package session provides session and capability-token management for
// dropfour.
//
// The session package implements:
//   - Thread-safe token-to-session resolution
//   - Cryptographically random join and watch tokens
//   - Session lifecycle management tied to the creator's connection
//   - Per-session serialization of game state and broadcasts
//
// Core Types:
//
// Registry is the process-wide map from capability tokens to live
// sessions. Session is one in-progress game together with every socket
// currently attached to it.
//
// Capability Tokens:
//
// Each session carries two unguessable URL-safe tokens: a join token
// granting the Player 2 seat (first claimant wins) and a watch token
// granting spectator access (reusable for the session's lifetime).
// Possession of a token is the only form of authentication. Tokens are
// never reused; once a session is destroyed its tokens fail lookup
// forever.
//
// Lifecycle:
//
// A session is created when a client starts a new game and destroyed
// when the creating (Player 1) connection terminates, regardless of who
// else is still attached. The session is deliberately not transferable
// to a surviving participant.
//
// Concurrency:
//
// The registry lock covers only the token maps. Each session has its
// own mutex serializing engine access, connection-set changes, and
// broadcasts, so a move and its fan-out are atomic with respect to
// every other task on the same session. Sessions are fully independent
// of each other.
//
// Usage:
//
//	reg, err := session.NewRegistry(engine.DefaultConfig(), codec)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err := reg.Create()
//	defer reg.Destroy(sess)
//
//	other, err := reg.ResolveJoin(token)
//	if errors.Is(err, session.ErrSessionNotFound) {
//		// dead or unknown token
//	}
package session
