// Package websocket provides the websocket transport for dropfour.
//
// The websocket package implements:
//   - The wire protocol (init/play/win/error events, one JSON object
//     per websocket message)
//   - Per-connection role dispatch: start a game, join as Player 2, or
//     watch as a spectator
//   - Non-blocking outbound queues so one slow consumer never stalls a
//     session's broadcasts
//   - Connection lifecycle: the session dies when its creator's socket
//     closes
//
// Protocol:
//
// A client's first message must be an init event. An init carrying a
// join token claims the Player 2 seat; one carrying a watch token
// attaches as a spectator and immediately receives the full move
// history as play events; an init with neither starts a new game and
// the server answers with both freshly minted tokens:
//
//	client: {"type": "init"}
//	server: {"type": "init", "join": "<token>", "watch": "<token>"}
//
// Seated players then submit {"type": "play", "column": 3}. Accepted
// moves are broadcast to every connection in the session as
// {"type": "play", "player": 1, "column": 3, "row": 0}, followed by
// {"type": "win", "player": 1} when the move ends the game. Rejections
// are unicast {"type": "error", "message": "..."} and never reach third
// parties.
//
// Connection Lifecycle:
//
//  1. Socket upgrades; the write pump goroutine starts
//  2. Exactly one init message decides the role
//  3. Players loop over inbound moves; watchers idle until close
//  4. Disconnect detaches the socket, or destroys the whole session
//     when the disconnecting socket belongs to Player 1
//
// Concurrency:
//
// Each connection runs in its own goroutine pair (reader plus write
// pump). All shared mutation happens under the session's lock inside
// the session package; this package only reads frames, queues writes,
// and translates errors into events.
package websocket
