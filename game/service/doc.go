// Package service provides the read-only service layer for dropfour.
//
// GameService is the facade the REST API and the MCP tools consume. It
// snapshots live sessions into token-free GameInfo values: everything a
// dashboard or an agent needs to observe a game, and nothing that would
// grant a protocol role. Capability tokens exist only between the
// registry and the websocket handlers.
//
// The service holds no state of its own; every call reads the registry
// under the per-session locks, so results are consistent snapshots.
package service
