// Package api provides the HTTP server for dropfour.
//
// Endpoints:
//
//	/ws              websocket endpoint carrying the game protocol
//	/healthz         liveness probe
//	GET /api/stats   session and connection counters
//	GET /api/games   token-free snapshots of every live game
//	GET /api/games/{id}
//	GET /api/boards  available board presets
//	/                static files for the browser client
//
// The REST surface is strictly read-only. Games are created, joined,
// and played exclusively over the websocket protocol, because roles are
// bound to connections and capability tokens must not transit an
// unauthenticated HTTP API.
package api
