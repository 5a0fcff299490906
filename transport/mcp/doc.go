// Package mcp provides the Model Context Protocol server for Drop Four.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Read-only tool definitions over the game service
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_games: List all live games with move counts and status
//   - get_game: Get one game's state with a text board rendering
//   - server_stats: Get session and connection counters
//   - list_boards: List the available board presets
//   - game_instructions: Get the rules and connection protocol
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: The /mcp endpoint on the main HTTP server
//
// Capability Model:
//
// Every tool is read-only. Games are created and played exclusively over
// WebSocket connections holding capability tokens, and those tokens never
// appear in tool results. MCP clients identify games by their short
// non-secret IDs, which grant observation through this interface only.
//
// Usage:
//
//	srv := mcp.NewServer(gameService)
//	server.ServeStdio(srv.GetMCPServer())
package mcp
