// Package engine implements the Connect Four rules for dropfour.
//
// The engine is a pure state machine for a single game:
//   - Drop validation (turn order, column bounds, full columns)
//   - Win detection in all four directions
//   - Draw detection on a full board
//   - An append-only move history in strict application order
//
// Core Types:
//
// Game holds one board. Player is an int-valued seat identifier
// (PlayerOne/PlayerTwo) and is what travels on the wire inside play and
// win events. Move records one accepted drop as (player, column, row).
//
// Boards:
//
// Board dimensions and the required run length come from a Config.
// DefaultConfig is the classic 7x6 board with four in a row; presets in
// the boards directory can define other variants within the bounds
// checked by Config.Validate.
//
// Turn Order:
//
// Player 1 always opens. The next seat is derived from the last recorded
// move rather than a separate turn counter, so alternation holds by
// construction even against duplicate submissions.
//
// Concurrency:
//
// A Game is not safe for concurrent use. The session layer serializes
// all access to a live game under its per-session lock.
//
// Usage:
//
//	g := engine.NewDefault()
//	row, err := g.Play(engine.PlayerOne, 3)
//	if err != nil {
//		// rejected: wrong turn, bad column, full column, or game over
//	}
//	if g.LastPlayerWon() {
//		// the move above ended the game
//	}
package engine
