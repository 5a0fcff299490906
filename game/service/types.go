package service

import (
	"time"

	"github.com/dropfour/dropfour/game/engine"
)

// Stats summarizes the process for health and monitoring surfaces.
type Stats struct {
	Sessions    int           `json:"sessions"`
	Connections int           `json:"connections"`
	Board       engine.Config `json:"board"`
}

// GameInfo is a token-free snapshot of one live game.
type GameInfo struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	Board       engine.Config `json:"board"`
	MoveCount   int           `json:"move_count"`
	Moves       []engine.Move `json:"moves"`
	NextPlayer  engine.Player `json:"next_player"`
	Winner      engine.Player `json:"winner,omitempty"`
	Draw        bool          `json:"draw,omitempty"`
	Over        bool          `json:"over"`
	Connections int           `json:"connections"`
}
