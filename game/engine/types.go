package engine

import (
	"errors"
	"fmt"
)

// Player identifies one of the two seats at the board.
type Player int

const (
	NoPlayer  Player = 0
	PlayerOne Player = 1
	PlayerTwo Player = 2
)

// Opponent returns the other seat. NoPlayer maps to NoPlayer.
func (p Player) Opponent() Player {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	}
	return NoPlayer
}

// String returns a human-readable seat name for logs.
func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "player 1"
	case PlayerTwo:
		return "player 2"
	}
	return "nobody"
}

// Board dimension limits enforced by Config.Validate.
const (
	MinColumns   = 4
	MaxColumns   = 16
	MinRows      = 4
	MaxRows      = 16
	MinWinLength = 3
)

// Move is one accepted drop. The move history is append-only and entries
// are never mutated after being recorded.
type Move struct {
	Player Player `json:"player"`
	Column int    `json:"column"`
	Row    int    `json:"row"`
}

// Config describes a board variant, typically loaded from a JSON preset.
type Config struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	WinLength   int    `json:"win_length"`
}

// DefaultConfig returns the classic 7x6, connect-four board.
func DefaultConfig() Config {
	return Config{
		Name:      "classic",
		Columns:   7,
		Rows:      6,
		WinLength: 4,
	}
}

// Validate checks that the board dimensions are playable.
func (c Config) Validate() error {
	if c.Columns < MinColumns || c.Columns > MaxColumns {
		return fmt.Errorf("columns must be between %d and %d, got %d", MinColumns, MaxColumns, c.Columns)
	}
	if c.Rows < MinRows || c.Rows > MaxRows {
		return fmt.Errorf("rows must be between %d and %d, got %d", MinRows, MaxRows, c.Rows)
	}
	if c.WinLength < MinWinLength {
		return fmt.Errorf("win length must be at least %d, got %d", MinWinLength, c.WinLength)
	}
	if c.WinLength > c.Columns && c.WinLength > c.Rows {
		return fmt.Errorf("win length %d cannot fit on a %dx%d board", c.WinLength, c.Columns, c.Rows)
	}
	return nil
}

// Rejection errors returned by Game.Play. The texts travel verbatim to
// clients inside error events, so they are full sentences.
var (
	ErrNotYourTurn   = errors.New("It isn't your turn.")
	ErrInvalidColumn = errors.New("This column does not exist.")
	ErrColumnFull    = errors.New("This column is full.")
	ErrGameOver      = errors.New("The game is already over.")
)
