package service

import (
	"context"

	"github.com/dropfour/dropfour/game/config"
)

// GameService is the read model behind the observability surfaces (the
// REST API and the MCP tools). It exposes nothing secret: session IDs
// are not capabilities and no token ever appears in its results. All
// game mutation flows through the websocket transport.
type GameService interface {
	// Stats returns process-wide counters.
	Stats(ctx context.Context) (*Stats, error)

	// ListGames returns every live game, newest first.
	ListGames(ctx context.Context) ([]*GameInfo, error)

	// GetGame returns one game by its non-secret ID.
	GetGame(ctx context.Context, id string) (*GameInfo, error)

	// ListBoards returns the available board presets.
	ListBoards(ctx context.Context) ([]config.Info, error)
}
