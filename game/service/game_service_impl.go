package service

import (
	"context"
	"sort"

	"github.com/dropfour/dropfour/game/config"
	"github.com/dropfour/dropfour/game/engine"
	"github.com/dropfour/dropfour/game/session"
)

// gameServiceImpl implements GameService over the live registry.
type gameServiceImpl struct {
	registry *session.Registry
	boards   *config.Manager
}

// NewGameService creates the read model over the registry and the board
// preset manager.
func NewGameService(registry *session.Registry, boards *config.Manager) GameService {
	return &gameServiceImpl{
		registry: registry,
		boards:   boards,
	}
}

func (s *gameServiceImpl) Stats(ctx context.Context) (*Stats, error) {
	conns := 0
	for _, sess := range s.registry.List() {
		conns += sess.ConnCount()
	}
	return &Stats{
		Sessions:    s.registry.Count(),
		Connections: conns,
		Board:       s.registry.Board(),
	}, nil
}

func (s *gameServiceImpl) ListGames(ctx context.Context) ([]*GameInfo, error) {
	sessions := s.registry.List()

	out := make([]*GameInfo, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, infoFromView(sess.View()))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *gameServiceImpl) GetGame(ctx context.Context, id string) (*GameInfo, error) {
	sess, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	return infoFromView(sess.View()), nil
}

func (s *gameServiceImpl) ListBoards(ctx context.Context) ([]config.Info, error) {
	return s.boards.List()
}

func infoFromView(v session.View) *GameInfo {
	return &GameInfo{
		ID:          v.ID,
		CreatedAt:   v.CreatedAt,
		Board:       v.Board,
		MoveCount:   len(v.Moves),
		Moves:       v.Moves,
		NextPlayer:  v.NextPlayer,
		Winner:      v.Winner,
		Draw:        v.Draw,
		Over:        v.Winner != engine.NoPlayer || v.Draw,
		Connections: v.Connections,
	}
}
