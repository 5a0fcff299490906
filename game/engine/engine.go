package engine

// Game is one Connect Four board. It is a pure state machine: it knows
// nothing about connections or sessions, and it is not safe for
// concurrent use; callers serialize access (the session lock does this
// for live games).
type Game struct {
	cfg     Config
	columns [][]Player // columns[c] stacks bottom-up, len is the fill height
	moves   []Move
	winner  Player
}

// New creates a game on the given board, validating the dimensions.
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Game{
		cfg:     cfg,
		columns: make([][]Player, cfg.Columns),
	}, nil
}

// NewDefault creates a game on the classic board.
func NewDefault() *Game {
	g, err := New(DefaultConfig())
	if err != nil {
		// DefaultConfig always validates.
		panic(err)
	}
	return g
}

// Config returns the board configuration.
func (g *Game) Config() Config {
	return g.cfg
}

// Play drops a checker for player p into the given column and returns
// the row it landed in (0 is the bottom). The move is rejected when the
// game is over, when it is not p's turn, or when the column is invalid
// or full.
func (g *Game) Play(p Player, column int) (int, error) {
	if g.IsOver() {
		return 0, ErrGameOver
	}
	if p != g.NextPlayer() {
		return 0, ErrNotYourTurn
	}
	if column < 0 || column >= g.cfg.Columns {
		return 0, ErrInvalidColumn
	}
	row := len(g.columns[column])
	if row >= g.cfg.Rows {
		return 0, ErrColumnFull
	}

	g.columns[column] = append(g.columns[column], p)
	g.moves = append(g.moves, Move{Player: p, Column: column, Row: row})

	if g.connectsFrom(p, column, row) {
		g.winner = p
	}
	return row, nil
}

// NextPlayer returns the seat whose turn it is. Player 1 opens.
func (g *Game) NextPlayer() Player {
	if len(g.moves) == 0 {
		return PlayerOne
	}
	return g.moves[len(g.moves)-1].Player.Opponent()
}

// LastPlayer returns the seat that made the most recently accepted move,
// or NoPlayer before the first move. Turn alternation is enforced by
// comparing against this value, not by a separate counter.
func (g *Game) LastPlayer() Player {
	if len(g.moves) == 0 {
		return NoPlayer
	}
	return g.moves[len(g.moves)-1].Player
}

// LastPlayerWon reports whether the most recent move won the game.
func (g *Game) LastPlayerWon() bool {
	return g.winner != NoPlayer
}

// Winner returns the winning seat, or NoPlayer while the game is open
// or drawn.
func (g *Game) Winner() Player {
	return g.winner
}

// IsDraw reports whether the board filled up without a winner.
func (g *Game) IsDraw() bool {
	return g.winner == NoPlayer && len(g.moves) == g.cfg.Columns*g.cfg.Rows
}

// IsOver reports whether the game accepts no further moves.
func (g *Game) IsOver() bool {
	return g.winner != NoPlayer || g.IsDraw()
}

// Moves returns a copy of the move history in application order.
func (g *Game) Moves() []Move {
	out := make([]Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// MoveCount returns the number of accepted moves.
func (g *Game) MoveCount() int {
	return len(g.moves)
}

// Cell returns the occupant of (column, row), with row 0 at the bottom.
// Out-of-range coordinates and empty cells both return NoPlayer.
func (g *Game) Cell(column, row int) Player {
	if column < 0 || column >= g.cfg.Columns || row < 0 || row >= g.cfg.Rows {
		return NoPlayer
	}
	if row >= len(g.columns[column]) {
		return NoPlayer
	}
	return g.columns[column][row]
}

// connectsFrom reports whether the checker just placed at (column, row)
// completes a run of WinLength for player p in any direction.
func (g *Game) connectsFrom(p Player, column, row int) bool {
	dirs := [4][2]int{
		{1, 0}, // horizontal
		{0, 1}, // vertical
		{1, 1}, // diagonal /
		{1, -1}, // diagonal \
	}
	for _, d := range dirs {
		run := 1
		for _, sign := range [2]int{1, -1} {
			for step := 1; ; step++ {
				c := column + d[0]*step*sign
				r := row + d[1]*step*sign
				if g.Cell(c, r) != p {
					break
				}
				run++
			}
		}
		if run >= g.cfg.WinLength {
			return true
		}
	}
	return false
}
