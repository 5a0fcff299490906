package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dropfour/dropfour/game/engine"
	"github.com/dropfour/dropfour/game/service"
)

// Server exposes the read-only game service over the Model Context
// Protocol. It calls the service directly; tools never see capability
// tokens, so an MCP client can observe games but not play or join them.
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server over the given game service.
func NewServer(gameService service.GameService) *Server {
	s := &Server{
		service: gameService,
	}

	s.initMCPServer()
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Drop Four",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Drop Four - MCP Interface

Drop Four is a realtime two-player Connect Four server. Players connect
over WebSocket using capability tokens; this MCP interface is a read-only
window onto the live games.

AVAILABLE TOOLS:
- list_games: List all live games with move counts and status
- get_game: Get one game's full state with a board rendering
- server_stats: Get session and connection counters
- list_boards: List the available board presets
- game_instructions: Get the rules and how to connect as a player

NOTE: Moves cannot be submitted here. Playing requires a WebSocket
connection holding a join capability token, and tokens never leave the
WebSocket that created the game.`),
	)

	// Register all tools
	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all live games, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListGames)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_game",
		Description: "Get the full state of one game, including a board rendering",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the game to retrieve (from list_games)",
				},
			},
			Required: []string{"game_id"},
		},
	}, s.handleGetGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "server_stats",
		Description: "Get session and connection counters for the server",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleServerStats)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_boards",
		Description: "List the available board presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListBoards)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the game rules and how to connect as a player or spectator",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// Tool handlers

func (s *Server) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	games, err := s.service.ListGames(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(games) == 0 {
		return mcp.NewToolResultText("No live games."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Live games: %d\n\n", len(games))
	for _, g := range games {
		fmt.Fprintf(&b, "- %s: %s, %d move(s), %d connection(s), %s\n",
			g.ID, g.Board.Name, g.MoveCount, g.Connections, describeStatus(g))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	if gameID == "" {
		return mcp.NewToolResultError("game_id is required"), nil
	}

	info, err := s.service.GetGame(ctx, gameID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Game %s (%s, created %s)\n", info.ID, info.Board.Name, info.CreatedAt.Format("15:04:05"))
	fmt.Fprintf(&b, "Status: %s\n", describeStatus(info))
	fmt.Fprintf(&b, "Moves: %d, Connections: %d\n\n", info.MoveCount, info.Connections)
	b.WriteString(renderBoard(info))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleServerStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.service.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Sessions: %d\nConnections: %d\nBoard: %s (%dx%d, connect %d)",
		stats.Sessions, stats.Connections,
		stats.Board.Name, stats.Board.Columns, stats.Board.Rows, stats.Board.WinLength)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boards, err := s.service.ListBoards(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available boards: %d\n\n", len(boards))
	for _, board := range boards {
		fmt.Fprintf(&b, "- %s: %s (%dx%d, connect %d)\n",
			board.ID, board.Name, board.Columns, board.Rows, board.WinLength)
		if board.Description != "" {
			fmt.Fprintf(&b, "  %s\n", board.Description)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `DROP FOUR - GAME RULES

Two players take turns dropping pieces into the columns of a vertical
board. A piece falls to the lowest empty cell of its column. The first
player to line up four of their own pieces in a row - horizontally,
vertically, or diagonally - wins. If the board fills with no winner,
the game is a draw. Player 1 always moves first.

CONNECTING:

Players and spectators connect over WebSocket at /ws and send one JSON
init message:

  {"type": "init"}                      start a new game as Player 1
  {"type": "init", "join": "<token>"}   take the Player 2 seat
  {"type": "init", "watch": "<token>"}  watch the game

Starting a game returns both capability tokens in the init reply. Share
the join token with your opponent and the watch token with spectators.
The game lives as long as Player 1's connection does.

PLAYING:

Players submit moves as {"type": "play", "column": <n>} with a 0-based
column index. Every accepted move is broadcast to all connections as a
play event carrying the player, column, and landing row; a winning move
is followed by a win event.

THIS MCP INTERFACE:

The tools here are read-only. Use list_games and get_game to observe
live games, and get_game's board rendering to follow positions. Moves
cannot be submitted through MCP because capability tokens never transit
any surface other than the WebSocket that created them.`

	return mcp.NewToolResultText(instructions), nil
}

// describeStatus summarizes a game for one-line listings.
func describeStatus(info *service.GameInfo) string {
	switch {
	case info.Winner != engine.NoPlayer:
		return fmt.Sprintf("won by %s", info.Winner)
	case info.Draw:
		return "drawn"
	default:
		return fmt.Sprintf("in progress, %s to move", info.NextPlayer)
	}
}

// renderBoard draws the position as text, top row first. The grid is
// rebuilt from the move history since GameInfo carries moves, not cells.
func renderBoard(info *service.GameInfo) string {
	cols, rows := info.Board.Columns, info.Board.Rows
	grid := make([][]engine.Player, cols)
	for c := range grid {
		grid[c] = make([]engine.Player, rows)
	}
	for _, m := range info.Moves {
		if m.Column >= 0 && m.Column < cols && m.Row >= 0 && m.Row < rows {
			grid[m.Column][m.Row] = m.Player
		}
	}

	var b strings.Builder
	for r := rows - 1; r >= 0; r-- {
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			switch grid[c][r] {
			case engine.PlayerOne:
				b.WriteByte('X')
			case engine.PlayerTwo:
				b.WriteByte('O')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	for c := 0; c < cols; c++ {
		if c > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", c%10)
	}
	b.WriteByte('\n')
	return b.String()
}
