package mcp

import (
	"context"
	"strings"
	"testing"

	gomcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/dropfour/dropfour/game/config"
	"github.com/dropfour/dropfour/game/engine"
	"github.com/dropfour/dropfour/game/service"
	"github.com/dropfour/dropfour/game/session"
	"github.com/dropfour/dropfour/transport/websocket"
)

func newTestService(t *testing.T) (service.GameService, *session.Registry) {
	t.Helper()
	reg, err := session.NewRegistry(engine.DefaultConfig(), websocket.Codec{})
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}
	return service.NewGameService(reg, config.NewManager(t.TempDir())), reg
}

func callTool(name string, args map[string]interface{}) gomcp.CallToolRequest {
	return gomcp.CallToolRequest{
		Params: gomcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *gomcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected result content, got none")
	}
	text, ok := result.Content[0].(gomcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	svc, _ := newTestService(t)
	srv := NewServer(svc)

	if srv == nil {
		t.Fatal("expected server to be created")
	}
	if srv.mcpServer == nil {
		t.Error("expected MCP server to be initialized")
	}
	if srv.GetMCPServer() != srv.mcpServer {
		t.Error("GetMCPServer should return the underlying server")
	}
}

func TestServer_handleListGames(t *testing.T) {
	svc, reg := newTestService(t)
	srv := NewServer(svc)
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		result, err := srv.handleListGames(ctx, callTool("list_games", nil))
		if err != nil {
			t.Fatalf("list_games failed: %v", err)
		}
		if text := resultText(t, result); !strings.Contains(text, "No live games") {
			t.Errorf("unexpected output: %s", text)
		}
	})

	t.Run("with games", func(t *testing.T) {
		sess, _ := reg.Create()
		result, err := srv.handleListGames(ctx, callTool("list_games", nil))
		if err != nil {
			t.Fatalf("list_games failed: %v", err)
		}
		text := resultText(t, result)
		if !strings.Contains(text, sess.ID) {
			t.Errorf("expected game %s in listing, got: %s", sess.ID, text)
		}
		if !strings.Contains(text, "player 1 to move") {
			t.Errorf("expected fresh game to wait on player 1, got: %s", text)
		}
	})
}

func TestServer_handleGetGame(t *testing.T) {
	svc, reg := newTestService(t)
	srv := NewServer(svc)
	ctx := context.Background()

	sess, _ := reg.Create()
	if err := sess.SubmitMove(engine.PlayerOne, 3); err != nil {
		t.Fatalf("move rejected: %v", err)
	}

	result, err := srv.handleGetGame(ctx, callTool("get_game", map[string]interface{}{
		"game_id": sess.ID,
	}))
	if err != nil {
		t.Fatalf("get_game failed: %v", err)
	}
	text := resultText(t, result)

	if !strings.Contains(text, "Game "+sess.ID) {
		t.Errorf("expected game header, got: %s", text)
	}
	if !strings.Contains(text, "player 2 to move") {
		t.Errorf("expected player 2 on turn after one move, got: %s", text)
	}
	// The single piece sits on the bottom row of column 3.
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	bottomRow := lines[len(lines)-2]
	if !strings.Contains(bottomRow, "X") {
		t.Errorf("expected a piece on the bottom row, got: %q", bottomRow)
	}
}

func TestServer_handleGetGame_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	srv := NewServer(svc)
	ctx := context.Background()

	t.Run("missing id", func(t *testing.T) {
		result, err := srv.handleGetGame(ctx, callTool("get_game", map[string]interface{}{}))
		if err != nil {
			t.Fatalf("handler returned protocol error: %v", err)
		}
		if !result.IsError {
			t.Error("expected tool error for missing game_id")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		result, err := srv.handleGetGame(ctx, callTool("get_game", map[string]interface{}{
			"game_id": "ffff",
		}))
		if err != nil {
			t.Fatalf("handler returned protocol error: %v", err)
		}
		if !result.IsError {
			t.Error("expected tool error for unknown game")
		}
	})
}

func TestServer_handleServerStats(t *testing.T) {
	svc, reg := newTestService(t)
	srv := NewServer(svc)

	reg.Create()
	reg.Create()

	result, err := srv.handleServerStats(context.Background(), callTool("server_stats", nil))
	if err != nil {
		t.Fatalf("server_stats failed: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Sessions: 2") {
		t.Errorf("expected two sessions, got: %s", text)
	}
}

func TestServer_handleListBoards(t *testing.T) {
	svc, _ := newTestService(t)
	srv := NewServer(svc)

	result, err := srv.handleListBoards(context.Background(), callTool("list_boards", nil))
	if err != nil {
		t.Fatalf("list_boards failed: %v", err)
	}
	if text := resultText(t, result); !strings.Contains(text, config.DefaultBoardName) {
		t.Errorf("expected the built-in board, got: %s", text)
	}
}

func TestServer_handleGameInstructions(t *testing.T) {
	svc, _ := newTestService(t)
	srv := NewServer(svc)

	result, err := srv.handleGameInstructions(context.Background(), callTool("game_instructions", nil))
	if err != nil {
		t.Fatalf("game_instructions failed: %v", err)
	}
	text := resultText(t, result)

	for _, want := range []string{"join", "watch", "play", "column"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected instructions to mention %q", want)
		}
	}
}

func TestRenderBoard(t *testing.T) {
	info := &service.GameInfo{
		Board: engine.DefaultConfig(),
		Moves: []engine.Move{
			{Player: engine.PlayerOne, Column: 0, Row: 0},
			{Player: engine.PlayerTwo, Column: 0, Row: 1},
			{Player: engine.PlayerOne, Column: 6, Row: 0},
		},
	}

	out := renderBoard(info)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// 6 board rows plus the column index line.
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	if bottom := lines[5]; bottom != "X . . . . . X" {
		t.Errorf("unexpected bottom row: %q", bottom)
	}
	if second := lines[4]; second != "O . . . . . ." {
		t.Errorf("unexpected second row: %q", second)
	}
	if idx := lines[6]; idx != "0 1 2 3 4 5 6" {
		t.Errorf("unexpected index line: %q", idx)
	}
}
