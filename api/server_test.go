package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gws "github.com/gorilla/websocket"

	"github.com/dropfour/dropfour/game/config"
	"github.com/dropfour/dropfour/game/engine"
	"github.com/dropfour/dropfour/game/service"
	"github.com/dropfour/dropfour/game/session"
	"github.com/dropfour/dropfour/transport/websocket"
)

func newTestServer(t *testing.T) (*httptest.Server, *session.Registry) {
	t.Helper()
	reg, err := session.NewRegistry(engine.DefaultConfig(), websocket.Codec{})
	if err != nil {
		t.Fatalf("failed to create registry: %v", err)
	}

	svc := service.NewGameService(reg, config.NewManager(t.TempDir()))
	srv := httptest.NewServer(NewServer(svc, websocket.NewHandler(reg)))
	t.Cleanup(srv.Close)
	return srv, reg
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("GET %s: bad JSON: %v", url, err)
		}
	}
	return resp
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, srv.URL+"/healthz", &body)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if body["status"] != "healthy" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestServer_Stats(t *testing.T) {
	srv, reg := newTestServer(t)
	reg.Create()

	var stats service.Stats
	resp := getJSON(t, srv.URL+"/api/stats", &stats)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if stats.Sessions != 1 {
		t.Errorf("expected 1 session, got %+v", stats)
	}
}

func TestServer_Games(t *testing.T) {
	srv, reg := newTestServer(t)

	sess, _ := reg.Create()
	if err := sess.SubmitMove(engine.PlayerOne, 2); err != nil {
		t.Fatalf("move rejected: %v", err)
	}

	t.Run("list", func(t *testing.T) {
		var body struct {
			Count int                 `json:"count"`
			Games []*service.GameInfo `json:"games"`
		}
		getJSON(t, srv.URL+"/api/games", &body)
		if body.Count != 1 || len(body.Games) != 1 {
			t.Fatalf("expected one game, got %+v", body)
		}
		if body.Games[0].ID != sess.ID {
			t.Errorf("expected game %s, got %s", sess.ID, body.Games[0].ID)
		}
	})

	t.Run("get", func(t *testing.T) {
		var info service.GameInfo
		resp := getJSON(t, srv.URL+"/api/games/"+sess.ID, &info)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
		if info.MoveCount != 1 {
			t.Errorf("expected one move, got %+v", info)
		}
	})

	t.Run("not found", func(t *testing.T) {
		resp := getJSON(t, srv.URL+"/api/games/ffff", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})

	// Capability tokens must never transit the REST surface.
	t.Run("no tokens leak", func(t *testing.T) {
		for _, path := range []string{"/api/games", "/api/games/" + sess.ID} {
			resp, err := http.Get(srv.URL + path)
			if err != nil {
				t.Fatal(err)
			}
			raw, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				t.Fatal(err)
			}
			body := string(raw)
			if strings.Contains(body, sess.JoinToken()) || strings.Contains(body, sess.WatchToken()) {
				t.Errorf("%s leaks a capability token: %s", path, body)
			}
		}
	})
}

func TestServer_Boards(t *testing.T) {
	srv, _ := newTestServer(t)

	var boards []config.Info
	getJSON(t, srv.URL+"/api/boards", &boards)
	if len(boards) == 0 || boards[0].ID != config.DefaultBoardName {
		t.Errorf("expected the built-in board, got %+v", boards)
	}
}

func TestServer_WebSocketEndToEnd(t *testing.T) {
	srv, reg := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("websocket dial failed: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(websocket.Event{Type: websocket.EventInit}); err != nil {
		t.Fatalf("init write failed: %v", err)
	}

	var resp websocket.Event
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("init read failed: %v", err)
	}
	if resp.Type != websocket.EventInit || resp.Join == "" || resp.Watch == "" {
		t.Errorf("unexpected init response: %+v", resp)
	}
	if reg.Count() != 1 {
		t.Errorf("expected a live session, got %d", reg.Count())
	}
}
