package websocket

import (
	"encoding/json"
	"testing"

	"github.com/dropfour/dropfour/game/engine"
)

func TestCodec_PlayKeepsZeroValues(t *testing.T) {
	payload := Codec{}.Play(engine.Move{Player: engine.PlayerOne, Column: 0, Row: 0})

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}

	// Column 0 / row 0 are legal coordinates and must not be omitted.
	for _, key := range []string{"type", "player", "column", "row"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("play event missing %q: %s", key, payload)
		}
	}
	if raw["type"] != EventPlay {
		t.Errorf("expected type %q, got %v", EventPlay, raw["type"])
	}
	if raw["column"] != float64(0) || raw["row"] != float64(0) {
		t.Errorf("zero coordinates were mangled: %s", payload)
	}
}

func TestCodec_Win(t *testing.T) {
	payload := Codec{}.Win(engine.PlayerTwo)

	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if ev.Type != EventWin || ev.Player != engine.PlayerTwo {
		t.Errorf("unexpected win event: %s", payload)
	}
}

func TestEvent_ErrorEncoding(t *testing.T) {
	payload := newErrorEvent(MsgGameNotFound).encode()

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if raw["message"] != MsgGameNotFound {
		t.Errorf("expected message %q, got %v", MsgGameNotFound, raw["message"])
	}
	if _, ok := raw["column"]; ok {
		t.Errorf("error event must not carry move fields: %s", payload)
	}
}
