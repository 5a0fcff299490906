package websocket

import (
	"encoding/json"

	"github.com/dropfour/dropfour/game/engine"
)

// Wire event types. One JSON object per websocket text message; the
// message boundary is the event boundary.
const (
	EventInit  = "init"
	EventPlay  = "play"
	EventWin   = "win"
	EventError = "error"
)

// MsgGameNotFound is sent when a join or watch token resolves nothing.
const MsgGameNotFound = "Game not Found"

// Event is a single protocol message, both directions. Column and Row
// are pointers so that column 0 and row 0 survive omitempty.
type Event struct {
	Type    string        `json:"type"`
	Join    string        `json:"join,omitempty"`
	Watch   string        `json:"watch,omitempty"`
	Player  engine.Player `json:"player,omitempty"`
	Column  *int          `json:"column,omitempty"`
	Row     *int          `json:"row,omitempty"`
	Message string        `json:"message,omitempty"`
}

func newInitEvent(join, watch string) Event {
	return Event{Type: EventInit, Join: join, Watch: watch}
}

func newPlayEvent(m engine.Move) Event {
	col, row := m.Column, m.Row
	return Event{Type: EventPlay, Player: m.Player, Column: &col, Row: &row}
}

func newWinEvent(p engine.Player) Event {
	return Event{Type: EventWin, Player: p}
}

func newErrorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}

// encode marshals the event. Event contains nothing json.Marshal can
// reject, so the error path reduces to an empty payload.
func (e Event) encode() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return data
}

// Codec renders session events as wire payloads. It is the
// session.EventEncoder used by every session in the registry.
type Codec struct{}

func (Codec) Play(m engine.Move) []byte {
	return newPlayEvent(m).encode()
}

func (Codec) Win(p engine.Player) []byte {
	return newWinEvent(p).encode()
}
