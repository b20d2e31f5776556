package wire

import "github.com/strikerapp/striker-backend/internal/engine"

// Action types accepted from clients. JOIN subscribes the connection to a
// match group; the rest are dispatched to that match's machine.
const (
	TypeJoin           = "JOIN"
	TypeBan            = "BAN"
	TypePick           = "PICK"
	TypeUndo           = "UNDO"
	TypeReset          = "RESET"
	TypeSetMode        = "SET_MODE"
	TypeForceNextPhase = "FORCE_NEXT_PHASE"
)

type ClientMessage struct {
	Type    string `json:"type"`
	MatchID string `json:"matchId,omitempty"`
	StageID string `json:"stageId,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

// ActionResult goes back to the requester only. Type echoes the action.
type ActionResult struct {
	Type  string `json:"type"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ServerMessage is the single outbound envelope. Exactly one payload field
// is set, selected by Type.
type ServerMessage struct {
	Type   string        `json:"type"` // "StateUpdate" | "ActionResult" | "GameEvent"
	State  *engine.View  `json:"state,omitempty"`
	Result *ActionResult `json:"result,omitempty"`
	Event  *engine.Event `json:"event,omitempty"`
}

func StateUpdate(v engine.View) ServerMessage {
	return ServerMessage{Type: "StateUpdate", State: &v}
}

func Result(actionType string, err error) ServerMessage {
	r := ActionResult{Type: actionType, OK: err == nil}
	if err != nil {
		r.Error = err.Error()
	}
	return ServerMessage{Type: "ActionResult", Result: &r}
}

func GameEvent(e engine.Event) ServerMessage {
	return ServerMessage{Type: "GameEvent", Event: &e}
}
