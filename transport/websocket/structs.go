package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	actionGameState     = "game:state"
	actionCellChanged   = "cell:changed"
	actionPlayerChanged = "player:changed"
	actionGameEnded     = "game:ended"
	actionError         = "error"

	actionGameNew  = "game:new"
	actionGameMove = "game:move"
	actionGameBot  = "game:bot"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MovePayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type CellPayload struct {
	Row  int         `json:"row"`
	Col  int         `json:"col"`
	Mark entity.Mark `json:"mark"`
}

type PlayerPayload struct {
	Mark entity.Mark `json:"mark"`
}

type GameEndedPayload struct {
	Status      entity.Status `json:"status"`
	WinningLine *entity.Line  `json:"winning_line"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
