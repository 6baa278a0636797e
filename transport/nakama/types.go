package nakama

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/presenter"
)

// Label is the searchable match label.
type Label struct {
	Open   bool   `json:"open"`
	Game   string `json:"game"`
	Status string `json:"status"`
}

type movePayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type cellChangedPayload struct {
	Row  int         `json:"row"`
	Col  int         `json:"col"`
	Mark entity.Mark `json:"mark"`
}

type playerChangedPayload struct {
	Mark entity.Mark `json:"mark"`
}

type gameEndedPayload struct {
	Status      entity.Status `json:"status"`
	WinningLine *entity.Line  `json:"winning_line"`
}

type rejectedPayload struct {
	Error string `json:"error"`
}

type statePayload struct {
	Game    entity.Snapshot `json:"game"`
	Players []entity.Player `json:"players"`
	Score   entity.Score    `json:"score"`
	View    presenter.View  `json:"view"`
}

// event is an engine notification waiting to be broadcast.
type event struct {
	opCode int64
	data   any
}
