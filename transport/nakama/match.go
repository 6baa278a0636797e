package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	gameName  = "tictactoe"
	tickRate  = 5
	matchFull = "match_full"

	// an accepted join that never arrives gives its seat back after this many ticks
	reservationTicks = 10 * tickRate
)

var (
	ErrNotSeated      = errors.New("player is not seated in this match")
	ErrUnknownOpCode  = errors.New("unknown op code")
	ErrInvalidPayload = errors.New("invalid payload")
)

// Match implements runtime.Match for a two-player game.
type Match struct{}

// MatchState holds the authoritative state of one match.
type MatchState struct {
	engine *tictactoe.Engine
	score  entity.Score

	players   map[string]*entity.Player // userId -> seat
	presences map[string]runtime.Presence
	reserved  map[string]reservation // accepted attempts waiting for MatchJoin

	// notifications produced by the current transition, broadcast afterwards
	pending []event
}

type reservation struct {
	mark entity.Mark
	tick int64
}

func newMatchState() *MatchState {
	s := &MatchState{
		engine:    tictactoe.NewEngine(),
		players:   make(map[string]*entity.Player),
		presences: make(map[string]runtime.Presence),
		reserved:  make(map[string]reservation),
	}

	s.engine.Subscribe(tictactoe.ListenerFuncs{
		OnCellChanged: func(row, col int, mark entity.Mark) {
			s.pending = append(s.pending, event{OpCellChanged, cellChangedPayload{Row: row, Col: col, Mark: mark}})
		},
		OnPlayerChanged: func(mark entity.Mark) {
			s.pending = append(s.pending, event{OpPlayerChanged, playerChangedPayload{Mark: mark}})
		},
		OnGameEnded: func(status entity.Status, line *entity.Line) {
			s.score.Record(status)
			s.pending = append(s.pending, event{OpGameEnded, gameEndedPayload{Status: status, WinningLine: line}})
		},
	})

	return s
}

func (m *Match) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	s := newMatchState()

	return s, tickRate, buildLabel(s)
}

// MatchJoinAttempt admits two players and reserves a mark for each one it
// accepts; a known player may always rejoin.
func (m *Match) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule,
	dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {

	s := state.(*MatchState)
	uid := presence.GetUserId()

	if _, ok := s.players[uid]; ok {
		return s, true, ""
	}

	if r, ok := s.reserved[uid]; ok {
		s.reserved[uid] = reservation{mark: r.mark, tick: tick}
		return s, true, ""
	}

	mark := freeMark(s)
	if mark == entity.Empty {
		return s, false, matchFull
	}

	s.reserved[uid] = reservation{mark: mark, tick: tick}

	return s, true, ""
}

// MatchJoin seats the first player as X and the second as O. Anyone arriving
// once both marks are taken is kicked.
func (m *Match) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule,
	dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {

	s := state.(*MatchState)

	for _, p := range presences {
		uid := p.GetUserId()
		log := logger.WithField("user_id", uid)

		if _, ok := s.players[uid]; !ok {
			mark := freeMark(s)
			if r, ok := s.reserved[uid]; ok {
				mark = r.mark
				delete(s.reserved, uid)
			}

			if mark == entity.Empty {
				log.Warn("no free seat, kicking")
				if err := dispatcher.MatchKick([]runtime.Presence{p}); err != nil {
					log.Error("failed to kick: %v", err)
				}
				continue
			}

			s.players[uid] = &entity.Player{ID: uid, Mark: mark}
			log.Info("player seated as %s", mark)
		}

		s.presences[uid] = p
		sendTo(logger, dispatcher, OpState, buildState(s), p)
	}

	_ = dispatcher.MatchLabelUpdate(buildLabel(s))

	return s
}

// MatchLeave frees the seat; the match ends once nobody is left.
func (m *Match) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule,
	dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {

	s := state.(*MatchState)

	for _, p := range presences {
		uid := p.GetUserId()
		delete(s.presences, uid)
		delete(s.players, uid)
		delete(s.reserved, uid)
	}

	if len(s.players) == 0 && len(s.reserved) == 0 {
		return nil
	}

	_ = dispatcher.MatchLabelUpdate(buildLabel(s))

	return s
}

func (m *Match) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule,
	dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {

	s := state.(*MatchState)

	for uid, r := range s.reserved {
		if tick-r.tick > reservationTicks {
			logger.WithField("user_id", uid).Debug("reservation for %s expired", r.mark)
			delete(s.reserved, uid)
		}
	}

	for _, msg := range messages {
		var err error

		switch msg.GetOpCode() {
		case OpMove:
			err = handleMove(s, msg)
		case OpNewGame:
			err = handleNewGame(s, msg)
		default:
			err = fmt.Errorf("%w: %d", ErrUnknownOpCode, msg.GetOpCode())
		}

		if err != nil {
			logger.WithField("user_id", msg.GetUserId()).Debug("message rejected: %v", err)
			sendTo(logger, dispatcher, OpRejected, rejectedPayload{Error: err.Error()}, msg)
		}

		flush(logger, dispatcher, s)

		if err == nil && msg.GetOpCode() == OpNewGame {
			broadcast(logger, dispatcher, OpState, buildState(s))
		}
	}

	_ = dispatcher.MatchLabelUpdate(buildLabel(s))

	return s
}

func (m *Match) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule,
	dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	return state
}

func (m *Match) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule,
	dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

func handleMove(s *MatchState, msg runtime.MatchData) error {
	player, ok := s.players[msg.GetUserId()]
	if !ok {
		return ErrNotSeated
	}

	var payload movePayload
	if err := json.Unmarshal(msg.GetData(), &payload); err != nil || payload.Row == nil || payload.Col == nil {
		return fmt.Errorf("%w: row and col are required", ErrInvalidPayload)
	}

	if s.engine.Status() == entity.StatusPlaying && player.Mark != s.engine.CurrentPlayer() {
		return fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, s.engine.CurrentPlayer())
	}

	return s.engine.MakeMove(*payload.Row, *payload.Col)
}

func handleNewGame(s *MatchState, msg runtime.MatchData) error {
	if _, ok := s.players[msg.GetUserId()]; !ok {
		return ErrNotSeated
	}

	s.engine.StartNewGame()

	return nil
}

// freeMark returns X unless X is seated or reserved, then O, then Empty.
func freeMark(s *MatchState) entity.Mark {
	taken := make(map[entity.Mark]bool, 2)
	for _, p := range s.players {
		taken[p.Mark] = true
	}
	for _, r := range s.reserved {
		taken[r.mark] = true
	}

	switch {
	case !taken[entity.X]:
		return entity.X
	case !taken[entity.O]:
		return entity.O
	default:
		return entity.Empty
	}
}

func buildLabel(s *MatchState) string {
	b, _ := json.Marshal(Label{
		Open:   freeMark(s) != entity.Empty,
		Game:   gameName,
		Status: string(s.engine.Status()),
	})

	return string(b)
}

func buildState(s *MatchState) statePayload {
	players := make([]entity.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, *p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Mark > players[j].Mark }) // X first

	snapshot := s.engine.Snapshot()

	return statePayload{
		Game:    snapshot,
		Players: players,
		Score:   s.score,
		View:    presenter.NewView(snapshot, s.score),
	}
}

func flush(logger runtime.Logger, dispatcher runtime.MatchDispatcher, s *MatchState) {
	for _, e := range s.pending {
		broadcast(logger, dispatcher, e.opCode, e.data)
	}

	s.pending = s.pending[:0]
}

func broadcast(logger runtime.Logger, dispatcher runtime.MatchDispatcher, opCode int64, data any) {
	sendTo(logger, dispatcher, opCode, data)
}

// sendTo sends to the given presences, or to everyone when none are given.
func sendTo(logger runtime.Logger, dispatcher runtime.MatchDispatcher, opCode int64, data any, presences ...runtime.Presence) {
	b, err := json.Marshal(data)
	if err != nil {
		logger.Error("failed to marshal op %d: %v", opCode, err)
		return
	}

	if len(presences) == 0 {
		presences = nil
	}

	if err = dispatcher.BroadcastMessage(opCode, b, presences, nil, true); err != nil {
		logger.Error("failed to broadcast op %d: %v", opCode, err)
	}
}
