package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type botService interface {
	ChooseMove(board entity.Board) (entity.Cell, error)
}

type scoreRepo interface {
	Record(ctx context.Context, sessionID string, status entity.Status) error
	Get(ctx context.Context, sessionID string) (*entity.Score, error)
	Reset(ctx context.Context, sessionID string) error
}

// State is what every boundary returns after a call.
type State struct {
	SessionID string          `json:"session_id"`
	Game      entity.Snapshot `json:"game"`
	Score     entity.Score    `json:"score"`
	View      presenter.View  `json:"view"`

	// ScoreUnavailable is set when the tally could not be read; Score is then zero.
	ScoreUnavailable bool `json:"score_unavailable,omitempty"`
}

// session serializes access to its engine; the engine itself is not goroutine safe.
type session struct {
	mu     sync.Mutex
	engine *tictactoe.Engine
}

type SessionManager struct {
	logger    *slog.Logger
	scoreRepo scoreRepo
	bot       botService

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewSessionManager(logger *slog.Logger, scoreRepo scoreRepo, bot botService) *SessionManager {
	return &SessionManager{
		logger:    logger.With("component", "session_manager"),
		scoreRepo: scoreRepo,
		bot:       bot,
		sessions:  make(map[string]*session),
	}
}

func (that *SessionManager) CreateSession(ctx context.Context) (*State, error) {
	id := uuid.NewString()

	sess := &session{engine: tictactoe.NewEngine()}

	that.mu.Lock()
	that.sessions[id] = sess
	that.mu.Unlock()

	that.logger.Debug("session created", "session", id)

	return that.buildState(ctx, id, sess.engine.Snapshot())
}

// NewGame restarts the session's game. The score is kept.
func (that *SessionManager) NewGame(ctx context.Context, sessionID string) (*State, error) {
	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.engine.StartNewGame()
	snapshot := sess.engine.Snapshot()
	sess.mu.Unlock()

	return that.buildState(ctx, sessionID, snapshot)
}

// MakeMove applies a move and stores the result once the game ends.
func (that *SessionManager) MakeMove(ctx context.Context, sessionID string, row, col int) (*State, error) {
	return that.play(ctx, sessionID, func(engine *tictactoe.Engine) error {
		return engine.MakeMove(row, col)
	})
}

// BotMove lets the bot play a random free cell for the current player.
func (that *SessionManager) BotMove(ctx context.Context, sessionID string) (*State, error) {
	return that.play(ctx, sessionID, func(engine *tictactoe.Engine) error {
		if engine.Status().IsTerminal() {
			return fmt.Errorf("%w: %s", apperror.ErrGameOver, engine.Status())
		}

		cell, err := that.bot.ChooseMove(engine.Board())
		if err != nil {
			return fmt.Errorf("bot failed to choose a move: %w", err)
		}

		return engine.MakeMove(cell.Row, cell.Col)
	})
}

// play runs move against the session's engine and records a finished game.
// The state is returned even when recording fails.
func (that *SessionManager) play(ctx context.Context, sessionID string, move func(*tictactoe.Engine) error) (*State, error) {
	log := that.logger.With("method", "play", "session", sessionID)

	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if err = move(sess.engine); err != nil {
		sess.mu.Unlock()
		return nil, fmt.Errorf("failed to make move: %w", err)
	}
	snapshot := sess.engine.Snapshot()
	sess.mu.Unlock()

	// the move is applied either way; a lost tally must not hide the result
	if snapshot.Status.IsTerminal() {
		log.Info("game finished", "status", snapshot.Status)

		if err = that.scoreRepo.Record(ctx, sessionID, snapshot.Status); err != nil {
			log.Error("failed to record score", "status", snapshot.Status, "error", err)
		}
	}

	state, err := that.buildState(ctx, sessionID, snapshot)
	if err != nil {
		log.Error("failed to build state", "error", err)

		return &State{
			SessionID:        sessionID,
			Game:             snapshot,
			View:             presenter.NewView(snapshot, entity.Score{}),
			ScoreUnavailable: true,
		}, nil
	}

	return state, nil
}

func (that *SessionManager) GetState(ctx context.Context, sessionID string) (*State, error) {
	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	snapshot := sess.engine.Snapshot()
	sess.mu.Unlock()

	return that.buildState(ctx, sessionID, snapshot)
}

// GetCell reads a single cell; out-of-range coordinates read as Empty.
func (that *SessionManager) GetCell(_ context.Context, sessionID string, row, col int) (entity.Mark, error) {
	sess, err := that.getSession(sessionID)
	if err != nil {
		return entity.Empty, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.engine.GetCell(row, col), nil
}

func (that *SessionManager) GetScore(ctx context.Context, sessionID string) (*entity.Score, error) {
	if _, err := that.getSession(sessionID); err != nil {
		return nil, err
	}

	score, err := that.scoreRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	return score, nil
}

func (that *SessionManager) ResetScore(ctx context.Context, sessionID string) error {
	if _, err := that.getSession(sessionID); err != nil {
		return err
	}

	if err := that.scoreRepo.Reset(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to reset score: %w", err)
	}

	return nil
}

// Subscribe attaches listener to the session's engine and returns the state
// the listener starts from: every notification it receives describes a
// change made after that state. Listeners run while the session is locked:
// they must not call back into the manager, and the returned unsubscribe must
// not be called from inside a listener.
func (that *SessionManager) Subscribe(
	ctx context.Context, sessionID string, listener tictactoe.Listener,
) (*State, func(), error) {
	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, nil, err
	}

	sess.mu.Lock()
	detach := sess.engine.Subscribe(listener)
	snapshot := sess.engine.Snapshot()
	sess.mu.Unlock()

	unsubscribe := func() {
		sess.mu.Lock()
		defer sess.mu.Unlock()

		detach()
	}

	state, err := that.buildState(ctx, sessionID, snapshot)
	if err != nil {
		unsubscribe()
		return nil, nil, err
	}

	return state, unsubscribe, nil
}

// CloseSession drops the engine and the stored score.
func (that *SessionManager) CloseSession(ctx context.Context, sessionID string) error {
	log := that.logger.With("method", "CloseSession", "session", sessionID)

	that.mu.Lock()
	_, ok := that.sessions[sessionID]
	delete(that.sessions, sessionID)
	that.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, sessionID)
	}

	if err := that.scoreRepo.Reset(ctx, sessionID); err != nil {
		log.Error("failed to reset score", "error", err)
	}

	log.Debug("session closed")

	return nil
}

func (that *SessionManager) getSession(sessionID string) (*session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	sess, ok := that.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, sessionID)
	}

	return sess, nil
}

func (that *SessionManager) buildState(ctx context.Context, sessionID string, snapshot entity.Snapshot) (*State, error) {
	score, err := that.scoreRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	return &State{
		SessionID: sessionID,
		Game:      snapshot,
		Score:     *score,
		View:      presenter.NewView(snapshot, *score),
	}, nil
}
