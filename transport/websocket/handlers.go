package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

func (that *Server) handleNewGame(ctx context.Context, c *client, _ *Message) error {
	state, err := that.sessions.NewGame(ctx, c.sessionID)
	if err != nil {
		c.enqueue(actionError, ErrorPayload{Error: "failed to start a new game"})
		return fmt.Errorf("failed to start new game: %w", err)
	}

	c.enqueue(actionGameState, state)

	return nil
}

// handleMove applies the move; the resulting events reach every subscriber
// of the session, so only rejections are answered directly.
func (that *Server) handleMove(ctx context.Context, c *client, msg *Message) error {
	var payload MovePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Row == nil || payload.Col == nil {
		c.enqueue(actionError, ErrorPayload{Error: "row and col are required"})
		return nil
	}

	_, err := that.sessions.MakeMove(ctx, c.sessionID, *payload.Row, *payload.Col)

	return that.answerMove(c, err)
}

func (that *Server) handleBotMove(ctx context.Context, c *client, _ *Message) error {
	_, err := that.sessions.BotMove(ctx, c.sessionID)

	return that.answerMove(c, err)
}

func (that *Server) answerMove(c *client, err error) error {
	if err == nil {
		return nil
	}

	if isRejection(err) {
		c.enqueue(actionError, ErrorPayload{Error: err.Error()})
		return nil
	}

	c.enqueue(actionError, ErrorPayload{Error: "failed to make a move"})

	return fmt.Errorf("failed to make move: %w", err)
}

func isRejection(err error) bool {
	return errors.Is(err, apperror.ErrOutOfBounds) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrGameOver) ||
		errors.Is(err, apperror.ErrSessionNotFound)
}

// listenerFor forwards engine notifications to the client's send queue.
func listenerFor(c *client) tictactoe.Listener {
	return tictactoe.ListenerFuncs{
		OnCellChanged: func(row, col int, mark entity.Mark) {
			c.enqueue(actionCellChanged, CellPayload{Row: row, Col: col, Mark: mark})
		},
		OnPlayerChanged: func(mark entity.Mark) {
			c.enqueue(actionPlayerChanged, PlayerPayload{Mark: mark})
		},
		OnGameEnded: func(status entity.Status, line *entity.Line) {
			c.enqueue(actionGameEnded, GameEndedPayload{Status: status, WinningLine: line})
		},
	}
}
