// Package tictactoe owns the rules of a single tic-tac-toe game: the board,
// turn order and terminal detection. Engines are not safe for concurrent
// use; callers serialize access.
package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type Engine struct {
	board         entity.Board
	currentPlayer entity.Mark
	status        entity.Status
	winningLine   *entity.Line

	listeners []*subscription
}

// NewEngine returns an engine ready for the first move. No notification is sent.
func NewEngine() *Engine {
	return &Engine{
		currentPlayer: entity.X,
		status:        entity.StatusPlaying,
	}
}

// StartNewGame - clears the board and gives the first move to X.
func (that *Engine) StartNewGame() {
	that.board = entity.Board{}
	that.currentPlayer = entity.X
	that.status = entity.StatusPlaying
	that.winningLine = nil

	that.notifyPlayerChanged(that.currentPlayer)
}

// MakeMove - places the current player's mark at row, col.
// Rejected moves return apperror.ErrGameOver, apperror.ErrOutOfBounds or
// apperror.ErrCellOccupied and leave the state untouched.
func (that *Engine) MakeMove(row, col int) error {
	if err := that.validateMove(row, col); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	mark := that.currentPlayer
	that.board[entity.Index(row, col)] = mark
	that.notifyCellChanged(row, col, mark)

	that.updateGameStatus()

	if that.status == entity.StatusPlaying {
		that.currentPlayer = mark.Opponent()
		that.notifyPlayerChanged(that.currentPlayer)
	}

	return nil
}

// GetCell returns the mark at row, col, or Empty when out of range.
func (that *Engine) GetCell(row, col int) entity.Mark {
	if !entity.InBounds(row, col) {
		return entity.Empty
	}
	return that.board[entity.Index(row, col)]
}

func (that *Engine) CurrentPlayer() entity.Mark {
	return that.currentPlayer
}

func (that *Engine) Status() entity.Status {
	return that.status
}

// WinningLine returns the line that decided the game, if any.
func (that *Engine) WinningLine() (entity.Line, bool) {
	if that.winningLine == nil {
		return entity.Line{}, false
	}
	return *that.winningLine, true
}

func (that *Engine) Board() entity.Board {
	return that.board
}

func (that *Engine) Snapshot() entity.Snapshot {
	snapshot := entity.Snapshot{
		Board:         that.board,
		CurrentPlayer: that.currentPlayer,
		Status:        that.status,
	}

	if line, ok := that.WinningLine(); ok {
		snapshot.WinningLine = &line
	}

	return snapshot
}
