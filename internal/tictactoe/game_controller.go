package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// validateMove - checks if the move is valid.
func (that *Engine) validateMove(row, col int) error {
	if that.status != entity.StatusPlaying {
		return fmt.Errorf("%w: status %s", apperror.ErrGameOver, that.status)
	}

	if !entity.InBounds(row, col) {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrOutOfBounds, row, col)
	}

	if that.board[entity.Index(row, col)] != entity.Empty {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrCellOccupied, row, col)
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func (that *Engine) updateGameStatus() {
	status, line := checkGameStatus(&that.board)

	switch status {
	case entity.StatusXWins, entity.StatusOWins:
		that.status = status
		that.winningLine = &line
		notified := line
		that.notifyGameEnded(status, &notified)
	case entity.StatusDraw:
		that.status = status
		that.notifyGameEnded(status, nil)
	case entity.StatusPlaying:
	}
}

// checkGameStatus walks entity.WinLines in order and stops at the first
// complete line, so a move closing two lines reports the earlier one.
func checkGameStatus(board *entity.Board) (entity.Status, entity.Line) {
	for _, line := range entity.WinLines {
		if winner := board.Complete(line); winner != entity.Empty {
			return entity.WinStatus(winner), line
		}
	}

	if board.Full() {
		return entity.StatusDraw, entity.Line{}
	}

	return entity.StatusPlaying, entity.Line{}
}
