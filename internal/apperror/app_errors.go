package apperror

import "errors"

var (
	ErrGameOver        = errors.New("game is already over")
	ErrOutOfBounds     = errors.New("cell is out of bounds")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrSessionNotFound = errors.New("session not found")
)
