package service

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	ChooseMove(board entity.Board) (entity.Cell, error)
}

type botService struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewBotService(source rand.Source) BotService {
	return &botService{rand: rand.New(source)} //nolint: gosec // it's ok
}

// ChooseMove picks a random empty cell.
func (that *botService) ChooseMove(board entity.Board) (entity.Cell, error) {
	availableCells := make([]int, 0, len(board))
	for i, cell := range board {
		if cell.IsEmpty() {
			availableCells = append(availableCells, i)
		}
	}

	if len(availableCells) == 0 {
		return entity.Cell{}, ErrNoAvailableMoves
	}

	that.mu.Lock()
	chosen := availableCells[that.rand.Intn(len(availableCells))]
	that.mu.Unlock()

	return entity.Coordinates(chosen), nil
}
