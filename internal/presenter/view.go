// Package presenter turns engine state into the strings a UI shows.
package presenter

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// View is everything a screen needs to redraw after a notification.
type View struct {
	Status        string        `json:"status"`
	CurrentPlayer string        `json:"current_player"`
	Score         string        `json:"score"`
	Highlight     []entity.Cell `json:"highlight,omitempty"`
}

func NewView(snapshot entity.Snapshot, score entity.Score) View {
	view := View{
		Status:        StatusText(snapshot.Status),
		CurrentPlayer: CurrentPlayerText(snapshot),
		Score:         ScoreText(score),
	}

	if snapshot.WinningLine != nil {
		cells := snapshot.WinningLine.Cells()
		view.Highlight = cells[:]
	}

	return view
}

func StatusText(status entity.Status) string {
	if winner := status.Winner(); winner != entity.Empty {
		return fmt.Sprintf("Player %s Wins!", winner)
	}

	switch status {
	case entity.StatusPlaying:
		return "Make your move!"
	case entity.StatusDraw:
		return "It's a Draw!"
	default:
		return ""
	}
}

// CurrentPlayerText is blank once the game is over.
func CurrentPlayerText(snapshot entity.Snapshot) string {
	if !snapshot.IsPlaying() {
		return ""
	}
	return fmt.Sprintf("Current Player: %s", snapshot.CurrentPlayer)
}

func ScoreText(score entity.Score) string {
	return fmt.Sprintf("X: %d | O: %d | Draws: %d", score.XWins, score.OWins, score.Draws)
}
