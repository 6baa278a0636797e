package entity

// Mark is the content of a single board cell.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// Opponent returns the mark that moves after that one.
func (that Mark) Opponent() Mark {
	if that == X {
		return O
	}
	return X
}

func (that Mark) IsEmpty() bool {
	return that == Empty
}

// Status is the lifecycle state of a single game.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusXWins   Status = "x_wins"
	StatusOWins   Status = "o_wins"
	StatusDraw    Status = "draw"
)

// IsTerminal reports whether no more moves are accepted in this status.
func (that Status) IsTerminal() bool {
	return that == StatusXWins || that == StatusOWins || that == StatusDraw
}

// Winner returns the mark that won, or Empty for Playing and Draw.
func (that Status) Winner() Mark {
	switch that {
	case StatusXWins:
		return X
	case StatusOWins:
		return O
	default:
		return Empty
	}
}

// WinStatus maps a winning mark to its terminal status.
func WinStatus(winner Mark) Status {
	if winner == X {
		return StatusXWins
	}
	return StatusOWins
}
