package entity

// Score tallies finished games of a session.
type Score struct {
	XWins int64 `json:"x_wins"`
	OWins int64 `json:"o_wins"`
	Draws int64 `json:"draws"`
}

// Record counts a finished game. Non-terminal statuses are ignored.
func (that *Score) Record(status Status) {
	switch status {
	case StatusXWins:
		that.XWins++
	case StatusOWins:
		that.OWins++
	case StatusDraw:
		that.Draws++
	case StatusPlaying:
	}
}
