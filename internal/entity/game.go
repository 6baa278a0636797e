package entity

// Snapshot is a read-only copy of an engine's state.
type Snapshot struct {
	Board         Board  `json:"board"`
	CurrentPlayer Mark   `json:"current_player"`
	Status        Status `json:"status"`
	WinningLine   *Line  `json:"winning_line,omitempty"`
}

func (that *Snapshot) IsPlaying() bool {
	return that.Status == StatusPlaying
}
