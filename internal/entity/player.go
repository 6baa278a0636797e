package entity

// Player is a seated participant of a networked match.
type Player struct {
	ID   string `json:"id"`
	Mark Mark   `json:"mark,omitempty"`
}
