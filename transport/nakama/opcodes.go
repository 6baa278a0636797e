package nakama

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpMove    int64 = 1
	OpNewGame int64 = 2

	// Server -> Client events
	OpCellChanged   int64 = 101
	OpPlayerChanged int64 = 102
	OpGameEnded     int64 = 103
	OpRejected      int64 = 104 // sent to the sender only
	OpState         int64 = 105
)
