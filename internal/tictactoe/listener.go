package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// Listener receives engine notifications synchronously, inside the call that
// caused them. For a single move CellChanged always comes before GameEnded,
// and PlayerChanged is not sent for a move that ended the game.
type Listener interface {
	CellChanged(row, col int, mark entity.Mark)
	PlayerChanged(mark entity.Mark)
	// GameEnded receives a nil line for a draw.
	GameEnded(status entity.Status, line *entity.Line)
}

// ListenerFuncs adapts optional callbacks to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnCellChanged   func(row, col int, mark entity.Mark)
	OnPlayerChanged func(mark entity.Mark)
	OnGameEnded     func(status entity.Status, line *entity.Line)
}

func (that ListenerFuncs) CellChanged(row, col int, mark entity.Mark) {
	if that.OnCellChanged != nil {
		that.OnCellChanged(row, col, mark)
	}
}

func (that ListenerFuncs) PlayerChanged(mark entity.Mark) {
	if that.OnPlayerChanged != nil {
		that.OnPlayerChanged(mark)
	}
}

func (that ListenerFuncs) GameEnded(status entity.Status, line *entity.Line) {
	if that.OnGameEnded != nil {
		that.OnGameEnded(status, line)
	}
}

type subscription struct {
	listener Listener
	active   bool
}

// Subscribe registers listener and returns a function removing it.
// Listeners are called in subscription order.
func (that *Engine) Subscribe(listener Listener) func() {
	sub := &subscription{listener: listener, active: true}
	that.listeners = append(that.listeners, sub)

	return func() {
		if !sub.active {
			return
		}
		sub.active = false

		for i, s := range that.listeners {
			if s == sub {
				that.listeners = append(that.listeners[:i:i], that.listeners[i+1:]...)
				return
			}
		}
	}
}

// each iterates over a copy so a listener may unsubscribe while being notified.
func (that *Engine) each(fn func(Listener)) {
	subs := make([]*subscription, len(that.listeners))
	copy(subs, that.listeners)

	for _, sub := range subs {
		if sub.active {
			fn(sub.listener)
		}
	}
}

func (that *Engine) notifyCellChanged(row, col int, mark entity.Mark) {
	that.each(func(l Listener) { l.CellChanged(row, col, mark) })
}

func (that *Engine) notifyPlayerChanged(mark entity.Mark) {
	that.each(func(l Listener) { l.PlayerChanged(mark) })
}

func (that *Engine) notifyGameEnded(status entity.Status, line *entity.Line) {
	that.each(func(l Listener) { l.GameEnded(status, line) })
}
