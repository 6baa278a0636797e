package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBufferSize = 64
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// client owns one socket. Everything written to it goes through send and the
// writer goroutine, so enqueue is safe from any goroutine and never blocks.
// Messages enqueued before goLive are held back and follow the first message.
type client struct {
	logger    *slog.Logger
	conn      *websocket.Conn
	sessionID string

	send chan []byte
	done chan struct{}
	once sync.Once

	mu   sync.Mutex
	live bool
	held [][]byte
}

func newClient(logger *slog.Logger, conn *websocket.Conn, sessionID string) *client {
	return &client{
		logger:    logger.With("session", sessionID),
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan []byte, sendBufferSize),
		done:      make(chan struct{}),
	}
}

// goLive queues first ahead of everything enqueued so far.
func (that *client) goLive(action string, payload any) {
	first, err := encode(action, payload)
	if err != nil {
		that.logger.Error("failed to encode message", "action", action, "error", err)
		that.stop()
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.push(first)
	for _, data := range that.held {
		that.push(data)
	}
	that.held = nil
	that.live = true
}

func (that *client) enqueue(action string, payload any) {
	data, err := encode(action, payload)
	if err != nil {
		that.logger.Error("failed to encode message", "action", action, "error", err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.live {
		if len(that.held) >= sendBufferSize {
			that.logger.Warn("too many held messages, dropping client", "action", action)
			that.stop()
			return
		}
		that.held = append(that.held, data)
		return
	}

	that.push(data)
}

// push must be called with mu held.
func (that *client) push(data []byte) {
	select {
	case <-that.done:
	case that.send <- data:
	default:
		that.logger.Warn("send buffer is full, dropping client")
		that.stop()
	}
}

// writer is the only goroutine that writes to conn, the close frame included.
func (that *client) writer() {
	defer that.shutdown()

	for {
		select {
		case <-that.done:
			return
		case data := <-that.send:
			if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				that.logger.Debug("failed to write message", "error", err)
				return
			}
		}
	}
}

// stop signals the writer to close the socket and returns at once.
func (that *client) stop() {
	that.once.Do(func() {
		close(that.done)
	})
}

func (that *client) shutdown() {
	that.stop()

	_ = that.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	_ = that.conn.Close()
}

func encode(action string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Message{Action: action, Payload: raw})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}
