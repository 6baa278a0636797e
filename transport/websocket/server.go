package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type sessionUseCase interface {
	GetState(ctx context.Context, sessionID string) (*usecase.State, error)
	NewGame(ctx context.Context, sessionID string) (*usecase.State, error)
	MakeMove(ctx context.Context, sessionID string, row, col int) (*usecase.State, error)
	BotMove(ctx context.Context, sessionID string) (*usecase.State, error)
	Subscribe(ctx context.Context, sessionID string, listener tictactoe.Listener) (*usecase.State, func(), error)
}

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, client *client, message *Message) error

	clientsMutex sync.Mutex
	clients      map[*client]struct{}
}

func New(logger *slog.Logger, sessions sessionUseCase) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		handlers: make(map[string]func(context.Context, *client, *Message) error),
		clients:  make(map[*client]struct{}),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameMove] = server.handleMove
	server.handlers[actionGameBot] = server.handleBotMove

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server and drops every connection when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}

		that.closeAll()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection and streams the session's events to it.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	sessionID := req.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(writer, "session is required", http.StatusBadRequest)
		return
	}

	if _, err := that.sessions.GetState(req.Context(), sessionID); err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			http.Error(writer, err.Error(), http.StatusNotFound)
			return
		}

		log.Error("failed to get session", "error", err)
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)

	c := newClient(that.logger, conn, sessionID)
	that.register(c)
	defer that.unregister(c)

	go c.writer()

	state, unsubscribe, err := that.sessions.Subscribe(req.Context(), sessionID, listenerFor(c))
	if err != nil {
		log.Error("failed to subscribe", "error", err)
		return
	}
	defer unsubscribe()

	c.goLive(actionGameState, state)

	log.Info("WebSocket connection established", "session", sessionID)

	that.handleMessages(req.Context(), c)
}

// handleMessages - processes messages from the client until the socket closes.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := c.logger.With("method", "handleMessages")

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			c.enqueue(actionError, ErrorPayload{Error: "invalid message"})
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			c.enqueue(actionError, ErrorPayload{Error: "unknown action: " + message.Action})
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) register(c *client) {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	that.clients[c] = struct{}{}
}

func (that *Server) unregister(c *client) {
	that.clientsMutex.Lock()
	delete(that.clients, c)
	that.clientsMutex.Unlock()

	c.stop()
}

func (that *Server) closeAll() {
	that.clientsMutex.Lock()
	defer that.clientsMutex.Unlock()

	for c := range that.clients {
		c.stop()
	}
}
