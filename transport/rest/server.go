package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type sessionUseCase interface {
	CreateSession(ctx context.Context) (*usecase.State, error)
	NewGame(ctx context.Context, sessionID string) (*usecase.State, error)
	MakeMove(ctx context.Context, sessionID string, row, col int) (*usecase.State, error)
	BotMove(ctx context.Context, sessionID string) (*usecase.State, error)
	GetState(ctx context.Context, sessionID string) (*usecase.State, error)
	GetCell(ctx context.Context, sessionID string, row, col int) (entity.Mark, error)
	GetScore(ctx context.Context, sessionID string) (*entity.Score, error)
	ResetScore(ctx context.Context, sessionID string) error
	CloseSession(ctx context.Context, sessionID string) error
}

type Server struct {
	logger *slog.Logger
	router *gin.Engine
}

func New(logger *slog.Logger, sessions sessionUseCase) *Server {
	log := logger.With("component", "rest")

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	ping := NewPingHandler()
	router.GET("/ping", ping.Ping)

	handler := NewSessionHandler(log, sessions)

	group := router.Group("/sessions")
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.DELETE("/:id", handler.Close)
	group.POST("/:id/game", handler.NewGame)
	group.POST("/:id/moves", handler.MakeMove)
	group.POST("/:id/bot", handler.BotMove)
	group.GET("/:id/cells/:row/:col", handler.GetCell)
	group.GET("/:id/score", handler.GetScore)
	group.DELETE("/:id/score", handler.ResetScore)

	return &Server{
		logger: log,
		router: router,
	}
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
