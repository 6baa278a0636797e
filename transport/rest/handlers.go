package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type SessionHandler interface {
	Create(ctx *gin.Context)
	Get(ctx *gin.Context)
	Close(ctx *gin.Context)
	NewGame(ctx *gin.Context)
	MakeMove(ctx *gin.Context)
	BotMove(ctx *gin.Context)
	GetCell(ctx *gin.Context)
	GetScore(ctx *gin.Context)
	ResetScore(ctx *gin.Context)
}

type moveRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

type cellResponse struct {
	Row  int         `json:"row"`
	Col  int         `json:"col"`
	Mark entity.Mark `json:"mark"`
}

type sessionHandler struct {
	logger   *slog.Logger
	sessions sessionUseCase
}

func NewSessionHandler(logger *slog.Logger, sessions sessionUseCase) SessionHandler {
	return &sessionHandler{
		logger:   logger,
		sessions: sessions,
	}
}

func (that *sessionHandler) Create(ctx *gin.Context) {
	state, err := that.sessions.CreateSession(ctx.Request.Context())
	if err != nil {
		that.respondError(ctx, "Create", err)
		return
	}

	ctx.JSON(http.StatusCreated, state)
}

func (that *sessionHandler) Get(ctx *gin.Context) {
	state, err := that.sessions.GetState(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		that.respondError(ctx, "Get", err)
		return
	}

	ctx.JSON(http.StatusOK, state)
}

func (that *sessionHandler) Close(ctx *gin.Context) {
	if err := that.sessions.CloseSession(ctx.Request.Context(), ctx.Param("id")); err != nil {
		that.respondError(ctx, "Close", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (that *sessionHandler) NewGame(ctx *gin.Context) {
	state, err := that.sessions.NewGame(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		that.respondError(ctx, "NewGame", err)
		return
	}

	ctx.JSON(http.StatusOK, state)
}

func (that *sessionHandler) MakeMove(ctx *gin.Context) {
	var req moveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "row and col are required"})
		return
	}

	state, err := that.sessions.MakeMove(ctx.Request.Context(), ctx.Param("id"), *req.Row, *req.Col)
	if err != nil {
		that.respondError(ctx, "MakeMove", err)
		return
	}

	ctx.JSON(http.StatusOK, state)
}

func (that *sessionHandler) BotMove(ctx *gin.Context) {
	state, err := that.sessions.BotMove(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		that.respondError(ctx, "BotMove", err)
		return
	}

	ctx.JSON(http.StatusOK, state)
}

func (that *sessionHandler) GetCell(ctx *gin.Context) {
	row, err := strconv.Atoi(ctx.Param("row"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid row"})
		return
	}

	col, err := strconv.Atoi(ctx.Param("col"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid column"})
		return
	}

	mark, err := that.sessions.GetCell(ctx.Request.Context(), ctx.Param("id"), row, col)
	if err != nil {
		that.respondError(ctx, "GetCell", err)
		return
	}

	ctx.JSON(http.StatusOK, cellResponse{Row: row, Col: col, Mark: mark})
}

func (that *sessionHandler) GetScore(ctx *gin.Context) {
	score, err := that.sessions.GetScore(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		that.respondError(ctx, "GetScore", err)
		return
	}

	ctx.JSON(http.StatusOK, score)
}

func (that *sessionHandler) ResetScore(ctx *gin.Context) {
	if err := that.sessions.ResetScore(ctx.Request.Context(), ctx.Param("id")); err != nil {
		that.respondError(ctx, "ResetScore", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// respondError writes err as {"error": ...}; only unexpected errors are logged.
func (that *sessionHandler) respondError(ctx *gin.Context, method string, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		ctx.JSON(status, gin.H{"error": "Internal Server Error"})
		return
	}

	ctx.JSON(status, gin.H{"error": err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrOutOfBounds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
