package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-engine/mocks/usecase"
)

var errRedisDown = errors.New("redis down")

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	t       *testing.T
	handler http.Handler
	repo    *mockedUseCase.MockscoreRepo
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := mockedUseCase.NewMockscoreRepo(t)
	server := New(logger, usecase.NewSessionManager(logger, repo, service.NewBotService(rand.NewSource(1))))

	return &testAPI{t: t, handler: server.Handler(), repo: repo}
}

func (that *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	that.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	that.handler.ServeHTTP(rec, req)

	return rec
}

func (that *testAPI) createSession() string {
	that.t.Helper()

	that.repo.EXPECT().Get(mock.Anything, mock.AnythingOfType("string")).Return(&entity.Score{}, nil).Maybe()

	rec := that.do(http.MethodPost, "/sessions", "")
	require.Equal(that.t, http.StatusCreated, rec.Code)

	return decodeState(that.t, rec).SessionID
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) usecase.State {
	t.Helper()

	var state usecase.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))

	return state
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body["error"]
}

func TestPing(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestSessionHandler_Create(t *testing.T) {
	t.Run("Returns the initial state", func(t *testing.T) {
		// Given: an API with an empty score store
		api := newTestAPI(t)
		api.repo.EXPECT().Get(mock.Anything, mock.AnythingOfType("string")).Return(&entity.Score{}, nil).Once()

		// When: creating a session
		rec := api.do(http.MethodPost, "/sessions", "")

		// Then: 201 with an empty board and X to move
		require.Equal(t, http.StatusCreated, rec.Code)
		state := decodeState(t, rec)
		assert.NotEmpty(t, state.SessionID)
		assert.Equal(t, entity.X, state.Game.CurrentPlayer)
		assert.Equal(t, entity.StatusPlaying, state.Game.Status)
		assert.Equal(t, "Make your move!", state.View.Status)
	})

	t.Run("Storage failure is a 500", func(t *testing.T) {
		api := newTestAPI(t)
		api.repo.EXPECT().Get(mock.Anything, mock.AnythingOfType("string")).Return(nil, errRedisDown).Once()

		rec := api.do(http.MethodPost, "/sessions", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", decodeError(t, rec))
	})
}

func TestSessionHandler_MakeMove(t *testing.T) {
	t.Run("Plays a whole game to a win", func(t *testing.T) {
		// Given: a session
		api := newTestAPI(t)
		id := api.createSession()
		api.repo.EXPECT().Record(mock.Anything, id, entity.StatusXWins).Return(nil).Once()

		// When: X takes the top row while O plays the middle row
		moves := []string{`{"row":0,"col":0}`, `{"row":1,"col":1}`, `{"row":0,"col":1}`, `{"row":1,"col":0}`, `{"row":0,"col":2}`}

		var rec *httptest.ResponseRecorder
		for _, move := range moves {
			rec = api.do(http.MethodPost, "/sessions/"+id+"/moves", move)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		}

		// Then: X wins along {0,1,2}
		state := decodeState(t, rec)
		assert.Equal(t, entity.StatusXWins, state.Game.Status)
		require.NotNil(t, state.Game.WinningLine)
		assert.Equal(t, entity.Line{0, 1, 2}, *state.Game.WinningLine)
		assert.Equal(t, "Player X Wins!", state.View.Status)
		assert.Len(t, state.View.Highlight, 3)

		// When: moving after the win
		rec = api.do(http.MethodPost, "/sessions/"+id+"/moves", `{"row":2,"col":2}`)

		// Then: 409
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Maps rejections to status codes", func(t *testing.T) {
		api := newTestAPI(t)
		id := api.createSession()

		rec := api.do(http.MethodPost, "/sessions/"+id+"/moves", `{"row":1,"col":1}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = api.do(http.MethodPost, "/sessions/"+id+"/moves", `{"row":1,"col":1}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, decodeError(t, rec), apperror.ErrCellOccupied.Error())

		rec = api.do(http.MethodPost, "/sessions/"+id+"/moves", `{"row":0,"col":3}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeError(t, rec), apperror.ErrOutOfBounds.Error())

		rec = api.do(http.MethodPost, "/sessions/missing/moves", `{"row":0,"col":0}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Malformed body is a 400", func(t *testing.T) {
		api := newTestAPI(t)
		id := api.createSession()

		for _, body := range []string{`{"row":0}`, `not json`, `{"row":"a","col":1}`} {
			rec := api.do(http.MethodPost, "/sessions/"+id+"/moves", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
	})
}

func TestSessionHandler_BotMove(t *testing.T) {
	// Given: a session where X played a corner
	api := newTestAPI(t)
	id := api.createSession()
	rec := api.do(http.MethodPost, "/sessions/"+id+"/moves", `{"row":0,"col":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// When: asking the bot to answer
	rec = api.do(http.MethodPost, "/sessions/"+id+"/bot", "")

	// Then: O has played and X is to move
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeState(t, rec)
	assert.Equal(t, 1, countMarks(state.Game.Board, entity.O))
	assert.Equal(t, entity.X, state.Game.CurrentPlayer)

	rec = api.do(http.MethodPost, "/sessions/missing/bot", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionHandler_GetCell(t *testing.T) {
	// Given: a session with X at (2,1)
	api := newTestAPI(t)
	id := api.createSession()
	rec := api.do(http.MethodPost, "/sessions/"+id+"/moves", `{"row":2,"col":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// When: reading the cell
	rec = api.do(http.MethodGet, "/sessions/"+id+"/cells/2/1", "")

	// Then: it holds X
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"row":2,"col":1,"mark":"X"}`, rec.Body.String())

	// Then: out-of-range reads are empty, not errors
	rec = api.do(http.MethodGet, "/sessions/"+id+"/cells/9/9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"row":9,"col":9,"mark":""}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/sessions/"+id+"/cells/x/1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandler_Lifecycle(t *testing.T) {
	t.Run("New game clears the board", func(t *testing.T) {
		api := newTestAPI(t)
		id := api.createSession()
		rec := api.do(http.MethodPost, "/sessions/"+id+"/moves", `{"row":0,"col":0}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = api.do(http.MethodPost, "/sessions/"+id+"/game", "")

		require.Equal(t, http.StatusOK, rec.Code)
		state := decodeState(t, rec)
		assert.Equal(t, entity.Board{}, state.Game.Board)
		assert.Equal(t, entity.X, state.Game.CurrentPlayer)
	})

	t.Run("Score can be read and reset", func(t *testing.T) {
		api := newTestAPI(t)
		id := api.createSession()
		api.repo.EXPECT().Reset(mock.Anything, id).Return(nil).Once()

		rec := api.do(http.MethodGet, "/sessions/"+id+"/score", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"x_wins":0,"o_wins":0,"draws":0}`, rec.Body.String())

		rec = api.do(http.MethodDelete, "/sessions/"+id+"/score", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Closed session is gone", func(t *testing.T) {
		api := newTestAPI(t)
		id := api.createSession()
		api.repo.EXPECT().Reset(mock.Anything, id).Return(nil).Once()

		rec := api.do(http.MethodDelete, "/sessions/"+id, "")
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = api.do(http.MethodGet, "/sessions/"+id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = api.do(http.MethodDelete, "/sessions/"+id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func countMarks(board entity.Board, mark entity.Mark) int {
	n := 0
	for _, cell := range board {
		if cell == mark {
			n++
		}
	}

	return n
}
