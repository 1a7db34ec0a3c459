package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/render"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/service"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
)

type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }

func newTestServer(t *testing.T, opts usecase.Options) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemorySessionRepository(), service.NewBotService(firstRand{}), opts)

	return NewRouter(logger, manager)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) sessionResponse {
	t.Helper()

	var resp sessionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))

	return resp
}

func createSession(t *testing.T, h http.Handler) string {
	t.Helper()

	rr := do(t, h, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rr.Code)

	return decode(t, rr).Session.ID
}

func TestPing(t *testing.T) {
	h := newTestServer(t, usecase.Options{})

	rr := do(t, h, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestSessions(t *testing.T) {
	t.Run("Create returns the start screen", func(t *testing.T) {
		h := newTestServer(t, usecase.Options{AIEnabled: true})

		rr := do(t, h, http.MethodPost, "/sessions", "")

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		resp := decode(t, rr)
		assert.NotEmpty(t, resp.Session.ID)
		assert.Equal(t, entity.StatusWaiting, resp.Session.Game.Status)
		require.NotEmpty(t, resp.Commands)
		assert.Equal(t, render.KindStartScreen, resp.Commands[0].Kind)
	})

	t.Run("Get and delete", func(t *testing.T) {
		h := newTestServer(t, usecase.Options{AIEnabled: true})
		id := createSession(t, h)

		rr := do(t, h, http.MethodGet, "/sessions/"+id, "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, id, decode(t, rr).Session.ID)

		rr = do(t, h, http.MethodDelete, "/sessions/"+id, "")
		require.Equal(t, http.StatusNoContent, rr.Code)

		rr = do(t, h, http.MethodGet, "/sessions/"+id, "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Unknown session is 404", func(t *testing.T) {
		h := newTestServer(t, usecase.Options{AIEnabled: true})

		for _, tc := range []struct{ method, path, body string }{
			{http.MethodGet, "/sessions/missing", ""},
			{http.MethodDelete, "/sessions/missing", ""},
			{http.MethodPost, "/sessions/missing/games", ""},
			{http.MethodPost, "/sessions/missing/moves", `{"cell": 4}`},
		} {
			rr := do(t, h, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusNotFound, rr.Code, tc.method+" "+tc.path)
		}
	})
}

func TestMoves(t *testing.T) {
	t.Run("Human move is answered by the AI", func(t *testing.T) {
		// Given: a started game against the AI
		h := newTestServer(t, usecase.Options{AIEnabled: true, AIMark: entity.PlayerO, AIDelay: time.Second})
		id := createSession(t, h)
		require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/sessions/"+id+"/games", "").Code)

		// When: the human claims a corner
		rr := do(t, h, http.MethodPost, "/sessions/"+id+"/moves", `{"cell": 0}`)

		// Then: both marks come back without a pending schedule
		require.Equal(t, http.StatusOK, rr.Code)
		resp := decode(t, rr)
		assert.Equal(t, []render.Command{
			render.DrawMark(0, entity.PlayerX),
			render.DrawMark(4, entity.PlayerO),
		}, resp.Commands)
		assert.Equal(t, entity.PlayerX, resp.Session.Game.Turn)
	})

	t.Run("AI owning X opens the new game", func(t *testing.T) {
		h := newTestServer(t, usecase.Options{AIEnabled: true, AIMark: entity.PlayerX})
		id := createSession(t, h)

		rr := do(t, h, http.MethodPost, "/sessions/"+id+"/games", "")

		require.Equal(t, http.StatusOK, rr.Code)
		resp := decode(t, rr)
		assert.Contains(t, resp.Commands, render.DrawMark(4, entity.PlayerX))
		assert.Equal(t, entity.PlayerX, resp.Session.Game.Board[4])
	})

	t.Run("Occupied cell is ignored", func(t *testing.T) {
		h := newTestServer(t, usecase.Options{})
		id := createSession(t, h)
		do(t, h, http.MethodPost, "/sessions/"+id+"/games", "")
		do(t, h, http.MethodPost, "/sessions/"+id+"/moves", `{"cell": 4}`)

		rr := do(t, h, http.MethodPost, "/sessions/"+id+"/moves", `{"cell": 4}`)

		require.Equal(t, http.StatusOK, rr.Code)
		resp := decode(t, rr)
		assert.Empty(t, resp.Commands)
		assert.Equal(t, entity.PlayerO, resp.Session.Game.Turn)
	})

	t.Run("Zero cell and zero score are sent explicitly", func(t *testing.T) {
		// Given: a fresh two player game
		h := newTestServer(t, usecase.Options{})

		rr := do(t, h, http.MethodPost, "/sessions", "")
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"score_x":0,"score_o":0`)

		id := decode(t, rr).Session.ID
		do(t, h, http.MethodPost, "/sessions/"+id+"/games", "")

		// When: X claims the top left cell
		rr = do(t, h, http.MethodPost, "/sessions/"+id+"/moves", `{"cell": 0}`)

		// Then: the raw body carries the cell index
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"kind":"draw_mark","cell":0,"mark":"X"`)
	})

	t.Run("Malformed body is 400", func(t *testing.T) {
		h := newTestServer(t, usecase.Options{})
		id := createSession(t, h)

		for _, body := range []string{"", "{", `{"square": 1}`} {
			rr := do(t, h, http.MethodPost, "/sessions/"+id+"/moves", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		}
	})
}

type failingManager struct {
	gameManager
}

func (failingManager) GetSession(_ context.Context, _ string) (*entity.Session, error) {
	return nil, errors.New("redis down")
}

func TestStorageFailureIs500(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewRouter(logger, failingManager{})

	rr := do(t, h, http.MethodGet, "/sessions/s1", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
