package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/render"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
)

type gameManager interface {
	CreateSession(ctx context.Context) (*entity.Session, []render.Command, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	EndSession(ctx context.Context, id string) error
	Dispatch(ctx context.Context, sessionID string, event usecase.Event) (*entity.Session, []render.Command, error)
}

type handlers struct {
	logger  *slog.Logger
	manager gameManager
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type sessionResponse struct {
	Session  *entity.Session  `json:"session"`
	Commands []render.Command `json:"commands"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter wires the session API.
func NewRouter(logger *slog.Logger, manager gameManager) http.Handler {
	h := &handlers{
		logger:  logger.With("component", "rest"),
		manager: manager,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ping", h.ping)
	r.Post("/sessions", h.createSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.getSession)
		r.Delete("/", h.deleteSession)
		r.Post("/games", h.newGame)
		r.Post("/moves", h.move)
	})

	return r
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	session, cmds, err := that.manager.CreateSession(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, sessionResponse{Session: session, Commands: cmds})
}

func (that *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.manager.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{Session: session, Commands: []render.Command{}})
}

func (that *handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.manager.EndSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) newGame(w http.ResponseWriter, r *http.Request) {
	that.dispatch(w, r, usecase.NewGameRequested{})
}

func (that *handlers) move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"cell\": 0..8}"})
		return
	}

	that.dispatch(w, r, usecase.HumanMoveRequested{Cell: *req.Cell})
}

// dispatch runs the event and plays any AI move it schedules right away:
// there is no screen to animate the delay on.
func (that *handlers) dispatch(w http.ResponseWriter, r *http.Request, event usecase.Event) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	session, cmds, err := that.manager.Dispatch(ctx, id, event)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	result := make([]render.Command, 0, len(cmds))
	for len(cmds) > 0 {
		var next usecase.Event
		for _, cmd := range cmds {
			if cmd.Kind == render.KindScheduleAIMove {
				next = usecase.AIMoveRequested{Round: cmd.Round}
				continue
			}
			result = append(result, cmd)
		}

		if next == nil {
			break
		}

		var updated *entity.Session
		updated, cmds, err = that.manager.Dispatch(ctx, id, next)
		if err != nil {
			that.writeError(w, r, err)
			return
		}
		session = updated
	}

	that.writeJSON(w, http.StatusOK, sessionResponse{Session: session, Commands: result})
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperror.ErrSessionNotFound) {
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}

	that.logger.Error("request failed", "path", r.URL.Path, "requestID", middleware.GetReqID(r.Context()), "error", err)
	that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
