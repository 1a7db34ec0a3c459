package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/render"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type botPlayer interface {
	MakeTurn(game *entity.Game, mark entity.Mark) (int, error)
}

// Options describe the opponent of new sessions.
type Options struct {
	AIEnabled bool
	AIMark    entity.Mark
	AIDelay   time.Duration
}

// GameManager turns session events into state transitions and the render
// commands that draw them.
type GameManager struct {
	logger *slog.Logger

	sessionRepo sessionRepo
	bot         botPlayer
	opts        Options

	// session ID -> *sync.Mutex, serializes read-modify-write per session
	locks sync.Map
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, bot botPlayer, opts Options) *GameManager {
	if opts.AIEnabled && !opts.AIMark.IsPlayer() {
		opts.AIMark = entity.PlayerO
	}

	return &GameManager{
		logger: logger.With("component", "game_manager"),

		sessionRepo: sessionRepo,
		bot:         bot,
		opts:        opts,
	}
}

// CreateSession registers a new session sitting on the start screen.
func (that *GameManager) CreateSession(ctx context.Context) (*entity.Session, []render.Command, error) {
	session := entity.NewSession(uuid.NewString(), that.opts.AIEnabled, that.opts.AIMark)

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "sessionID", session.ID, "ai", session.AIEnabled)

	return session, []render.Command{render.StartScreen(), render.UpdateScore(session.Score)}, nil
}

func (that *GameManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *GameManager) EndSession(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()
	defer that.locks.Delete(id)

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "sessionID", id)

	return nil
}

// Dispatch applies event to the session. Moves that are not allowed are
// ignored: no commands and no error.
func (that *GameManager) Dispatch(ctx context.Context, sessionID string, event Event) (*entity.Session, []render.Command, error) {
	unlock := that.lock(sessionID)
	defer unlock()

	session, err := that.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	var cmds []render.Command

	switch ev := event.(type) {
	case NewGameRequested:
		cmds = that.startGame(session)
	case HumanMoveRequested:
		cmds = that.humanMove(session, ev.Cell)
	case AIMoveRequested:
		cmds = that.aiMove(session, ev.Round)
	default:
		return nil, nil, fmt.Errorf("unknown event %T", event)
	}

	if len(cmds) == 0 {
		return session, nil, nil
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, cmds, nil
}

func (that *GameManager) lock(sessionID string) func() {
	value, _ := that.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}

func (that *GameManager) startGame(session *entity.Session) []render.Command {
	session.Game.Reset()
	session.Round++

	that.logger.Debug("game started", "sessionID", session.ID, "round", session.Round)

	cmds := []render.Command{
		render.ClearBoard(),
		render.DrawGrid(),
		render.UpdateScore(session.Score),
	}

	return append(cmds, that.nextTurn(session)...)
}

func (that *GameManager) humanMove(session *entity.Session, cell int) []render.Command {
	log := that.logger.With("method", "humanMove", "sessionID", session.ID, "cell", cell)

	if session.IsAITurn() {
		log.Debug("ignoring move during the AI's turn")
		return nil
	}

	mark := session.Game.Turn
	if err := session.Game.ApplyMove(cell, mark); err != nil {
		log.Debug("ignoring invalid move", "error", err)
		return nil
	}

	return that.afterMove(session, cell, mark)
}

func (that *GameManager) aiMove(session *entity.Session, round int) []render.Command {
	log := that.logger.With("method", "aiMove", "sessionID", session.ID, "round", round)

	if !session.IsAITurn() || round != session.Round {
		log.Debug("ignoring stale AI move")
		return nil
	}

	mark := session.AIMark
	cell, err := that.bot.MakeTurn(&session.Game, mark)
	if err != nil {
		log.Warn("bot could not move", "error", err)
		return nil
	}

	return that.afterMove(session, cell, mark)
}

func (that *GameManager) afterMove(session *entity.Session, cell int, mark entity.Mark) []render.Command {
	cmds := []render.Command{render.DrawMark(cell, mark)}

	if session.Game.IsFinished() {
		return append(cmds, that.endGame(session)...)
	}

	return append(cmds, that.nextTurn(session)...)
}

// endGame runs once per finished game; only wins are counted.
func (that *GameManager) endGame(session *entity.Session) []render.Command {
	winner := session.Game.Winner
	session.Score.Add(winner)

	that.logger.Info("game finished", "sessionID", session.ID, "winner", winner, "score", session.Score)

	return []render.Command{
		render.GameOverBanner(winner),
		render.UpdateScore(session.Score),
	}
}

func (that *GameManager) nextTurn(session *entity.Session) []render.Command {
	if !session.IsAITurn() {
		return nil
	}

	return []render.Command{render.ScheduleAIMove(that.opts.AIDelay, session.Round)}
}
