package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

var (
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrUnknownGameStatus = errors.New("unknown game status")
)

type Game struct {
	Board  Board  `json:"board"`
	Winner Mark   `json:"winner"`
	Status string `json:"status"`
	Turn   Mark   `json:"player_turn"`
	Moves  int    `json:"moves"`
}

// NewGame returns an empty game that has not been started yet.
func NewGame() Game {
	return Game{
		Turn:   PlayerX,
		Status: StatusWaiting,
	}
}

// Reset clears the board and starts a fresh game with X to move.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Winner = EmptyCell
	that.Turn = PlayerX
	that.Moves = 0
	that.Status = StatusOngoing
}

func (that *Game) CheckWinner() bool {
	return that.Board.HasWinner()
}

func (that *Game) IsDraw() bool {
	return that.Board.IsFull() && !that.Board.HasWinner()
}

func (that *Game) UpdateGameState() {
	if winner := that.Board.Winner(); winner != EmptyCell {
		that.Winner = winner
		that.Status = StatusFinished
		return
	}

	if that.Board.IsFull() {
		that.Winner = PlayerTie
		that.Status = StatusFinished
		return
	}

	// the game continues, hand the turn over
	that.Turn = that.Turn.Opponent()
}

// ApplyMove places mark on cell. A rejected move leaves the game untouched.
func (that *Game) ApplyMove(cell int, mark Mark) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = mark
	that.Moves++

	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
