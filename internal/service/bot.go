package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// RandSource picks the tie-breaks of the heuristic.
type RandSource interface {
	Intn(n int) int
}

type BotService interface {
	ChooseMove(board entity.Board, mark entity.Mark) (int, error)
	MakeTurn(game *entity.Game, mark entity.Mark) (int, error)
}

type botService struct {
	rnd RandSource
}

// globalRand uses the package level source, which is safe for concurrent use.
type globalRand struct{}

func (globalRand) Intn(n int) int {
	return rand.Intn(n) //nolint: gosec // it's a game
}

// NewBotService returns the one-ply heuristic player. A nil source means the
// shared math/rand source, so one bot can serve concurrent sessions.
func NewBotService(rnd RandSource) BotService {
	if rnd == nil {
		rnd = globalRand{}
	}

	return &botService{rnd: rnd}
}

// ChooseMove picks a cell for mark in strict priority order:
// win now, block, center, random corner, random cell.
func (that *botService) ChooseMove(board entity.Board, mark entity.Mark) (int, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	if cell, ok := completingCell(board, availableCells, mark); ok {
		return cell, nil
	}

	if cell, ok := completingCell(board, availableCells, mark.Opponent()); ok {
		return cell, nil
	}

	if board[entity.CenterCell] == entity.EmptyCell {
		return entity.CenterCell, nil
	}

	availableCorners := make([]int, 0, len(entity.CornerCells))
	for _, corner := range entity.CornerCells {
		if board[corner] == entity.EmptyCell {
			availableCorners = append(availableCorners, corner)
		}
	}

	if len(availableCorners) > 0 {
		return availableCorners[that.rnd.Intn(len(availableCorners))], nil
	}

	return availableCells[that.rnd.Intn(len(availableCells))], nil
}

func (that *botService) MakeTurn(game *entity.Game, mark entity.Mark) (int, error) {
	cell, err := that.ChooseMove(game.Board, mark)
	if err != nil {
		return 0, err
	}

	if err = game.ApplyMove(cell, mark); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}

// completingCell returns the first empty cell that would give mark a triple.
func completingCell(board entity.Board, availableCells []int, mark entity.Mark) (int, bool) {
	for _, cell := range availableCells {
		board[cell] = mark
		won := board.Winner() == mark
		board[cell] = entity.EmptyCell

		if won {
			return cell, true
		}
	}

	return 0, false
}
