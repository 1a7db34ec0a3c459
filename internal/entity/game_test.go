package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

const (
	x = PlayerX
	o = PlayerO
	e = EmptyCell
)

func ongoingGame(board Board, turn Mark) *Game {
	moves := 0
	for _, cell := range board {
		if cell != EmptyCell {
			moves++
		}
	}

	return &Game{Board: board, Turn: turn, Status: StatusOngoing, Moves: moves}
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it should report finished only
		assert.True(t, game.IsFinished())
		assert.False(t, game.IsOngoing())
		assert.False(t, game.IsWaiting())
	})

	t.Run("NewGame is waiting with X to move", func(t *testing.T) {
		// When: a new game is created
		game := NewGame()

		// Then: nothing has been played yet
		assert.True(t, game.IsWaiting())
		assert.Equal(t, PlayerX, game.Turn)
		assert.Equal(t, Board{}, game.Board)
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}
		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		// Given: a game with unknown status
		game := &Game{Status: "unknown"}

		// When: checking if the game is active
		err := game.ConfirmOngoingState()

		// Then: it should return an error
		require.ErrorIs(t, err, ErrUnknownGameStatus)
		assert.Contains(t, err.Error(), "unknown")
	})
}

func TestGame_Reset(t *testing.T) {
	// Given: a finished game won by O
	game := &Game{
		Board:  Board{o, o, o, x, x, e, x, e, e},
		Winner: PlayerO,
		Status: StatusFinished,
		Turn:   PlayerO,
		Moves:  6,
	}

	// When: the game is reset
	game.Reset()

	// Then: the board is empty, X moves first and the game is active
	expectedGame := &Game{
		Board:  Board{},
		Winner: EmptyCell,
		Status: StatusOngoing,
		Turn:   PlayerX,
		Moves:  0,
	}
	require.Equal(t, expectedGame, game)
}

func TestGame_ApplyMove(t *testing.T) {
	t.Run("Successful move flips the turn", func(t *testing.T) {
		// Given: a started game
		game := NewGame()
		game.Reset()

		// When: Player X makes a valid move
		err := game.ApplyMove(0, PlayerX)
		require.NoError(t, err)

		// Then: the cell is taken and O is to move
		expectedGame := &Game{
			Board:  Board{x, e, e, e, e, e, e, e, e},
			Turn:   PlayerO,
			Status: StatusOngoing,
			Moves:  1,
		}
		require.Equal(t, expectedGame, &game)
	})

	t.Run("Occupied cell never changes the board", func(t *testing.T) {
		// Given: a game where cell 0 is occupied by Player X
		game := ongoingGame(Board{x, e, e, e, e, e, e, e, e}, PlayerO)
		before := *game

		// When: Player O tries to move to the same cell
		err := game.ApplyMove(0, PlayerO)

		// Then: ErrCellOccupied is returned and the game is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Equal(t, before, *game)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		game := ongoingGame(Board{}, PlayerX)
		before := *game

		err := game.ApplyMove(1, PlayerO)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		require.Equal(t, before, *game)
	})

	t.Run("Error on invalid cell index", func(t *testing.T) {
		game := ongoingGame(Board{}, PlayerX)

		assert.ErrorIs(t, game.ApplyMove(20, PlayerX), ErrInvalidCell)
		assert.ErrorIs(t, game.ApplyMove(-1, PlayerX), ErrInvalidCell)
	})

	t.Run("Move before the game is started", func(t *testing.T) {
		game := NewGame()

		err := game.ApplyMove(4, PlayerX)

		assert.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
		assert.Equal(t, Board{}, game.Board)
	})

	t.Run("Move after game finished", func(t *testing.T) {
		// Given: a game where X has already won
		game := &Game{
			Board:  Board{x, x, x, e, o, e, e, o, e},
			Status: StatusFinished,
			Winner: PlayerX,
			Turn:   PlayerX,
		}

		// When: player O tries to make a move after the game has finished
		err := game.ApplyMove(3, PlayerO)

		// Then: an ErrGameFinished error should be returned
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, EmptyCell, game.Board[3])
	})

	t.Run("Winning move finishes the game and keeps the mover's turn", func(t *testing.T) {
		// Given: X has two in the top row
		game := ongoingGame(Board{x, x, e, o, o, e, e, e, e}, PlayerX)

		// When: X completes the row
		require.NoError(t, game.ApplyMove(2, PlayerX))

		// Then: X is the winner
		assert.True(t, game.IsFinished())
		assert.True(t, game.CheckWinner())
		assert.False(t, game.IsDraw())
		assert.Equal(t, PlayerX, game.Winner)
		assert.Equal(t, PlayerX, game.Turn)
	})
}

func TestGame_DrawAfterNineMoves(t *testing.T) {
	// Given: a started game
	game := NewGame()
	game.Reset()

	// When: nine valid moves are played without a line being completed
	//  X O X
	//  X O O
	//  O X X
	moves := []int{0, 1, 2, 4, 3, 5, 7, 6, 8}
	for i, cell := range moves {
		require.False(t, game.IsDraw(), "draw reported early at move %d", i)
		require.NoError(t, game.ApplyMove(cell, game.Turn))
	}

	// Then: the game is a draw
	assert.Equal(t, 9, game.Moves)
	assert.True(t, game.IsDraw())
	assert.False(t, game.CheckWinner())
	assert.True(t, game.IsFinished())
	assert.Equal(t, PlayerTie, game.Winner)
}
