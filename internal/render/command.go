// Package render describes what the presentation layer has to draw after a
// session event, independently of how it is drawn.
package render

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type Kind string

const (
	KindStartScreen    Kind = "start_screen"
	KindClearBoard     Kind = "clear_board"
	KindDrawGrid       Kind = "draw_grid"
	KindDrawMark       Kind = "draw_mark"
	KindShowBanner     Kind = "show_banner"
	KindUpdateScore    Kind = "update_score"
	KindScheduleAIMove Kind = "schedule_ai_move"
)

const (
	TitleText       = "TIC TAC TOE"
	HintText        = "Click a square or press 1-9 to claim it"
	PlayPrompt      = "[Press SPACE to Play]"
	PlayAgainPrompt = "[Press SPACE to Play Again]"
	DrawText        = "It's a draw!"
)

type Command struct {
	Kind   Kind          `json:"kind"`
	Cell   int           `json:"cell"`
	Mark   entity.Mark   `json:"mark,omitempty"`
	Text   string        `json:"text,omitempty"`
	Prompt string        `json:"prompt,omitempty"`
	ScoreX int           `json:"score_x"`
	ScoreO int           `json:"score_o"`
	Delay  time.Duration `json:"delay,omitempty"`
	Round  int           `json:"round,omitempty"`
}

func StartScreen() Command {
	return Command{Kind: KindStartScreen, Text: TitleText + "\n" + HintText, Prompt: PlayPrompt}
}

func ClearBoard() Command {
	return Command{Kind: KindClearBoard}
}

func DrawGrid() Command {
	return Command{Kind: KindDrawGrid}
}

func DrawMark(cell int, mark entity.Mark) Command {
	return Command{Kind: KindDrawMark, Cell: cell, Mark: mark}
}

func UpdateScore(score entity.Score) Command {
	return Command{Kind: KindUpdateScore, ScoreX: score.X, ScoreO: score.O}
}

func ScheduleAIMove(delay time.Duration, round int) Command {
	return Command{Kind: KindScheduleAIMove, Delay: delay, Round: round}
}

// GameOverBanner announces the result of a finished game.
func GameOverBanner(winner entity.Mark) Command {
	text := DrawText
	if winner.IsPlayer() {
		text = fmt.Sprintf("%s wins!", winner)
	}

	return Command{Kind: KindShowBanner, Mark: winner, Text: text, Prompt: PlayAgainPrompt}
}

// ScoreLabel formats the status line shown under the board.
func ScoreLabel(scoreX, scoreO int) string {
	return fmt.Sprintf("X: %d  O: %d", scoreX, scoreO)
}
