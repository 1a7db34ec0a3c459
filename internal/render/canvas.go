package render

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type Screen int

const (
	ScreenStart Screen = iota
	ScreenBoard
)

// Canvas folds commands into the state a front end needs to draw one frame.
type Canvas struct {
	Screen Screen
	Grid   bool
	Cells  entity.Board

	Title  string
	Hint   string
	Banner string
	Prompt string
	Winner entity.Mark

	ScoreX int
	ScoreO int

	// PendingAIRound is the round of the AI move waiting to be played, zero when none.
	PendingAIRound int
}

func NewCanvas() *Canvas {
	return &Canvas{}
}

func (that *Canvas) ApplyAll(cmds []Command) {
	for _, cmd := range cmds {
		that.Apply(cmd)
	}
}

func (that *Canvas) Apply(cmd Command) {
	switch cmd.Kind {
	case KindStartScreen:
		that.clear()
		that.Screen = ScreenStart
		that.Title, that.Hint, _ = strings.Cut(cmd.Text, "\n")
		that.Prompt = cmd.Prompt
	case KindClearBoard:
		that.clear()
		that.Screen = ScreenBoard
	case KindDrawGrid:
		that.Grid = true
	case KindDrawMark:
		if cmd.Cell >= 0 && cmd.Cell < entity.BoardSize {
			that.Cells[cmd.Cell] = cmd.Mark
		}
		that.PendingAIRound = 0
	case KindShowBanner:
		that.Banner = cmd.Text
		that.Prompt = cmd.Prompt
		that.Winner = cmd.Mark
		that.PendingAIRound = 0
	case KindUpdateScore:
		that.ScoreX = cmd.ScoreX
		that.ScoreO = cmd.ScoreO
	case KindScheduleAIMove:
		that.PendingAIRound = cmd.Round
	}
}

// ScoreLabel is the status line for the current counters.
func (that *Canvas) ScoreLabel() string {
	return ScoreLabel(that.ScoreX, that.ScoreO)
}

func (that *Canvas) clear() {
	that.Grid = false
	that.Cells = entity.Board{}
	that.Title, that.Hint = "", ""
	that.Banner, that.Prompt = "", ""
	that.Winner = entity.EmptyCell
	that.PendingAIRound = 0
}
