package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/render"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
)

// Board geometry in terminal cells. The board starts below the score and
// status lines and a blank line.
const (
	cellWidth  = 7
	cellHeight = 3
	boardTop   = 3
	boardLeft  = 0
)

type gameManager interface {
	CreateSession(ctx context.Context) (*entity.Session, []render.Command, error)
	EndSession(ctx context.Context, id string) error
	Dispatch(ctx context.Context, sessionID string, event usecase.Event) (*entity.Session, []render.Command, error)
}

type aiMoveMsg struct {
	round int
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	hintStyle   = lipgloss.NewStyle().Faint(true)
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#b11111"))

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(cellHeight).
			Align(lipgloss.Center, lipgloss.Center)
	lightCell = cellStyle.Background(lipgloss.Color("#3a3a3a"))
	darkCell  = cellStyle.Background(lipgloss.Color("#262626"))

	markColors = map[entity.Mark]lipgloss.Color{
		entity.PlayerX: lipgloss.Color("#1167b1"),
		entity.PlayerO: lipgloss.Color("#b11111"),
	}
)

// Model is the bubbletea program for one session. All session events are
// dispatched from Update, so the session is only touched by the UI loop.
type Model struct {
	ctx    context.Context
	logger *slog.Logger

	manager   gameManager
	sessionID string
	aiMark    entity.Mark

	canvas  *render.Canvas
	spinner spinner.Model
	err     error
}

func NewModel(ctx context.Context, logger *slog.Logger, manager gameManager, session *entity.Session, cmds []render.Command) *Model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	canvas := render.NewCanvas()
	canvas.ApplyAll(cmds)

	return &Model{
		ctx:    ctx,
		logger: logger.With("component", "terminal"),

		manager:   manager,
		sessionID: session.ID,
		aiMark:    session.AIMark,

		canvas:  canvas,
		spinner: s,
	}
}

// Err is the storage failure that stopped the program, if any.
func (that *Model) Err() error {
	return that.err
}

func (that *Model) Init() tea.Cmd {
	return nil
}

func (that *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c", "q", "esc":
			return that, tea.Quit
		case " ":
			return that, that.dispatch(usecase.NewGameRequested{})
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			return that, that.dispatch(usecase.HumanMoveRequested{Cell: int(key[0] - '1')})
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return that, nil
		}

		cell, ok := entity.CellAt(msg.X-boardLeft, msg.Y-boardTop, cellWidth, cellHeight)
		if !ok {
			return that, nil
		}

		return that, that.dispatch(usecase.HumanMoveRequested{Cell: cell})

	case aiMoveMsg:
		return that, that.dispatch(usecase.AIMoveRequested{Round: msg.round})

	case spinner.TickMsg:
		if that.canvas.PendingAIRound == 0 {
			return that, nil
		}

		var cmd tea.Cmd
		that.spinner, cmd = that.spinner.Update(msg)
		return that, cmd
	}

	return that, nil
}

func (that *Model) dispatch(event usecase.Event) tea.Cmd {
	_, cmds, err := that.manager.Dispatch(that.ctx, that.sessionID, event)
	if err != nil {
		that.logger.Error("failed to dispatch event", "event", fmt.Sprintf("%T", event), "error", err)
		that.err = err
		return tea.Quit
	}

	wasThinking := that.canvas.PendingAIRound != 0
	that.canvas.ApplyAll(cmds)

	var teaCmds []tea.Cmd
	for _, cmd := range cmds {
		if cmd.Kind == render.KindScheduleAIMove {
			teaCmds = append(teaCmds, scheduleAIMove(cmd.Delay, cmd.Round))
		}
	}

	if len(teaCmds) > 0 && !wasThinking {
		teaCmds = append(teaCmds, that.spinner.Tick)
	}

	return tea.Batch(teaCmds...)
}

func scheduleAIMove(delay time.Duration, round int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return aiMoveMsg{round: round}
	})
}

func (that *Model) View() string {
	var b strings.Builder

	b.WriteString(that.canvas.ScoreLabel())
	b.WriteString("\n")
	b.WriteString(that.statusLine())
	b.WriteString("\n\n")

	if that.canvas.Screen == render.ScreenStart {
		b.WriteString(titleStyle.Render(that.canvas.Title))
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render(that.canvas.Hint))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render(that.canvas.Prompt))
		b.WriteString("\n")
		return b.String()
	}

	if that.canvas.Grid {
		b.WriteString(that.board())
		b.WriteString("\n")
	}

	if that.canvas.Prompt != "" {
		b.WriteString(promptStyle.Render(that.canvas.Prompt))
		b.WriteString("\n")
	}

	if that.err != nil {
		b.WriteString(errorStyle.Render(that.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func (that *Model) statusLine() string {
	switch {
	case that.canvas.Banner != "":
		return bannerStyle.Render(that.canvas.Banner)
	case that.canvas.PendingAIRound != 0:
		return fmt.Sprintf("%s is thinking %s", that.aiMark, that.spinner.View())
	default:
		return ""
	}
}

func (that *Model) board() string {
	rows := make([]string, 0, 3)

	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			cells = append(cells, that.cell(row*3+col))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (that *Model) cell(i int) string {
	style := lightCell
	if (i/3+i%3)%2 == 1 {
		style = darkCell
	}

	mark := that.canvas.Cells[i]
	if color, ok := markColors[mark]; ok {
		return style.Bold(true).Foreground(color).Render(string(mark))
	}

	if that.canvas.Banner == "" {
		return style.Faint(true).Render(fmt.Sprint(i + 1))
	}

	return style.Render("")
}
