package terminal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens a session and plays it in the terminal until the user quits or
// ctx is canceled.
func Run(ctx context.Context, logger *slog.Logger, manager gameManager) error {
	session, cmds, err := manager.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	defer func() {
		if err := manager.EndSession(context.Background(), session.ID); err != nil {
			logger.Warn("failed to end session", "sessionID", session.ID, "error", err)
		}
	}()

	model := NewModel(ctx, logger, manager, session, cmds)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err = program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal program failed: %w", err)
	}

	if err = model.Err(); err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	return nil
}
