// Package tui renders the interactive parts of the melon CLI: a spinner
// while a sync runs, a live view of periodic syncs, and lipgloss tables of
// sync reports and local records.
package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("quit by user")

type TUI struct {
	input  io.Reader
	output io.Writer
	logger *logger.Logger
}

// New returns a TUI drawing on output and reading keys from input. Nil
// values mean the terminal.
func New(input io.Reader, output io.Writer, logger *logger.Logger) *TUI {
	return &TUI{input: input, output: output, logger: logger}
}

func (t *TUI) options() []tea.ProgramOption {
	var opts []tea.ProgramOption
	if t.input != nil {
		opts = append(opts, tea.WithInput(t.input))
	}
	if t.output != nil {
		opts = append(opts, tea.WithOutput(t.output))
	}
	return opts
}

// RunSync shows a spinner while syncFn runs and returns its outcome.
func (t *TUI) RunSync(ctx context.Context, syncFn SyncFunc) (models.SyncReport, error) {
	finalModel, err := tea.NewProgram(newSyncModel(ctx, syncFn), t.options()...).Run()
	if err != nil {
		t.logger.Err(err).Str("func", "TUI.RunSync").Msg("sync view failed")
		return models.SyncReport{}, err
	}

	result, ok := finalModel.(syncModel)
	if !ok {
		return models.SyncReport{}, tea.ErrProgramKilled
	}
	return result.report, result.err
}

// Watch shows every report received until the channel is closed, ctx is
// done, or the user quits. A user quit returns ErrUserQuit.
func (t *TUI) Watch(ctx context.Context, reports <-chan Report, interval time.Duration) error {
	opts := append(t.options(), tea.WithContext(ctx), tea.WithAltScreen())
	finalModel, err := tea.NewProgram(newWatchModel(reports, interval), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if result, ok := finalModel.(watchModel); ok && result.quit {
		return ErrUserQuit
	}
	return nil
}
