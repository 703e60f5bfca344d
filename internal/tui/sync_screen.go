package tui

import (
	"context"

	"github.com/MKhiriev/go-melon-sync/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// SyncFunc performs one sync run.
type SyncFunc func(ctx context.Context) (models.SyncReport, error)

// syncModel shows a spinner while a single sync runs and quits when it is
// done.
type syncModel struct {
	ctx     context.Context
	cancel  context.CancelFunc
	syncFn  SyncFunc
	spinner spinner.Model

	running bool
	report  models.SyncReport
	err     error
}

func newSyncModel(ctx context.Context, syncFn SyncFunc) syncModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	ctx, cancel := context.WithCancel(ctx)
	return syncModel{
		ctx:     ctx,
		cancel:  cancel,
		syncFn:  syncFn,
		spinner: s,
		running: true,
	}
}

func (m syncModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, runSync(m.ctx, m.syncFn))
}

func (m syncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case syncDoneMsg:
		m.running = false
		m.report = msg.report
		m.err = msg.err
		m.cancel()
		return m, tea.Quit
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			// the sync returns with a context error and ends the program
			m.cancel()
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m syncModel) View() string {
	if m.running {
		return m.spinner.View() + " Syncing..."
	}
	return ""
}

func runSync(ctx context.Context, syncFn SyncFunc) tea.Cmd {
	return func() tea.Msg {
		report, err := syncFn(ctx)
		return syncDoneMsg{report: report, err: err}
	}
}
