package tui

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-melon-sync/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Report is one sync outcome delivered to a watch view.
type Report struct {
	Report models.SyncReport
	Err    error
}

// watchModel shows the outcome of the latest periodic sync until the user
// quits or the report channel is closed.
type watchModel struct {
	reports  <-chan Report
	interval time.Duration
	spinner  spinner.Model

	runs   int
	failed int
	last   *Report
	quit   bool
}

func newWatchModel(reports <-chan Report, interval time.Duration) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return watchModel{reports: reports, interval: interval, spinner: s}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForReport(m.reports))
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case syncDoneMsg:
		m.runs++
		if msg.err != nil {
			m.failed++
		}
		m.last = &Report{Report: msg.report, Err: msg.err}
		return m, waitForReport(m.reports)
	case watchClosedMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			m.quit = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	title := fmt.Sprintf("%s Watching, syncing every %s", m.spinner.View(), m.interval)

	body := "waiting for the first sync..."
	if m.last != nil {
		body = fmt.Sprintf("runs: %d, failed: %d\n\n%s", m.runs, m.failed, RenderReport(m.last.Report, m.last.Err))
	}

	return renderPage(title, body, "q: stop watching")
}

func waitForReport(reports <-chan Report) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-reports
		if !ok {
			return watchClosedMsg{}
		}
		return syncDoneMsg{report: r.Report, err: r.Err}
	}
}
