package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-melon-sync/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() models.SyncReport {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.SyncReport{
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
		Collections: []models.CollectionReport{
			{Collection: "todos", Created: 2, Updated: 1},
			{Collection: "users", Deleted: 1, Pulled: 3},
		},
	}
}

func TestRenderReport(t *testing.T) {
	out := RenderReport(sampleReport(), nil)

	assert.Contains(t, out, "todos")
	assert.Contains(t, out, "users")
	assert.Contains(t, out, "took 1.5s")
	assert.Contains(t, out, "sync finished")
}

func TestRenderReport_Error(t *testing.T) {
	out := RenderReport(models.SyncReport{}, errors.New("sync collection todos: push: boom"))

	assert.Contains(t, out, "no collections synced")
	assert.Contains(t, out, "sync failed: sync collection todos: push: boom")
}

func TestRenderRecords(t *testing.T) {
	records := []models.Record{
		{ID: "a", Status: models.StatusSynced, Fields: models.Fields{"text": "todo 1", "done": false}},
		{ID: "b", Status: models.StatusCreated, Fields: models.Fields{"text": "todo 2"}},
	}

	out := RenderRecords("todos", records)

	assert.Contains(t, out, "todos")
	assert.Contains(t, out, "done=false text=todo 1")
	assert.Contains(t, out, "created")
	assert.Contains(t, RenderRecords("users", nil), "no records")
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "abc", fitText("abc", 5))
	assert.Equal(t, "ab...", fitText("abcdefgh", 5))
	assert.Equal(t, "ab", fitText("abcdefgh", 2))
	assert.Equal(t, "abc", fitText("abc", 0))
}

func TestSyncModel_QuitsWithOutcome(t *testing.T) {
	want := sampleReport()
	m := newSyncModel(context.Background(), func(context.Context) (models.SyncReport, error) {
		return want, nil
	})

	msg := runSync(m.ctx, m.syncFn)()
	next, cmd := m.Update(msg)

	result := next.(syncModel)
	assert.False(t, result.running)
	assert.Equal(t, want, result.report)
	assert.NoError(t, result.err)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, result.View())
}

func TestSyncModel_QuitKeyCancelsSync(t *testing.T) {
	m := newSyncModel(context.Background(), func(ctx context.Context) (models.SyncReport, error) {
		<-ctx.Done()
		return models.SyncReport{}, ctx.Err()
	})
	assert.Contains(t, m.View(), "Syncing...")

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	msg := runSync(m.ctx, m.syncFn)().(syncDoneMsg)
	assert.ErrorIs(t, msg.err, context.Canceled)
}

func TestWatchModel(t *testing.T) {
	reports := make(chan Report, 2)
	reports <- Report{Report: sampleReport()}
	reports <- Report{Err: errors.New("remote unavailable")}
	close(reports)

	var m tea.Model = newWatchModel(reports, time.Minute)
	assert.Contains(t, m.View(), "waiting for the first sync")

	for i := 0; i < 2; i++ {
		msg := waitForReport(reports)()
		m, _ = m.Update(msg)
	}

	result := m.(watchModel)
	assert.Equal(t, 2, result.runs)
	assert.Equal(t, 1, result.failed)
	assert.Contains(t, result.View(), "runs: 2, failed: 1")
	assert.Contains(t, result.View(), "remote unavailable")

	_, cmd := m.Update(waitForReport(reports)())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWatchModel_QuitKey(t *testing.T) {
	m := newWatchModel(make(chan Report), time.Second)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.True(t, next.(watchModel).quit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
