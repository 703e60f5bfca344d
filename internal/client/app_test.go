package client

import (
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-melon-sync/internal/config"
	myHTTP "github.com/MKhiriev/go-melon-sync/internal/handler/http"
	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/service"
	"github.com/MKhiriev/go-melon-sync/internal/store"
	"github.com/MKhiriev/go-melon-sync/internal/tui"
	"github.com/MKhiriev/go-melon-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "client-test-key"

func newTestConfig(t *testing.T) *config.ClientConfig {
	t.Helper()

	cfg := &config.ClientConfig{}
	cfg.Storage.DB.DSN = filepath.Join(t.TempDir(), "local.db")
	cfg.Adapter.RequestTimeout = 5 * time.Second
	cfg.App.HashKey = testHashKey
	cfg.Workers.SyncInterval = 20 * time.Millisecond
	cfg.Sync = config.ClientSync{
		Collections:    []string{"todos", "users"},
		FieldMaps:      map[string]map[string]string{"users": {"text": "name"}},
		Direction:      models.DirectionPush,
		MaxRetries:     1,
		RetryBaseDelay: time.Millisecond,
	}
	return cfg
}

// openRemote opens a document store on a fresh SQLite file and returns its
// DSN too.
func openRemote(t *testing.T) (string, *store.Storages) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "remote.db")
	storages, err := store.NewStorages(context.Background(), dsn, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })
	return dsn, storages
}

// startServer serves the document API over a fresh SQLite document store.
func startServer(t *testing.T) (string, store.DocumentStore) {
	t.Helper()

	_, storages := openRemote(t)

	serverCfg := &config.ServerConfig{App: config.App{HashKey: testHashKey, Version: "1.4.0"}}
	services, err := service.NewServices(storages.DocumentStore, serverCfg, logger.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(myHTTP.NewHandler(services, testHashKey, logger.Nop()).Init())
	t.Cleanup(srv.Close)
	return srv.URL, storages.DocumentStore
}

func newTestApp(t *testing.T, cfg *config.ClientConfig) *App {
	t.Helper()

	ui := tui.New(strings.NewReader(""), io.Discard, logger.Nop())
	app, err := NewApp(context.Background(), cfg, ui, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestApp_SyncThroughDocumentServer(t *testing.T) {
	ctx := context.Background()
	url, remote := startServer(t)

	cfg := newTestConfig(t)
	cfg.Adapter.HTTPAddress = url
	app := newTestApp(t, cfg)

	todo, err := app.Records().Create(ctx, "todos", models.Fields{"text": "todo 1"})
	require.NoError(t, err)
	_, err = app.Records().Create(ctx, "users", models.Fields{"text": "some user name"})
	require.NoError(t, err)

	report, err := app.Sync(ctx)
	require.NoError(t, err)
	require.Len(t, report.Collections, 2)
	assert.Equal(t, 1, report.Collections[0].Created)

	doc, err := remote.GetDocument(ctx, "todos", todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "todo 1", doc.Data["text"])

	users, err := remote.GetDocuments(ctx, "users")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "some user name", users[0].Data["name"])
	assert.NotContains(t, users[0].Data, "text")

	version, err := app.ServerVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", version)
}

func TestApp_SyncRejectedWithWrongHashKey(t *testing.T) {
	ctx := context.Background()
	url, remote := startServer(t)

	cfg := newTestConfig(t)
	cfg.Adapter.HTTPAddress = url
	cfg.App.HashKey = "wrong-key"
	app := newTestApp(t, cfg)

	_, err := app.Records().Create(ctx, "todos", models.Fields{"text": "todo 1"})
	require.NoError(t, err)

	_, err = app.Sync(ctx)
	require.ErrorIs(t, err, service.ErrIntegrityCheckFailed)

	docs, err := remote.GetDocuments(ctx, "todos")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestApp_SyncIntoSQLStorePersistsState(t *testing.T) {
	ctx := context.Background()
	dsn, remote := openRemote(t)

	cfg := newTestConfig(t)
	cfg.Sync.RemoteDSN = dsn
	app := newTestApp(t, cfg)

	first, err := app.Records().Create(ctx, "todos", models.Fields{"text": "todo 1"})
	require.NoError(t, err)
	second, err := app.Records().Create(ctx, "todos", models.Fields{"text": "todo 2"})
	require.NoError(t, err)

	_, err = app.Sync(ctx)
	require.NoError(t, err)

	require.NoError(t, app.Records().Delete(ctx, "todos", second.ID))
	report, err := app.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Collections[0].Deleted)

	docs, err := remote.DocumentStore.GetDocuments(ctx, "todos")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	byID := map[string]models.Document{docs[0].ID: docs[0], docs[1].ID: docs[1]}
	assert.False(t, byID[first.ID].IsDeleted)
	assert.True(t, byID[second.ID].IsDeleted)
	assert.Equal(t, "todo 2", byID[second.ID].Data["text"])

	state, err := app.local.LoadSyncState(ctx)
	require.NoError(t, err)
	require.Contains(t, state, "todos")
	assert.NotEmpty(t, state["todos"].SessionID)
	assert.Equal(t, int64(3), state["todos"].Pushed)

	version, err := app.ServerVersion(ctx)
	require.NoError(t, err)
	assert.Empty(t, version)
}

func TestApp_WatchSyncsUntilCancelled(t *testing.T) {
	dsn, remote := openRemote(t)

	cfg := newTestConfig(t)
	cfg.Sync.RemoteDSN = dsn
	app := newTestApp(t, cfg)

	_, err := app.Records().Create(context.Background(), "todos", models.Fields{"text": "watched"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	require.NoError(t, app.Watch(ctx))

	docs, err := remote.DocumentStore.GetDocuments(context.Background(), "todos")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "watched", docs[0].Data["text"])
}

func TestNewApp_InvalidLocalPath(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Storage.DB.DSN = filepath.Join(t.TempDir(), "missing", "\x00", "local.db")

	_, err := NewApp(context.Background(), cfg, nil, logger.Nop())
	assert.Error(t, err)
}
