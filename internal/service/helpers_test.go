package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/store"
	"github.com/MKhiriev/go-melon-sync/models"
)

var testCollections = []string{"todos", "users"}

// stepClock advances by one second on every reading.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func openSQLite(t *testing.T, name string) *store.DB {
	t.Helper()
	db, err := store.NewConnectSQLite(context.Background(), filepath.Join(t.TempDir(), name), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newLocal(t *testing.T) store.LocalDatabase {
	t.Helper()
	db := openSQLite(t, "local.db")
	require.NoError(t, db.MigrateLocal(context.Background()))
	return store.NewLocalDatabase(db, logger.Nop(), testCollections)
}

func newRemote(t *testing.T) store.DocumentStore {
	t.Helper()
	db := openSQLite(t, "remote.db")
	require.NoError(t, db.MigrateRemote(context.Background()))
	return store.NewDocumentRepository(db, logger.Nop())
}

func create(t *testing.T, local store.LocalDatabase, collection string, fields models.Fields) models.Record {
	t.Helper()
	var record models.Record
	err := local.Write(context.Background(), func(w store.Writer) error {
		var err error
		record, err = w.Create(collection, fields)
		return err
	})
	require.NoError(t, err)
	return record
}

func update(t *testing.T, local store.LocalDatabase, collection, id string, fields models.Fields) {
	t.Helper()
	err := local.Write(context.Background(), func(w store.Writer) error {
		_, err := w.Update(collection, id, fields)
		return err
	})
	require.NoError(t, err)
}

func markDeleted(t *testing.T, local store.LocalDatabase, collection, id string) {
	t.Helper()
	err := local.Write(context.Background(), func(w store.Writer) error {
		return w.MarkAsDeleted(collection, id)
	})
	require.NoError(t, err)
}

// documentsByID returns the remote documents of a collection keyed by id.
func documentsByID(t *testing.T, remote store.DocumentStore, collection string) map[string]models.Document {
	t.Helper()
	docs, err := remote.GetDocuments(context.Background(), collection)
	require.NoError(t, err)

	byID := make(map[string]models.Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}
	return byID
}
