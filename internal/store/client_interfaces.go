package store

import (
	"context"

	"github.com/MKhiriev/go-melon-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/local_database_mock.go -package=mock

// LocalDatabase is the offline-first record database of the client.
type LocalDatabase interface {
	// Collections returns the names of the known collections, sorted.
	Collections() []string

	// Collection returns a handle for a known collection or
	// ErrUnknownCollection.
	Collection(name string) (*Collection, error)

	// Write runs action inside a single transaction. Create, Update and
	// MarkAsDeleted are only available through the Writer.
	Write(ctx context.Context, action func(w Writer) error) error

	// Query returns the records of a collection that are not soft-deleted.
	Query(ctx context.Context, collection string) ([]models.Record, error)

	// Find returns ErrRecordNotFound for unknown or soft-deleted records.
	Find(ctx context.Context, collection, id string) (models.Record, error)

	// PendingChanges returns the records that carry unpushed changes,
	// soft-deleted ones included.
	PendingChanges(ctx context.Context, collection string) ([]models.Record, error)

	// MarkSynced clears the pending status of pushed records whose version is
	// unchanged. Pushed deletions are destroyed. It returns the number of
	// records settled.
	MarkSynced(ctx context.Context, collection string, records ...models.Record) (int, error)

	// ApplyRemoteChanges writes pulled records as synced. Records with status
	// deleted are destroyed. Local records with pending changes are left
	// untouched and counted as skipped.
	ApplyRemoteChanges(ctx context.Context, collection string, records ...models.Record) (applied, skipped int, err error)

	// LoadSyncState returns the persisted sync state, empty when none was saved.
	LoadSyncState(ctx context.Context) (models.SyncState, error)

	// SaveSyncState persists every entry of state.
	SaveSyncState(ctx context.Context, state models.SyncState) error
}

// Writer performs mutations inside a LocalDatabase.Write action.
type Writer interface {
	Create(collection string, fields models.Fields) (models.Record, error)
	Update(collection, id string, fields models.Fields) (models.Record, error)
	MarkAsDeleted(collection, id string) error
}
