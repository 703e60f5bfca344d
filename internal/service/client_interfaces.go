package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_services_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-melon-sync/models"
)

// ClientSyncService reconciles the local database with a remote document
// store.
type ClientSyncService interface {
	// Sync pushes pending local changes of every collection in state and,
	// for collections that pull, applies documents written by other sessions.
	// Entries of state are updated in place, so passing the same state to the
	// next call processes only the delta since this one.
	Sync(ctx context.Context, state models.SyncState) error

	// SyncWithReport is Sync returning per-collection counters. On error the
	// report covers the collections handled before the failure.
	SyncWithReport(ctx context.Context, state models.SyncState) (models.SyncReport, error)
}

// ClientRecordService manages local records on behalf of the CLI. Every
// mutation runs in its own write action and stays pending until the next
// sync.
type ClientRecordService interface {
	Create(ctx context.Context, collection string, fields models.Fields) (models.Record, error)
	Get(ctx context.Context, collection, id string) (models.Record, error)
	List(ctx context.Context, collection string) ([]models.Record, error)
	Update(ctx context.Context, collection, id string, fields models.Fields) (models.Record, error)
	Delete(ctx context.Context, collection, id string) error
}

// ClientSyncJob defines the contract for a background sync worker that
// periodically syncs a state and persists it.
type ClientSyncJob interface {
	// Start syncs once right away, then every interval, defaulting to 30
	// seconds if interval is zero or negative. Any previously running job is
	// stopped before the new one begins.
	Start(ctx context.Context, state models.SyncState, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
