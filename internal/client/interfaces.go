// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-melon-sync/internal/service"
	"github.com/MKhiriev/go-melon-sync/models"
)

// Client is the runtime behind the melon commands.
type Client interface {
	// Records manages local records.
	Records() service.ClientRecordService

	// Sync runs one sync of the configured collections and persists the
	// sync state, also after a failed run.
	Sync(ctx context.Context) (models.SyncReport, error)

	// Watch syncs periodically and shows every outcome until ctx is done or
	// the user quits.
	Watch(ctx context.Context) error

	// ServerVersion asks the document server for its version. It is empty
	// when the client writes straight into a SQL document store.
	ServerVersion(ctx context.Context) (string, error)

	// Close releases the local and remote connections.
	Close() error
}
