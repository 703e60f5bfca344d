package service

import (
	"github.com/MKhiriev/go-melon-sync/internal/config"
	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/store"
)

type ClientServices struct {
	RecordService ClientRecordService
	SyncService   ClientSyncService
}

// NewClientServices wires the client services around a local database and a
// remote document store, which is either the HTTP adapter or a SQL store.
func NewClientServices(local store.LocalDatabase, remote store.DocumentStore, cfg config.ClientSync, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		RecordService: NewClientRecordService(local, logger),
		SyncService: NewClientSyncService(local, remote, nil, logger,
			WithMaxRetries(cfg.MaxRetries),
			WithRetryBaseDelay(cfg.RetryBaseDelay),
		),
	}
}
