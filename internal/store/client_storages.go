package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-melon-sync/internal/config"
	"github.com/MKhiriev/go-melon-sync/internal/logger"
)

// ClientStorages groups the client-side storages.
type ClientStorages struct {
	// LocalDatabase is the SQLite offline-first record database.
	LocalDatabase LocalDatabase

	db *DB
}

// NewClientStorages initialises the client storage layer:
//  1. Opens a SQLite connection to the file in cfg.DB.DSN, creating the
//     file if it does not yet exist.
//  2. Runs pending local schema migrations.
//  3. Builds a [LocalDatabase] that knows the given collections.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, collections []string, logger *logger.Logger, opts ...LocalOption) (*ClientStorages, error) {
	logger.Debug().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateLocal(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		LocalDatabase: NewLocalDatabase(db, logger, collections, opts...),
		db:            db,
	}, nil
}

// Close closes the local database connection.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
