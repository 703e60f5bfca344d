package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
)

// Storages groups the document server repositories.
type Storages struct {
	DocumentStore DocumentStore

	db *DB
}

// NewStorages connects to the document store database (Postgres or SQLite,
// chosen by the DSN), migrates it and builds the repositories.
func NewStorages(ctx context.Context, dsn string, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnect(ctx, dsn, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.MigrateRemote(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		DocumentStore: NewDocumentRepository(db, logger),
		db:            db,
	}, nil
}

// IsRetryable reports whether err is a transient failure of the connection.
func (s *Storages) IsRetryable(err error) bool {
	return s.db.IsRetryable(err)
}

// Close closes the underlying connection.
func (s *Storages) Close() error {
	return s.db.Close()
}
