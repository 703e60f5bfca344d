package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/migrations"
)

// DB is a database connection paired with the error classifier of its
// driver.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens a Postgres connection for postgres:// and postgresql://
// DSNs and a SQLite connection for anything else.
func NewConnect(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	if isPostgresDSN(dsn) {
		return NewConnectPostgres(ctx, dsn, log)
	}
	return NewConnectSQLite(ctx, dsn, log)
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Dialect returns the migration dialect of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}

// MigrateLocal creates the local record tables.
func (db *DB) MigrateLocal(ctx context.Context) error {
	return migrations.MigrateLocal(ctx, db.DB)
}

// MigrateRemote creates the document store tables.
func (db *DB) MigrateRemote(ctx context.Context) error {
	return migrations.MigrateRemote(ctx, db.DB, db.dialect)
}

// IsRetryable reports whether err is a transient failure of this connection.
func (db *DB) IsRetryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}
