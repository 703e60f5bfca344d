// Package migrations holds the embedded goose migrations of the local
// record database and of the remote document store.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed local/*.sql remote/*.sql
var embedMigrations embed.FS

// Dialects accepted by MigrateRemote.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

const (
	localDir        = "local"
	localTableName  = "goose_local_version"
	remoteDir       = "remote"
	remoteTableName = "goose_remote_version"
)

// goose keeps its settings in package globals.
var mu sync.Mutex

// MigrateLocal applies the local database migrations. The local database is
// always SQLite.
func MigrateLocal(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, DialectSQLite, localDir, localTableName)
}

// MigrateRemote applies the document store migrations using the given
// dialect. Both sets can live in one database since they are versioned in
// separate tables.
func MigrateRemote(ctx context.Context, db *sql.DB, dialect string) error {
	return migrate(ctx, db, dialect, remoteDir, remoteTableName)
}

func migrate(ctx context.Context, db *sql.DB, dialect, dir, table string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetTableName(table)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
