package store

import (
	"context"
	"path/filepath"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/migrations"
)

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

// newSQLiteDB opens a fresh SQLite file with both schemas applied.
func newSQLiteDB(t *testing.T) *DB {
	t.Helper()
	ctx := testContext()

	db, err := NewConnectSQLite(ctx, filepath.Join(t.TempDir(), "melon.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.MigrateLocal(ctx))
	require.NoError(t, db.MigrateRemote(ctx))
	return db
}

func newTestLocalDatabase(t *testing.T, opts ...LocalOption) LocalDatabase {
	t.Helper()
	return NewLocalDatabase(newSQLiteDB(t), logger.Nop(), []string{"todos", "users"}, opts...)
}

func newMockDB(t *testing.T, dialect string) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db := &DB{
		DB:                 sqlDB,
		dialect:            dialect,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
	return db, mock
}

func newPostgresMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	return newMockDB(t, migrations.DialectPostgres)
}
