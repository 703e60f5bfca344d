package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllGroups(t *testing.T) {
	t.Setenv("MELON_APP_HASH_KEY", "secret")
	t.Setenv("MELON_STORAGE_DB_DATABASE_URI", "postgres://u:p@localhost/db")
	t.Setenv("MELON_SERVER_ADDRESS", "0.0.0.0:8080")
	t.Setenv("MELON_SERVER_REQUEST_TIMEOUT", "15s")
	t.Setenv("MELON_ADAPTER_ADDRESS", "http://localhost:8080")
	t.Setenv("MELON_WORKERS_SYNC_INTERVAL", "1m")
	t.Setenv("MELON_SYNC_COLLECTIONS", "todos,users")
	t.Setenv("MELON_SYNC_FIELD_MAPS", "users.text:name")
	t.Setenv("MELON_SYNC_DIRECTION", "both")
	t.Setenv("MELON_SYNC_MAX_RETRIES", "5")
	t.Setenv("MELON_LOG_LEVEL", "debug")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "secret", cfg.App.HashKey)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, []string{"todos", "users"}, cfg.Sync.Collections)
	assert.Equal(t, []string{"users.text:name"}, cfg.Sync.FieldMaps)
	assert.Equal(t, "both", cfg.Sync.Direction)
	assert.Equal(t, uint64(5), cfg.Sync.MaxRetries)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("MELON_SERVER_REQUEST_TIMEOUT", "soon")

	err := parseEnv(&StructuredConfig{})
	assert.Error(t, err)
}
