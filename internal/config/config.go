// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// client and the document server. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the integrity hash key
	// and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the database settings. The client uses it for the local
	// database, the server for the remote document store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings of the document server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client-side settings used to reach the document server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Sync describes which collections are synchronized and how.
	Sync Sync `envPrefix:"SYNC_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via MELON_CONFIG or the --config / -c flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values.
type App struct {
	// HashKey is the HMAC key used for request integrity checking of
	// document writes. Empty disables the check.
	// Env: MELON_APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is the semantic version string of the running application.
	// Exposed via the /api/version/ endpoint.
	// Env: MELON_APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: MELON_SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: MELON_SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for a database backend.
type DB struct {
	// DSN is either a PostgreSQL URL ("postgres://...") or a SQLite file path.
	// Env: MELON_STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds settings of the client transport to the document server.
type Adapter struct {
	// HTTPAddress is the base address of the document server.
	// Env: MELON_ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: MELON_ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the background sync job.
	// Env: MELON_WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Sync lists the synchronized collections.
type Sync struct {
	// Collections are the collection names to synchronize.
	// Env: MELON_SYNC_COLLECTIONS (comma separated)
	Collections []string `env:"COLLECTIONS" envSeparator:","`

	// FieldMaps rename local fields remotely, each entry written as
	// "collection.localField:remoteField".
	// Env: MELON_SYNC_FIELD_MAPS (comma separated)
	FieldMaps []string `env:"FIELD_MAPS" envSeparator:","`

	// ExcludedFields are never written remotely, each entry written as
	// "collection.field".
	// Env: MELON_SYNC_EXCLUDED_FIELDS (comma separated)
	ExcludedFields []string `env:"EXCLUDED_FIELDS" envSeparator:","`

	// RemoteDSN makes the client write straight into a SQL document store
	// instead of going through the document server.
	// Env: MELON_SYNC_REMOTE_DSN
	RemoteDSN string `env:"REMOTE_DSN"`

	// Direction is one of "push", "pull" or "both".
	// Env: MELON_SYNC_DIRECTION
	Direction string `env:"DIRECTION"`

	// MaxRetries is the number of retries of a retryable remote failure.
	// Env: MELON_SYNC_MAX_RETRIES
	MaxRetries uint64 `env:"MAX_RETRIES"`

	// RetryBaseDelay is the first backoff delay between retries.
	// Env: MELON_SYNC_RETRY_BASE_DELAY
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: MELON_LOG_LEVEL
	Level string `env:"LEVEL"`

	// File is the client log file. It is rotated by size.
	// Env: MELON_LOG_FILE
	File string `env:"FILE"`

	// MaxSizeMB is the size at which the log file is rotated.
	// Env: MELON_LOG_MAX_SIZE_MB
	MaxSizeMB int `env:"MAX_SIZE_MB"`

	// MaxBackups is the number of rotated files kept.
	// Env: MELON_LOG_MAX_BACKUPS
	MaxBackups int `env:"MAX_BACKUPS"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (last source wins for non-zero
// fields):
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
