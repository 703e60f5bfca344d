package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-melon-sync/models"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultSyncInterval   = 30 * time.Second
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = 100 * time.Millisecond
	defaultLogLevel       = "info"
	defaultLogMaxSizeMB   = 10
	defaultLogMaxBackups  = 3
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key used by the client to sign document writes.
	HashKey string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the document server address.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file of the local database.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the watch command syncs.
	SyncInterval time.Duration
}

// ClientSync holds the parsed sync settings.
type ClientSync struct {
	Collections []string
	// FieldMaps is keyed by collection, then by local field name.
	FieldMaps map[string]map[string]string
	// ExcludedFields is keyed by collection.
	ExcludedFields map[string][]string
	Direction      models.SyncDirection
	RemoteDSN      string
	MaxRetries     uint64
	RetryBaseDelay time.Duration
}

// ClientLog holds client logger settings.
type ClientLog struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Sync    ClientSync
	Log     ClientLog
}

// GetClientConfig builds and validates a client-specific config view.
//
// Environment variables are applied first, then the overrides (typically
// built from CLI flags), then the JSON file named by either of them.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withConfig(overrides).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	fieldMaps, err := parseFieldMaps(cfg.Sync.FieldMaps)
	if err != nil {
		return nil, err
	}
	excluded, err := parseExcludedFields(cfg.Sync.ExcludedFields)
	if err != nil {
		return nil, err
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: orDuration(cfg.Adapter.RequestTimeout, defaultRequestTimeout),
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{SyncInterval: orDuration(cfg.Workers.SyncInterval, defaultSyncInterval)},
		Sync: ClientSync{
			Collections:    normalizeCollections(cfg.Sync.Collections),
			FieldMaps:      fieldMaps,
			ExcludedFields: excluded,
			Direction:      models.SyncDirection(strings.ToLower(cfg.Sync.Direction)),
			RemoteDSN:      cfg.Sync.RemoteDSN,
			MaxRetries:     cfg.Sync.MaxRetries,
			RetryBaseDelay: orDuration(cfg.Sync.RetryBaseDelay, defaultRetryBaseDelay),
		},
		Log: ClientLog{
			Level:      cfg.Log.Level,
			File:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		},
	}
	if clientCfg.Sync.Direction == "" {
		clientCfg.Sync.Direction = models.DirectionPush
	}
	if clientCfg.Sync.MaxRetries == 0 {
		clientCfg.Sync.MaxRetries = defaultMaxRetries
	}
	if clientCfg.Log.Level == "" {
		clientCfg.Log.Level = defaultLogLevel
	}
	if clientCfg.Log.MaxSizeMB == 0 {
		clientCfg.Log.MaxSizeMB = defaultLogMaxSizeMB
	}
	if clientCfg.Log.MaxBackups == 0 {
		clientCfg.Log.MaxBackups = defaultLogMaxBackups
	}

	return clientCfg, clientCfg.validate()
}

// NewSyncState returns a fresh sync state holding one entry per configured
// collection.
func (cfg *ClientConfig) NewSyncState() models.SyncState {
	state := make(models.SyncState, len(cfg.Sync.Collections))
	for _, name := range cfg.Sync.Collections {
		state[name] = &models.CollectionState{
			FieldMap:       cfg.Sync.FieldMaps[name],
			ExcludedFields: cfg.Sync.ExcludedFields[name],
			Direction:      cfg.Sync.Direction,
		}
	}
	return state
}

// ApplyTo copies the configured mapping and direction onto a persisted state,
// adding missing collections. Engine bookkeeping is kept.
func (cfg *ClientConfig) ApplyTo(state models.SyncState) {
	for name, fresh := range cfg.NewSyncState() {
		existing, ok := state[name]
		if !ok || existing == nil {
			state[name] = fresh
			continue
		}
		existing.FieldMap = fresh.FieldMap
		existing.ExcludedFields = fresh.ExcludedFields
		existing.Direction = fresh.Direction
	}
}

// parseFieldMaps parses "collection.local:remote" entries.
func parseFieldMaps(entries []string) (map[string]map[string]string, error) {
	out := make(map[string]map[string]string)
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		source, remote, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("%w: field map %q is not collection.local:remote", ErrInvalidSyncConfigs, entry)
		}
		collection, local, ok := strings.Cut(source, ".")
		if !ok || collection == "" || local == "" || remote == "" {
			return nil, fmt.Errorf("%w: field map %q is not collection.local:remote", ErrInvalidSyncConfigs, entry)
		}
		if out[collection] == nil {
			out[collection] = make(map[string]string)
		}
		out[collection][local] = remote
	}
	return out, nil
}

// parseExcludedFields parses "collection.field" entries.
func parseExcludedFields(entries []string) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		collection, field, ok := strings.Cut(entry, ".")
		if !ok || collection == "" || field == "" {
			return nil, fmt.Errorf("%w: excluded field %q is not collection.field", ErrInvalidSyncConfigs, entry)
		}
		out[collection] = append(out[collection], field)
	}
	return out, nil
}

func normalizeCollections(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func orDuration(v, def time.Duration) time.Duration {
	if v == 0 {
		return def
	}
	return v
}
