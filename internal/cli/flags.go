package cli

import (
	"time"

	"github.com/MKhiriev/go-melon-sync/internal/config"
	"github.com/spf13/pflag"
)

// globalFlags are the persistent flags of the root command. Zero values
// leave the setting to the environment or the JSON file.
type globalFlags struct {
	configPath     string
	localDB        string
	server         string
	requestTimeout time.Duration
	hashKey        string
	remoteDSN      string
	collections    []string
	fieldMaps      []string
	excluded       []string
	direction      string
	interval       time.Duration
	maxRetries     uint64
	logLevel       string
	logFile        string
	plain          bool
}

func (f *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configPath, "config", "c", "", "JSON config file path")
	fs.StringVarP(&f.localDB, "db", "d", "", "local SQLite database file")
	fs.StringVarP(&f.server, "server", "s", "", "document server address")
	fs.DurationVar(&f.requestTimeout, "request-timeout", 0, "timeout of a request to the document server")
	fs.StringVar(&f.hashKey, "hash-key", "", "HMAC key signing document uploads")
	fs.StringVar(&f.remoteDSN, "remote-dsn", "", "write straight into a SQL document store (postgres URL or SQLite file)")
	fs.StringSliceVar(&f.collections, "collections", nil, "collections to sync")
	fs.StringSliceVar(&f.fieldMaps, "field-map", nil, "field renaming as collection.local:remote")
	fs.StringSliceVar(&f.excluded, "exclude", nil, "fields never written remotely as collection.field")
	fs.StringVar(&f.direction, "direction", "", "sync direction: push, pull or both")
	fs.DurationVar(&f.interval, "interval", 0, "period of watch syncs")
	fs.Uint64Var(&f.maxRetries, "max-retries", 0, "retries of a transient remote failure")
	fs.StringVar(&f.logLevel, "log-level", "", "log level")
	fs.StringVar(&f.logFile, "log-file", "", "log file, rotated by size")
	fs.BoolVar(&f.plain, "plain", false, "print plain output without the interactive view")
}

func (f *globalFlags) overrides() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{HashKey: f.hashKey},
		Storage: config.Storage{
			DB: config.DB{DSN: f.localDB},
		},
		Adapter: config.Adapter{
			HTTPAddress:    f.server,
			RequestTimeout: f.requestTimeout,
		},
		Workers: config.Workers{SyncInterval: f.interval},
		Sync: config.Sync{
			Collections:    f.collections,
			FieldMaps:      f.fieldMaps,
			ExcludedFields: f.excluded,
			RemoteDSN:      f.remoteDSN,
			Direction:      f.direction,
			MaxRetries:     f.maxRetries,
		},
		Log: config.Log{
			Level: f.logLevel,
			File:  f.logFile,
		},
		JSONFilePath: f.configPath,
	}
}
