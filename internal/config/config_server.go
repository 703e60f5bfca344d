package config

import (
	"fmt"
	"time"
)

// ServerConfig is the document server view of [StructuredConfig].
type ServerConfig struct {
	App    App
	Server struct {
		HTTPAddress    string
		RequestTimeout time.Duration
	}
	Storage struct {
		DSN string
	}
	Log struct {
		Level string
	}
}

// GetServerConfig loads env, flags from args and the JSON file, and returns
// the validated server config.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newServerConfig(cfg)
}

func newServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{}
	serverCfg.App.HashKey = cfg.App.HashKey
	serverCfg.App.Version = cfg.App.Version
	serverCfg.Server.HTTPAddress = cfg.Server.HTTPAddress
	serverCfg.Server.RequestTimeout = orDuration(cfg.Server.RequestTimeout, defaultRequestTimeout)
	serverCfg.Storage.DSN = cfg.Storage.DB.DSN
	serverCfg.Log.Level = cfg.Log.Level
	if serverCfg.Log.Level == "" {
		serverCfg.Log.Level = defaultLogLevel
	}

	return serverCfg, serverCfg.validate()
}
