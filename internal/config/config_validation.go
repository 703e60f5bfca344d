// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-melon-sync/internal/validators"
	"github.com/MKhiriev/go-melon-sync/models"
)

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Sync.RemoteDSN == "" && (cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0) {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	switch cfg.Sync.Direction {
	case models.DirectionPush, models.DirectionPull, models.DirectionBoth:
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidSyncConfigs, cfg.Sync.Direction)
	}

	known := make(map[string]struct{}, len(cfg.Sync.Collections))
	for _, name := range cfg.Sync.Collections {
		if !validators.IsValidCollectionName(name) {
			return fmt.Errorf("%w: bad collection name %q", ErrInvalidSyncConfigs, name)
		}
		known[name] = struct{}{}
	}
	for name := range cfg.Sync.FieldMaps {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("%w: field map for unsynced collection %q", ErrInvalidSyncConfigs, name)
		}
	}
	for name := range cfg.Sync.ExcludedFields {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("%w: excluded fields for unsynced collection %q", ErrInvalidSyncConfigs, name)
		}
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
