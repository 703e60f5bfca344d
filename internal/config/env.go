// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name, so the local database path
// is read from MELON_STORAGE_DB_DATABASE_URI.
const EnvPrefix = "MELON_"

// parseEnv fills cfg from MELON_* variables following the env and envPrefix
// tags of [StructuredConfig].
func parseEnv(cfg any) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
