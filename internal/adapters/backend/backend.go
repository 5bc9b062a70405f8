// Package backend opens the key-value store selected by configuration.
package backend

import (
	"fmt"

	"roadtrack/internal/adapters/filesystem"
	"roadtrack/internal/adapters/memory"
	"roadtrack/internal/adapters/sqlite"
	"roadtrack/internal/config"
	"roadtrack/internal/ports"
)

// Open returns the store for cfg.Backend
func Open(cfg config.Config) (ports.KeyValueStore, error) {
	switch cfg.Backend {
	case config.BackendSQLite, config.BackendSQLite3:
		driver := sqlite.DriverPure
		if cfg.Backend == config.BackendSQLite3 {
			driver = sqlite.DriverCgo
		}
		kv, err := sqlite.Open(cfg.DatabasePath(), driver)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case config.BackendFile:
		kv, err := filesystem.NewKV(cfg.StoreDir())
		if err != nil {
			return nil, err
		}
		return kv, nil
	case config.BackendMemory:
		return memory.NewKV(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
