// Package bootstrap wires configuration, logging and storage into a loaded
// application state for the roadtrack binaries.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"roadtrack/internal/adapters/backend"
	"roadtrack/internal/application"
	"roadtrack/internal/config"
	"roadtrack/internal/logging"
	"roadtrack/internal/ports"
)

// Overrides are command-line values that win over file and environment
type Overrides struct {
	Home      string
	Backend   string
	ExportDir string
	Verbose   bool
	// LogToFile sends logs to <home>/roadtrack.log instead of stderr
	LogToFile bool
}

// Runtime holds everything a binary needs to serve requests
type Runtime struct {
	Config config.Config
	Logger *zap.Logger
	Store  ports.KeyValueStore
	State  *application.State
}

// Start resolves configuration, opens the store and loads the state
func Start(ctx context.Context, o Overrides) (*Runtime, error) {
	cfg, err := config.Load(func(key string) string {
		if key == config.EnvHome && o.Home != "" {
			return o.Home
		}
		return os.Getenv(key)
	})
	if err != nil {
		return nil, err
	}
	if o.Backend != "" {
		cfg.Backend = config.Backend(o.Backend)
	}
	if o.ExportDir != "" {
		cfg.ExportDir = config.ExpandHome(o.ExportDir)
	}
	cfg.Verbose = cfg.Verbose || o.Verbose
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logOpts := logging.Options{Verbose: cfg.Verbose}
	if o.LogToFile {
		logOpts.Path = cfg.LogPath()
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	store, err := backend.Open(cfg)
	if err != nil {
		logging.Sync(logger)
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	logger.Debug("store opened",
		zap.String("backend", string(cfg.Backend)),
		zap.String("home", cfg.Home),
		zap.String("config", cfg.Source))

	state := application.NewState(store, application.WithLogger(logger))
	if err := state.Load(ctx); err != nil {
		store.Close()
		logging.Sync(logger)
		return nil, err
	}

	return &Runtime{Config: cfg, Logger: logger, Store: store, State: state}, nil
}

// Close releases the store and flushes the logger
func (r *Runtime) Close() error {
	if r == nil {
		return nil
	}
	err := r.Store.Close()
	logging.Sync(r.Logger)
	return err
}
