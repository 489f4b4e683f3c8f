package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/homegarden/gardenpages/internal/config"
	"github.com/homegarden/gardenpages/internal/db"
	"github.com/homegarden/gardenpages/internal/telemetry"
)

// loadConfig loads and validates the config, providing a user-friendly error.
// The process logger is rebuilt from the loaded log settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `gardenpages init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}

	l, err := newLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if logger != nil {
		_ = logger.Sync()
	}
	logger = l
	return cfg, nil
}

// openTelemetry opens the failure database when telemetry is enabled. The
// returned store is nil when it is disabled; close is always safe to call.
func openTelemetry(cfg *config.Config) (store *telemetry.Store, close func(), err error) {
	if !cfg.Telemetry.Enabled {
		return nil, func() {}, nil
	}
	database, err := db.Open(cfg.Telemetry.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening telemetry database: %w", err)
	}
	logger.Debug("telemetry database opened", zap.String("path", database.Path()))
	return telemetry.NewStore(database), func() { database.Close() }, nil
}
