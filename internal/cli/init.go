// Package cli provides the shared wiring and terminal output used by the
// despesas commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"despesas/internal/backend"
	"despesas/internal/categories"
	"despesas/internal/config"
	"despesas/internal/ledger"
	"despesas/internal/log"
	"despesas/internal/services"
	"despesas/internal/storage"
)

// SetupLogger builds the application logger from configuration and installs
// it as the slog default.
func SetupLogger(cfg *config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logCfg := log.DefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.LogFormat
	logger := log.New(logCfg)
	log.SetDefault(logger)
	return logger, nil
}

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// LoadAndValidateConfig loads configuration from the environment, applies
// the overrides in order and validates the result.
func LoadAndValidateConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	for _, apply := range overrides {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App bundles the ledger with the resources that must be released on exit.
type App struct {
	Ledger  *services.Ledger
	cleanup backend.CleanupFunc
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}

// OpenLedger opens the configured storage slot, loads the saved expenses and
// seeds the categories.
func OpenLedger(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	factory := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger)
	res, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, err
	}

	expenses := ledger.Open(ctx,
		storage.NewExpenseAdapter(res.Slot, cfg.StorageKey),
		ledger.WithLogger(logger.WithComponent(log.ComponentLedger).Logger),
	)

	catOpts := []categories.Option{
		categories.WithLogger(logger.WithComponent(log.ComponentCategories).Logger),
	}
	if cfg.PersistCategories {
		catOpts = append(catOpts, categories.WithPersister(storage.NewCategoryAdapter(res.Slot, cfg.CategoryStorageKey)))
	}
	cats := categories.New(ctx, cfg.Categories, catOpts...)

	logger.InfoContext(ctx, "Ledger opened",
		log.FieldBackend, backendCfg.Type.String(),
		"expenses", expenses.Len(),
		"categories", len(cats.List()),
	)

	return &App{
		Ledger:  services.NewLedger(expenses, cats, cfg.Payers, logger.WithComponent(log.ComponentLedger).Logger),
		cleanup: res.Cleanup,
	}, nil
}
