package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
	"github.com/SscSPs/cashkeeper/internal/core/services"
	"github.com/SscSPs/cashkeeper/internal/platform/config"
	"github.com/SscSPs/cashkeeper/internal/platform/feed"
	"github.com/SscSPs/cashkeeper/internal/repositories/database/pgsql"
	"github.com/SscSPs/cashkeeper/internal/repositories/memory"
	"github.com/SscSPs/cashkeeper/pkg/database"
)

var (
	runMigrations       = pgsql.RunMigrations
	migrationRetryDelay = time.Second
	migrationRetryMax   = 30 * time.Second
)

// Ledger is an opened store with the services running on top of it.
type Ledger struct {
	Repos    portsrepo.RepositoryProvider
	Services *portssvc.ServiceContainer
	// Listener relays changes from other processes. Only set for the postgres driver.
	Listener *pgsql.Listener
}

// Close releases the store.
func (l *Ledger) Close() {
	if l.Repos.Close != nil {
		l.Repos.Close()
	}
}

// Open connects to the store selected by cfg.StoreDriver, running migrations for postgres,
// and builds the service container.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Ledger, error) {
	hub := feed.NewHub(feed.DefaultBuffer)
	ledger := &Ledger{}

	switch cfg.StoreDriver {
	case config.StorePostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, fmt.Errorf("initialize database pool: %w", err)
		}
		if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			if cfg.EnableDBCheck {
				database.ClosePgxPool(dbPool)
				return nil, fmt.Errorf("run migrations: %w", err)
			}
			// Without the startup check the service comes up degraded and migrates once the
			// database answers.
			logger.Warn("Database not ready, retrying migrations in the background", slog.String("error", err.Error()))
			go retryMigrations(ctx, cfg, logger)
		}
		ledger.Repos, ledger.Listener = pgsql.NewRepositoryProvider(dbPool, cfg.LedgerID, hub, logger)
		logger.Info("Database connection pool established.")

	case config.StoreFile:
		store, err := memory.OpenFile(cfg.LedgerID, cfg.LedgerFile, hub)
		if err != nil {
			return nil, fmt.Errorf("open ledger file: %w", err)
		}
		ledger.Repos = memory.NewRepositoryProvider(store)
		logger.Info("Ledger file opened", slog.String("path", cfg.LedgerFile))

	case config.StoreMemory:
		ledger.Repos = memory.NewRepositoryProvider(memory.NewInMemory(cfg.LedgerID, hub))
		logger.Warn("Using the in-memory store; the ledger is lost on exit")

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	ledger.Services = services.NewServiceContainer(ledger.Repos, services.ContainerOptions{
		Location:           cfg.Location,
		SnapshotWindowDays: cfg.SnapshotWindowDays,
	})
	return ledger, nil
}

// retryMigrations keeps applying migrations with backoff until they succeed or ctx ends.
func retryMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) {
	delay := migrationRetryDelay
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		if err == nil {
			logger.Info("Deferred database migrations applied")
			return
		}
		delay = min(delay*2, migrationRetryMax)
		logger.Warn("Migrations still failing", slog.String("error", err.Error()), slog.Duration("retry_in", delay))
	}
}
