package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/SscSPs/cashkeeper/internal/dto"
	"github.com/SscSPs/cashkeeper/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		StoreDriver:        driver,
		LedgerID:           "home",
		Location:           time.UTC,
		SnapshotWindowDays: 30,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_FileStoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.StoreFile)
	cfg.LedgerFile = filepath.Join(t.TempDir(), "ledger.json")

	ledger, err := Open(ctx, cfg, discardLogger())
	require.NoError(t, err)
	assert.Nil(t, ledger.Listener)

	amount := decimal.NewFromInt(500)
	_, err = ledger.Services.Ledger.AddCash(ctx, dto.AddCashRequest{Amount: &amount, Source: domain.SourceSalary})
	require.NoError(t, err)
	ledger.Close()

	reopened, err := Open(ctx, cfg, discardLogger())
	require.NoError(t, err)
	defer reopened.Close()

	acc, err := reopened.Services.Ledger.GetCashAccount(ctx)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(amount))
	assert.Equal(t, domain.SyncOnline, reopened.Services.Sync.State().Status)
}

func TestOpen_MemoryStore(t *testing.T) {
	ledger, err := Open(context.Background(), testConfig(config.StoreMemory), discardLogger())
	require.NoError(t, err)
	defer ledger.Close()

	assert.NotNil(t, ledger.Services.Ledger)
	assert.NotNil(t, ledger.Services.Reporting)
	assert.NotNil(t, ledger.Services.Sync)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), testConfig("sqlite"), discardLogger())
	assert.ErrorContains(t, err, "unknown store driver")

	_, err = Open(context.Background(), testConfig(config.StorePostgres), discardLogger())
	assert.ErrorContains(t, err, "database URL cannot be empty")
}

func TestOpen_PostgresMigratesInBackgroundWithoutStartupCheck(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig(config.StorePostgres)
	cfg.DatabaseURL = "postgres://cashkeeper@127.0.0.1:1/cashkeeper?sslmode=disable"
	cfg.MigrationsPath = "file://migrations"

	migrated := make(chan struct{})
	calls := 0
	origRun, origDelay := runMigrations, migrationRetryDelay
	runMigrations = func(string, string, *slog.Logger) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		close(migrated)
		return nil
	}
	migrationRetryDelay = time.Millisecond
	t.Cleanup(func() { runMigrations, migrationRetryDelay = origRun, origDelay })

	ledger, err := Open(ctx, cfg, discardLogger())
	require.NoError(t, err, "an unreachable database only degrades the service")
	defer ledger.Close()
	assert.NotNil(t, ledger.Listener)

	select {
	case <-migrated:
	case <-time.After(5 * time.Second):
		t.Fatal("migrations were not retried")
	}
	assert.Equal(t, 3, calls)
}

func TestOpen_PostgresStartupCheckFailsFast(t *testing.T) {
	cfg := testConfig(config.StorePostgres)
	cfg.DatabaseURL = "postgres://cashkeeper@127.0.0.1:1/cashkeeper?sslmode=disable&connect_timeout=1"
	cfg.EnableDBCheck = true

	_, err := Open(context.Background(), cfg, discardLogger())
	assert.ErrorContains(t, err, "failed to ping database")
}
