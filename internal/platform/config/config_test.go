package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LEDGER_TIMEZONE", "UTC")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, "default", cfg.LedgerID)
	assert.Equal(t, 30, cfg.SnapshotWindowDays)
	assert.Equal(t, "0 0 * * *", cfg.SnapshotCron)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "File")
	t.Setenv("LEDGER_ID", "household")
	t.Setenv("LEDGER_TIMEZONE", "UTC")
	t.Setenv("SNAPSHOT_WINDOW_DAYS", "-3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreFile, cfg.StoreDriver)
	assert.Equal(t, "household", cfg.LedgerID)
	assert.Equal(t, 30, cfg.SnapshotWindowDays, "invalid window falls back to the default")
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv("LEDGER_TIMEZONE", "UTC")

	t.Setenv("STORE_DRIVER", "sqlite")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "STORE_DRIVER")

	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("PGSQL_URL", "")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "PGSQL_URL")

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LEDGER_TIMEZONE", "Mars/Olympus_Mons")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "LEDGER_TIMEZONE")
}
