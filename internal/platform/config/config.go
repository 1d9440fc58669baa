package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StorePostgres = "postgres"
	StoreFile     = "file"
	StoreMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	// Ledger
	StoreDriver        string
	LedgerID           string
	LedgerFile         string
	TimezoneName       string
	Location           *time.Location
	SnapshotWindowDays int

	// Scheduled jobs, in robfig/cron syntax
	SnapshotCron      string
	SyncProbeSchedule string

	// HTTP surface
	RateLimit       string `mapstructure:"RATE_LIMIT"` // ulule/limiter format, e.g. "120-M"
	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`
	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`

	LogLevel slog.Level
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("STORE_DRIVER", StoreFile)
	viper.SetDefault("LEDGER_ID", "default")
	viper.SetDefault("LEDGER_FILE", "data/ledger.json")
	viper.SetDefault("LEDGER_TIMEZONE", "Local")
	viper.SetDefault("SNAPSHOT_WINDOW_DAYS", 30)
	viper.SetDefault("SNAPSHOT_CRON", "0 0 * * *")
	viper.SetDefault("SYNC_PROBE_SCHEDULE", "@every 30s")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("LOG_LEVEL", "info")

	// Environment variables override .env values, which override the defaults above.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(viper.GetString("STORE_DRIVER")))
	switch cfg.StoreDriver {
	case StorePostgres, StoreFile, StoreMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: expected %s, %s or %s", cfg.StoreDriver, StorePostgres, StoreFile, StoreMemory)
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" && cfg.StoreDriver == StorePostgres {
		return nil, fmt.Errorf("PGSQL_URL must be set when STORE_DRIVER is %s", StorePostgres)
	}

	cfg.LedgerID = strings.TrimSpace(viper.GetString("LEDGER_ID"))
	if cfg.LedgerID == "" {
		cfg.LedgerID = "default"
		log.Println("Warning: LEDGER_ID is empty. Using \"default\".")
	}
	cfg.LedgerFile = viper.GetString("LEDGER_FILE")

	cfg.TimezoneName = viper.GetString("LEDGER_TIMEZONE")
	loc, err := time.LoadLocation(cfg.TimezoneName)
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_TIMEZONE %q: %w", cfg.TimezoneName, err)
	}
	cfg.Location = loc

	cfg.SnapshotWindowDays = viper.GetInt("SNAPSHOT_WINDOW_DAYS")
	if cfg.SnapshotWindowDays <= 0 {
		cfg.SnapshotWindowDays = 30
		log.Printf("Warning: Invalid value for SNAPSHOT_WINDOW_DAYS. Defaulting to %d.\n", cfg.SnapshotWindowDays)
	}

	cfg.SnapshotCron = viper.GetString("SNAPSHOT_CRON")
	cfg.SyncProbeSchedule = viper.GetString("SYNC_PROBE_SCHEDULE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	levelStr := viper.GetString("LOG_LEVEL")
	if err := cfg.LogLevel.UnmarshalText([]byte(levelStr)); err != nil {
		cfg.LogLevel = slog.LevelInfo
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", levelStr)
	}

	return cfg, nil
}
