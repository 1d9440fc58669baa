package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/cashkeeper/internal/handlers"
	"github.com/SscSPs/cashkeeper/internal/middleware"
	"github.com/SscSPs/cashkeeper/internal/platform/bootstrap"
	"github.com/SscSPs/cashkeeper/internal/platform/config"
	"github.com/SscSPs/cashkeeper/internal/platform/scheduler"
	"github.com/SscSPs/cashkeeper/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const shutdownTimeout = 10 * time.Second

// @title Cashkeeper API
// @version 1.0
// @description Personal ledger with a physical cash account, daily snapshots and reconciliation.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer ledger.Close()
	svc := ledger.Services

	if ledger.Listener != nil {
		go ledger.Listener.Run(ctx)
	}

	// Bootstrap today's row up front; a failure only degrades the sync state
	if _, err := svc.Ledger.EnsureTodaySnapshot(ctx); err != nil {
		logger.Warn("Could not bootstrap today's snapshot at startup", slog.String("error", err.Error()))
	}

	jobs, err := scheduler.Start(scheduler.Schedules{
		SnapshotBootstrap: cfg.SnapshotCron,
		SyncProbe:         cfg.SyncProbeSchedule,
		Location:          cfg.Location,
	}, svc.Ledger, svc.Sync, logger)
	if err != nil {
		logger.Error("Failed to schedule background jobs", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer jobs.Stop()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.LedgerID, logger)
	defer posthogClient.Close()

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{middleware.SyncStateHeader, middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svc, handlers.RouteOptions{
		Posthog: posthogClient,
		Limiter: limiter.New(memory.NewStore(), rate),
	})

	// Request contexts end on shutdown so open feed streams let go of their connections
	requestCtx, cancelRequests := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return requestCtx },
	}
	srv.RegisterOnShutdown(cancelRequests)

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver), slog.String("ledger_id", cfg.LedgerID))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}
