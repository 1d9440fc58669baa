package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/robfig/cron/v3"
)

const jobTimeout = 10 * time.Second

// SnapshotBootstrapper creates the snapshot of the current day.
type SnapshotBootstrapper interface {
	EnsureTodaySnapshot(ctx context.Context) (*domain.DailySnapshot, error)
}

// Prober checks store connectivity.
type Prober interface {
	Probe(ctx context.Context) error
}

// Schedules holds the cron expressions of the background jobs. An empty expression disables the job.
type Schedules struct {
	SnapshotBootstrap string
	SyncProbe         string
	Location          *time.Location
}

// Start schedules the day-boundary snapshot bootstrap and the store probe and starts the cron runner.
// Jobs that are still running when their next tick arrives are skipped.
func Start(s Schedules, ledger SnapshotBootstrapper, prober Prober, logger *slog.Logger) (*cron.Cron, error) {
	if s.Location == nil {
		s.Location = time.Local
	}
	cl := cronLogger{logger}
	c := cron.New(
		cron.WithLocation(s.Location),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	if s.SnapshotBootstrap != "" {
		if _, err := c.AddFunc(s.SnapshotBootstrap, snapshotJob(ledger, logger)); err != nil {
			return nil, fmt.Errorf("schedule snapshot bootstrap %q: %w", s.SnapshotBootstrap, err)
		}
	}
	if s.SyncProbe != "" {
		if _, err := c.AddFunc(s.SyncProbe, probeJob(prober, logger)); err != nil {
			return nil, fmt.Errorf("schedule sync probe %q: %w", s.SyncProbe, err)
		}
	}

	c.Start()
	logger.Info("Cron jobs started",
		slog.String("snapshot_bootstrap", s.SnapshotBootstrap),
		slog.String("sync_probe", s.SyncProbe),
		slog.String("location", s.Location.String()))
	return c, nil
}

func snapshotJob(ledger SnapshotBootstrapper, logger *slog.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		snap, err := ledger.EnsureTodaySnapshot(ctx)
		if err != nil {
			logger.Error("Cron job failed to bootstrap today's snapshot", slog.String("error", err.Error()))
			return
		}
		logger.Info("Daily snapshot ready",
			slog.String("date", snap.Date),
			slog.String("expected_balance", snap.ExpectedBalance.String()))
	}
}

func probeJob(prober Prober, logger *slog.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		// The tracker logs state transitions itself
		if err := prober.Probe(ctx); err != nil {
			logger.Debug("Store probe failed", slog.String("error", err.Error()))
		}
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
