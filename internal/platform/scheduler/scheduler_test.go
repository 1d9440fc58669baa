package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) EnsureTodaySnapshot(ctx context.Context) (*domain.DailySnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySnapshot), args.Error(1)
}

type mockProber struct {
	mock.Mock
}

func (m *mockProber) Probe(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSnapshotJob(t *testing.T) {
	ledger := new(mockLedger)
	ledger.On("EnsureTodaySnapshot", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(&domain.DailySnapshot{Date: "2026-10-19", ExpectedBalance: decimal.NewFromInt(380)}, nil).Once()
	ledger.On("EnsureTodaySnapshot", mock.Anything).Return(nil, errors.New("store down")).Once()

	job := snapshotJob(ledger, discardLogger())
	job()
	job() // failure is logged, not propagated

	ledger.AssertExpectations(t)
}

func TestProbeJob(t *testing.T) {
	prober := new(mockProber)
	prober.On("Probe", mock.Anything).Return(errors.New("unreachable")).Once()

	probeJob(prober, discardLogger())()

	prober.AssertExpectations(t)
}

func TestStart_InvalidSchedule(t *testing.T) {
	_, err := Start(Schedules{SnapshotBootstrap: "not a cron"}, new(mockLedger), new(mockProber), discardLogger())
	assert.Error(t, err)

	_, err = Start(Schedules{SyncProbe: "@every banana"}, new(mockLedger), new(mockProber), discardLogger())
	assert.Error(t, err)
}

func TestStart_SchedulesJobsInLocation(t *testing.T) {
	eat := time.FixedZone("EAT", 3*60*60)
	c, err := Start(Schedules{SnapshotBootstrap: "0 0 * * *", SyncProbe: "@every 30s", Location: eat},
		new(mockLedger), new(mockProber), discardLogger())
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 2)
	assert.Equal(t, eat, c.Location())

	// The runner evaluates schedules in its location, so midnight is the ledger's midnight
	var midnight cron.Schedule
	for _, e := range c.Entries() {
		if _, ok := e.Schedule.(*cron.SpecSchedule); ok {
			midnight = e.Schedule
		}
	}
	require.NotNil(t, midnight)
	next := midnight.Next(time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC).In(eat))
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, eat).Unix(), next.Unix())
}
