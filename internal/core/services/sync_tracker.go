package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
)

// syncTracker remembers whether the last round trip to the store worked. Transitions are logged
// and published on the change feed so observers can show a permanent indicator.
type syncTracker struct {
	BaseService
	checker   portsrepo.HealthChecker
	publisher portsrepo.ChangePublisher

	mu    sync.RWMutex
	state domain.SyncState
}

// NewSyncTracker creates a tracker that starts online. publisher may be nil.
func NewSyncTracker(checker portsrepo.HealthChecker, publisher portsrepo.ChangePublisher, clock domain.Clock) portssvc.SyncStatusSvc {
	base := newBaseService()
	if clock != nil {
		base.Clock = clock
	}
	return &syncTracker{
		BaseService: base,
		checker:     checker,
		publisher:   publisher,
		state:       domain.SyncState{Status: domain.SyncOnline, Since: base.Now()},
	}
}

var _ portssvc.SyncStatusSvc = (*syncTracker)(nil)

// State implements portssvc.SyncStatusSvc.
func (t *syncTracker) State() domain.SyncState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// MarkSuccess implements portssvc.SyncStatusSvc.
func (t *syncTracker) MarkSuccess(ctx context.Context) {
	now := t.Now()
	t.mu.Lock()
	changed := t.state.Status != domain.SyncOnline
	if changed {
		t.state = domain.SyncState{Status: domain.SyncOnline, Since: now}
	}
	t.state.LastSuccessAt = &now
	state := t.state
	t.mu.Unlock()

	if changed {
		t.LogInfo(ctx, "Store connectivity restored")
		t.publish(ctx, state)
	}
}

// MarkFailure implements portssvc.SyncStatusSvc.
func (t *syncTracker) MarkFailure(ctx context.Context, err error) {
	if err == nil {
		return
	}
	now := t.Now()
	t.mu.Lock()
	changed := t.state.Status != domain.SyncDegraded || t.state.LastError != err.Error()
	if t.state.Status != domain.SyncDegraded {
		t.state.Since = now
	}
	t.state.Status = domain.SyncDegraded
	t.state.LastError = err.Error()
	state := t.state
	t.mu.Unlock()

	if changed {
		t.GetLogger(ctx).Warn("Store connectivity degraded", slog.String("error", err.Error()))
		t.publish(ctx, state)
	}
}

// Probe implements portssvc.SyncStatusSvc.
func (t *syncTracker) Probe(ctx context.Context) error {
	if t.checker == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := t.checker.Ping(ctx); err != nil {
		t.MarkFailure(ctx, err)
		return err
	}
	t.MarkSuccess(ctx)
	return nil
}

func (t *syncTracker) publish(ctx context.Context, state domain.SyncState) {
	if t.publisher == nil {
		return
	}
	ev, err := domain.NewChangeEvent(domain.CollectionSync, domain.OpUpsert, "sync", state, t.Now())
	if err != nil {
		t.LogError(ctx, err, "Failed to encode sync state event")
		return
	}
	t.publisher.Publish(ev)
}
