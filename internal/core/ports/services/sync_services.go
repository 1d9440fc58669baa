package services

import (
	"context"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
)

// SyncStatusSvc tracks whether the durable store is reachable.
type SyncStatusSvc interface {
	// State returns the current sync state.
	State() domain.SyncState

	// MarkSuccess records a successful round trip to the store.
	MarkSuccess(ctx context.Context)

	// MarkFailure records a failed round trip. err is shown to the user.
	MarkFailure(ctx context.Context, err error)

	// Probe pings the store and records the outcome.
	Probe(ctx context.Context) error
}
