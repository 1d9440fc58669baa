package repositories

import (
	"context"
)

// LedgerUnitOfWork runs a group of ledger writes atomically.
type LedgerUnitOfWork interface {
	// RunInTx executes fn inside a single store transaction. Every write made through tx is
	// committed together when fn returns nil and discarded otherwise. Change events are
	// published to subscribers only after a successful commit.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}

// HealthChecker reports whether the store can currently be reached.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
