package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx is the set of writes available inside a store transaction.
type LedgerTx interface {
	// LockCashAccount reads the cash account and holds it against concurrent writers until the
	// transaction ends. A missing account is created with a zero balance.
	LockCashAccount(ctx context.Context) (domain.CashAccount, error)

	// SaveCashAccount writes the account. The write only succeeds when the stored version is
	// exactly account.Version-1, otherwise apperrors.ErrConcurrentUpdate is returned.
	SaveCashAccount(ctx context.Context, account domain.CashAccount) error

	// AppendTransaction adds a record to the transaction store.
	AppendTransaction(ctx context.Context, txn domain.Transaction) error

	// AppendCashTransaction adds an entry to the cash log.
	AppendCashTransaction(ctx context.Context, entry domain.CashTransaction) error

	// EnsureSnapshot creates the row for date with the given baseline when it does not exist yet
	// and returns the current row. An existing row is never modified.
	EnsureSnapshot(ctx context.Context, date string, baseline decimal.Decimal, at time.Time) (domain.DailySnapshot, error)

	// UpsertSnapshot merges patch into the row for patch.Date, creating it from baseline if absent.
	UpsertSnapshot(ctx context.Context, patch domain.SnapshotPatch, baseline decimal.Decimal) (domain.DailySnapshot, error)
}

// TransactionReader defines read operations over the transaction store.
type TransactionReader interface {
	// ListTransactions returns transactions newest first using token-based pagination.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindTransactionsInRange returns every transaction matching filter, oldest first.
	FindTransactionsInRange(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// CashReader defines read operations over the cash account and cash log.
type CashReader interface {
	// GetCashAccount returns the current cash account, or a zero account if none was written yet.
	GetCashAccount(ctx context.Context) (*domain.CashAccount, error)

	// ListCashTransactions returns cash log entries newest first using token-based pagination.
	ListCashTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.CashTransaction, *string, error)
}

// SnapshotReader defines read operations over the daily snapshot table.
type SnapshotReader interface {
	// FindSnapshot returns the snapshot for date or apperrors.ErrNotFound.
	FindSnapshot(ctx context.Context, date string) (*domain.DailySnapshot, error)

	// ListSnapshots returns snapshots with date >= sinceDate, newest first.
	ListSnapshots(ctx context.Context, sinceDate string, limit int) ([]domain.DailySnapshot, error)
}

// ChangeFeed lets observers follow committed changes.
type ChangeFeed interface {
	// Subscribe returns a channel receiving every change to the given collections (all when empty)
	// and a function that ends the subscription. The channel is closed when ctx is done,
	// when cancel is called, or when the subscriber falls too far behind.
	Subscribe(ctx context.Context, collections ...domain.Collection) (<-chan domain.ChangeEvent, func())
}

// ChangePublisher pushes events to ChangeFeed subscribers.
type ChangePublisher interface {
	Publish(events ...domain.ChangeEvent)
}

// LedgerRepositoryFacade combines every ledger store capability the engine needs.
type LedgerRepositoryFacade interface {
	LedgerUnitOfWork
	TransactionReader
	CashReader
	SnapshotReader
	HealthChecker
}
