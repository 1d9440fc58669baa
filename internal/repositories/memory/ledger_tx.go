package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// ledgerTx applies writes to a staged ledgerState and collects the events to publish on commit.
type ledgerTx struct {
	ledgerID string
	state    *ledgerState
	events   []domain.ChangeEvent
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

func (t *ledgerTx) record(c domain.Collection, op domain.ChangeOp, key string, record any, at time.Time) error {
	ev, err := domain.NewChangeEvent(c, op, key, record, at)
	if err != nil {
		return fmt.Errorf("%w: encode %s change: %w", apperrors.ErrStoreWriteFailed, c, err)
	}
	t.events = append(t.events, ev)
	return nil
}

// LockCashAccount implements portsrepo.LedgerTx. The store mutex already excludes other writers.
func (t *ledgerTx) LockCashAccount(ctx context.Context) (domain.CashAccount, error) {
	if t.state.Account == nil {
		return domain.NewCashAccount(t.ledgerID, time.Time{}), nil
	}
	return *t.state.Account, nil
}

// SaveCashAccount implements portsrepo.LedgerTx.
func (t *ledgerTx) SaveCashAccount(ctx context.Context, account domain.CashAccount) error {
	var current int64
	if t.state.Account != nil {
		current = t.state.Account.Version
	}
	if account.Version != current+1 {
		return fmt.Errorf("%w: stored version %d, write based on %d", apperrors.ErrConcurrentUpdate, current, account.Version-1)
	}
	account.LedgerID = t.ledgerID
	t.state.Account = &account
	return t.record(domain.CollectionCashAccount, domain.OpUpsert, t.ledgerID, account, account.LastUpdated)
}

// AppendTransaction implements portsrepo.LedgerTx.
func (t *ledgerTx) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	t.state.Transactions = append(t.state.Transactions, txn)
	return t.record(domain.CollectionTransactions, domain.OpAppend, txn.TransactionID, txn, txn.Timestamp)
}

// AppendCashTransaction implements portsrepo.LedgerTx.
func (t *ledgerTx) AppendCashTransaction(ctx context.Context, entry domain.CashTransaction) error {
	t.state.CashTransactions = append(t.state.CashTransactions, entry)
	return t.record(domain.CollectionCashTransactions, domain.OpAppend, entry.CashTransactionID, entry, entry.Timestamp)
}

// EnsureSnapshot implements portsrepo.LedgerTx.
func (t *ledgerTx) EnsureSnapshot(ctx context.Context, date string, baseline decimal.Decimal, at time.Time) (domain.DailySnapshot, error) {
	if snap, ok := t.state.Snapshots[date]; ok {
		return snap, nil
	}
	snap := domain.NewSnapshot(date, baseline, at)
	t.state.Snapshots[date] = snap
	return snap, t.record(domain.CollectionSnapshots, domain.OpUpsert, date, snap, at)
}

// UpsertSnapshot implements portsrepo.LedgerTx.
func (t *ledgerTx) UpsertSnapshot(ctx context.Context, patch domain.SnapshotPatch, baseline decimal.Decimal) (domain.DailySnapshot, error) {
	snap, ok := t.state.Snapshots[patch.Date]
	if !ok {
		snap = domain.NewSnapshot(patch.Date, baseline, patch.At)
	}
	snap = snap.Merge(patch)
	t.state.Snapshots[patch.Date] = snap
	return snap, t.record(domain.CollectionSnapshots, domain.OpUpsert, patch.Date, snap, patch.At)
}
