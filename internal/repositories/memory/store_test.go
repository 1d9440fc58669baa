package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
	"github.com/SscSPs/cashkeeper/internal/platform/feed"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

type failingPersister struct{ volatile }

func (failingPersister) save(*ledgerState) error { return errors.New("disk full") }

func deposit(amount int64, at time.Time) func(ctx context.Context, tx portsrepo.LedgerTx) error {
	return func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := tx.LockCashAccount(ctx)
		if err != nil {
			return err
		}
		acc = acc.Apply(decimal.NewFromInt(amount), at)
		if err := tx.SaveCashAccount(ctx, acc); err != nil {
			return err
		}
		return tx.AppendCashTransaction(ctx, domain.CashTransaction{
			CashTransactionID: at.Format(time.RFC3339Nano),
			Amount:            decimal.NewFromInt(amount),
			Source:            domain.SourceOther,
			Timestamp:         at,
		})
	}
}

func TestRunInTx_CommitsAndPublishesAfterCommit(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory("default", feed.NewHub(16))
	events, cancel := store.Subscribe(ctx, domain.CollectionCashAccount, domain.CollectionCashTransactions)
	defer cancel()

	require.NoError(t, store.RunInTx(ctx, deposit(100, t0)))

	acc, err := store.GetCashAccount(ctx)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(1), acc.Version)

	first := <-events
	second := <-events
	assert.Equal(t, domain.CollectionCashAccount, first.Collection)
	assert.Equal(t, domain.CollectionCashTransactions, second.Collection)
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory("default", nil)
	events, cancel := store.Subscribe(ctx)
	defer cancel()

	boom := errors.New("boom")
	err := store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if err := deposit(50, t0)(ctx, tx); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	acc, _ := store.GetCashAccount(ctx)
	assert.True(t, acc.Balance.IsZero())
	entries, _, _ := store.ListCashTransactions(ctx, 10, nil)
	assert.Empty(t, entries)
	assert.Len(t, events, 0, "nothing is published for a rolled back transaction")
}

func TestRunInTx_PersistFailureKeepsCommittedState(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory("default", nil)
	require.NoError(t, store.RunInTx(ctx, deposit(100, t0)))

	store.persist = failingPersister{}
	err := store.RunInTx(ctx, deposit(20, t0.Add(time.Minute)))
	require.ErrorIs(t, err, apperrors.ErrStoreWriteFailed)

	acc, _ := store.GetCashAccount(ctx)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(100)))
	entries, _, _ := store.ListCashTransactions(ctx, 10, nil)
	assert.Len(t, entries, 1)
}

func TestSaveCashAccount_RejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory("default", nil)
	require.NoError(t, store.RunInTx(ctx, deposit(10, t0)))

	err := store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		stale := domain.NewCashAccount("default", t0).Apply(decimal.NewFromInt(1), t0) // version 1 again
		return tx.SaveCashAccount(ctx, stale)
	})
	assert.ErrorIs(t, err, apperrors.ErrConcurrentUpdate)
}

func TestCanceledContextDoesNotRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewInMemory("default", nil)
	called := false
	err := store.RunInTx(ctx, func(context.Context, portsrepo.LedgerTx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSnapshots_EnsureIsIdempotentAndUpsertMerges(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory("default", nil)
	hundred := decimal.NewFromInt(100)
	ninety := decimal.NewFromInt(90)

	require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		snap, err := tx.EnsureSnapshot(ctx, "2026-10-19", hundred, t0)
		require.NoError(t, err)
		assert.True(t, snap.ExpectedBalance.Equal(hundred))

		again, err := tx.EnsureSnapshot(ctx, "2026-10-19", decimal.Zero, t0.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, again.ExpectedBalance.Equal(hundred), "existing row is not touched")

		diff := ninety.Sub(hundred)
		merged, err := tx.UpsertSnapshot(ctx, domain.SnapshotPatch{Date: "2026-10-19", ActualBalance: &ninety, Difference: &diff, At: t0.Add(time.Hour)}, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, merged.ExpectedBalance.Equal(hundred), "merge keeps fields not in the patch")
		assert.True(t, merged.IsReconciled())
		return nil
	}))

	_, err := store.FindSnapshot(ctx, "2026-10-18")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListSnapshots_NewestFirstSinceDate(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory("default", nil)
	require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		for _, d := range []string{"2026-10-17", "2026-10-19", "2026-09-01", "2026-10-18"} {
			if _, err := tx.EnsureSnapshot(ctx, d, decimal.Zero, t0); err != nil {
				return err
			}
		}
		return nil
	}))

	snaps, err := store.ListSnapshots(ctx, "2026-10-01", 0)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, "2026-10-19", snaps[0].Date)
	assert.Equal(t, "2026-10-17", snaps[2].Date)

	limited, _ := store.ListSnapshots(ctx, "", 2)
	assert.Len(t, limited, 2)
}

func TestListTransactions_PaginatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory("default", nil)
	require.NoError(t, store.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		for i := 0; i < 5; i++ {
			err := tx.AppendTransaction(ctx, domain.Transaction{
				TransactionID: string(rune('a' + i)),
				Type:          domain.Expense,
				Amount:        decimal.NewFromInt(int64(i + 1)),
				Category:      domain.CategoryFood,
				PaymentMethod: domain.NonCash,
				Timestamp:     t0.Add(time.Duration(i) * time.Minute),
			})
			if err != nil {
				return err
			}
		}
		return nil
	}))

	first, token, err := store.ListTransactions(ctx, domain.TransactionFilter{}, 2, nil)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, []string{"e", "d"}, ids(first))

	second, token, err := store.ListTransactions(ctx, domain.TransactionFilter{}, 2, token)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, []string{"c", "b"}, ids(second))

	last, token, err := store.ListTransactions(ctx, domain.TransactionFilter{}, 2, token)
	require.NoError(t, err)
	assert.Nil(t, token)
	assert.Equal(t, []string{"a"}, ids(last))

	from := t0.Add(time.Minute)
	to := t0.Add(3 * time.Minute)
	ranged, err := store.FindTransactionsInRange(ctx, domain.TransactionFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(ranged), "range is half-open and oldest first")

	bad := "%%%"
	_, _, err = store.ListTransactions(ctx, domain.TransactionFilter{}, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func ids(txns []domain.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.TransactionID
	}
	return out
}

func TestOpenFile_ReloadsCommittedState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger", "cash.json")

	store, err := OpenFile("default", path, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, store.Ping(ctx), apperrors.ErrStoreUnavailable, "directory does not exist before the first write")
	require.NoError(t, store.RunInTx(ctx, deposit(250, t0)))
	assert.NoError(t, store.Ping(ctx))

	reopened, err := OpenFile("default", path, nil)
	require.NoError(t, err)
	acc, err := reopened.GetCashAccount(ctx)
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, int64(1), acc.Version)

	entries, _, err := reopened.ListCashTransactions(ctx, 10, nil)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = OpenFile("other", path, nil)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable, "a file belongs to one ledger")

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	assert.Empty(t, leftovers)
}

func TestOpenFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cash.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFile("default", path, nil)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	_, err = OpenFile("default", " ", nil)
	assert.Error(t, err)
}
