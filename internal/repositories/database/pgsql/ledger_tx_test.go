package pgsql

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/SscSPs/cashkeeper/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records the statements sent to it. Methods the ledger tx does not use are left to the
// embedded nil interface.
type fakeTx struct {
	pgx.Tx
	execTag  pgconn.CommandTag
	execErr  error
	execSQL  []string
	execArgs [][]any
	rows     []fakeRow
	rowSQL   []string
	rowArgs  [][]any
}

func (f *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return f.execTag, f.execErr
}

func (f *fakeTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.rowSQL = append(f.rowSQL, sql)
	f.rowArgs = append(f.rowArgs, args)
	row := f.rows[0]
	f.rows = f.rows[1:]
	return row
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func snapshotRow(date string, expected decimal.Decimal, actual, diff decimal.NullDecimal, at time.Time) fakeRow {
	return fakeRow{values: []any{"home", date, expected, actual, diff, at}}
}

func TestQuery_KeysetPage(t *testing.T) {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	cursorAt := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	token := pagination.EncodeToken(cursorAt, "txn-9")

	q := newQuery("SELECT "+transactionColumns+" FROM transactions", "home")
	filterRange(q, domain.TransactionFilter{From: &from, To: &to})
	require.NoError(t, q.after(&token, "occurred_at", "transaction_id"))
	q.orderBy("occurred_at DESC, transaction_id DESC")
	q.limit(21)

	assert.Equal(t, "SELECT "+transactionColumns+" FROM transactions"+
		" WHERE ledger_id = $1 AND occurred_at >= $2 AND occurred_at < $3"+
		" AND (occurred_at, transaction_id) < ($4, $5)"+
		" ORDER BY occurred_at DESC, transaction_id DESC LIMIT $6;", q.String())

	require.Len(t, q.args, 6)
	assert.Equal(t, "home", q.args[0])
	assert.Equal(t, from, q.args[1])
	assert.Equal(t, to, q.args[2])
	cursorArg, ok := q.args[3].(time.Time)
	require.True(t, ok)
	assert.True(t, cursorArg.Equal(cursorAt))
	assert.Equal(t, "txn-9", q.args[4])
	assert.Equal(t, 21, q.args[5])
}

func TestQuery_AfterWithoutTokenAndLimitWithoutOrder(t *testing.T) {
	empty := ""
	q := newQuery("SELECT 1 FROM daily_snapshots", "home")
	require.NoError(t, q.after(nil, "occurred_at", "id"))
	require.NoError(t, q.after(&empty, "occurred_at", "id"))
	q.limit(5)

	assert.Equal(t, "SELECT 1 FROM daily_snapshots WHERE ledger_id = $1 LIMIT $2;", q.String())
	assert.Equal(t, []any{"home", 5}, q.args)

	bad := "not-a-token"
	assert.ErrorIs(t, q.after(&bad, "occurred_at", "id"), apperrors.ErrValidation)
}

func TestSaveCashAccount_VersionCheck(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	account := domain.CashAccount{Balance: decimal.NewFromInt(380), LastUpdated: at, Version: 4}

	stale := &fakeTx{execTag: pgconn.NewCommandTag("UPDATE 0")}
	tx := &pgxLedgerTx{tx: stale, ledgerID: "home"}
	err := tx.SaveCashAccount(ctx, account)
	require.ErrorIs(t, err, apperrors.ErrConcurrentUpdate)
	assert.Empty(t, tx.events, "a lost update publishes nothing")

	require.Len(t, stale.execArgs, 1)
	assert.Contains(t, stale.execSQL[0], "WHERE ledger_id = $1 AND version = $5")
	assert.Equal(t, "home", stale.execArgs[0][0])
	assert.Equal(t, int64(4), stale.execArgs[0][3])
	assert.Equal(t, int64(3), stale.execArgs[0][4])

	current := &fakeTx{execTag: pgconn.NewCommandTag("UPDATE 1")}
	tx = &pgxLedgerTx{tx: current, ledgerID: "home"}
	require.NoError(t, tx.SaveCashAccount(ctx, account))
	require.Len(t, tx.events, 1)
	assert.Equal(t, domain.CollectionCashAccount, tx.events[0].Collection)
	assert.Equal(t, "home", tx.events[0].Key)
}

func TestSaveCashAccount_ClassifiesDriverErrors(t *testing.T) {
	ftx := &fakeTx{execErr: &pgconn.PgError{Code: "57P01"}}
	tx := &pgxLedgerTx{tx: ftx, ledgerID: "home"}
	err := tx.SaveCashAccount(context.Background(), domain.CashAccount{Version: 1})
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}

func TestUpsertSnapshot_PassesNullsForUntouchedFields(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	actual := decimal.NewFromInt(375)
	diff := decimal.NewFromInt(-5)
	baseline := decimal.NewFromInt(380)

	ftx := &fakeTx{rows: []fakeRow{snapshotRow("2026-10-19", baseline,
		decimal.NewNullDecimal(actual), decimal.NewNullDecimal(diff), at)}}
	tx := &pgxLedgerTx{tx: ftx, ledgerID: "home"}

	snap, err := tx.UpsertSnapshot(ctx, domain.SnapshotPatch{
		Date:          "2026-10-19",
		ActualBalance: &actual,
		Difference:    &diff,
	}, baseline)
	require.NoError(t, err)

	sql := ftx.rowSQL[0]
	assert.Contains(t, sql, "expected_balance = COALESCE($3::numeric, daily_snapshots.expected_balance)")
	assert.Contains(t, sql, "last_updated_at = COALESCE($7::timestamptz, daily_snapshots.last_updated_at)")

	args := ftx.rowArgs[0]
	require.Len(t, args, 7)
	assert.Equal(t, "2026-10-19", args[1])
	assert.False(t, args[2].(decimal.NullDecimal).Valid, "expected balance is left alone")
	assert.True(t, args[3].(decimal.Decimal).Equal(baseline))
	assert.True(t, args[4].(decimal.NullDecimal).Decimal.Equal(actual))
	assert.True(t, args[5].(decimal.NullDecimal).Decimal.Equal(diff))
	assert.Nil(t, args[6], "a zero instant keeps the stored timestamp")

	require.NotNil(t, snap.ActualBalance)
	assert.True(t, snap.ActualBalance.Equal(actual))
	assert.True(t, snap.ExpectedBalance.Equal(baseline))
	require.Len(t, tx.events, 1)
	assert.Equal(t, domain.CollectionSnapshots, tx.events[0].Collection)
}

func TestEnsureSnapshot_ExistingRowIsReadBackWithoutEvent(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	stored := decimal.NewFromInt(100)

	ftx := &fakeTx{rows: []fakeRow{
		{err: pgx.ErrNoRows},
		snapshotRow("2026-10-19", stored, decimal.NullDecimal{}, decimal.NullDecimal{}, at),
	}}
	tx := &pgxLedgerTx{tx: ftx, ledgerID: "home"}

	snap, err := tx.EnsureSnapshot(ctx, "2026-10-19", decimal.NewFromInt(999), at.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, snap.ExpectedBalance.Equal(stored), "an existing baseline is never overwritten")
	assert.Nil(t, snap.ActualBalance)
	assert.Empty(t, tx.events)
	require.Len(t, ftx.rowSQL, 2)
	assert.Contains(t, ftx.rowSQL[0], "ON CONFLICT (ledger_id, snapshot_date) DO NOTHING")

	fresh := &fakeTx{rows: []fakeRow{snapshotRow("2026-10-20", stored, decimal.NullDecimal{}, decimal.NullDecimal{}, at)}}
	tx = &pgxLedgerTx{tx: fresh, ledgerID: "home"}
	_, err = tx.EnsureSnapshot(ctx, "2026-10-20", stored, at)
	require.NoError(t, err)
	assert.Len(t, tx.events, 1)
}
