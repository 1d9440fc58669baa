package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
	"github.com/SscSPs/cashkeeper/internal/models"
	"github.com/SscSPs/cashkeeper/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// pgxLedgerTx runs ledger writes on an open pgx transaction and collects the resulting change events.
type pgxLedgerTx struct {
	tx       pgx.Tx
	ledgerID string
	events   []domain.ChangeEvent
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) record(c domain.Collection, op domain.ChangeOp, key string, record any, at time.Time) error {
	ev, err := domain.NewChangeEvent(c, op, key, record, at)
	if err != nil {
		return fmt.Errorf("%w: encode %s change: %w", apperrors.ErrStoreWriteFailed, c, err)
	}
	t.events = append(t.events, ev)
	return nil
}

// LockCashAccount implements portsrepo.LedgerTx. The row is created on first use and then held
// with FOR UPDATE until the transaction ends.
func (t *pgxLedgerTx) LockCashAccount(ctx context.Context) (domain.CashAccount, error) {
	insert := `
		INSERT INTO cash_accounts (ledger_id, balance, last_updated_at, version)
		VALUES ($1, 0, $2, 0)
		ON CONFLICT (ledger_id) DO NOTHING;
	`
	if _, err := t.tx.Exec(ctx, insert, t.ledgerID, time.Time{}); err != nil {
		return domain.CashAccount{}, classify(err, "create cash account")
	}

	query := `SELECT ledger_id, balance, last_updated_at, version FROM cash_accounts WHERE ledger_id = $1 FOR UPDATE;`
	var m models.CashAccount
	if err := t.tx.QueryRow(ctx, query, t.ledgerID).Scan(&m.LedgerID, &m.Balance, &m.LastUpdatedAt, &m.Version); err != nil {
		return domain.CashAccount{}, classify(err, "lock cash account")
	}
	return mapping.ToDomainCashAccount(m), nil
}

// SaveCashAccount implements portsrepo.LedgerTx.
func (t *pgxLedgerTx) SaveCashAccount(ctx context.Context, account domain.CashAccount) error {
	account.LedgerID = t.ledgerID
	m := mapping.ToModelCashAccount(account)
	query := `
		UPDATE cash_accounts
		SET balance = $2, last_updated_at = $3, version = $4
		WHERE ledger_id = $1 AND version = $5;
	`
	cmdTag, err := t.tx.Exec(ctx, query, m.LedgerID, m.Balance, m.LastUpdatedAt, m.Version, m.Version-1)
	if err != nil {
		return classify(err, "save cash account")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cash account %s is not at version %d", apperrors.ErrConcurrentUpdate, t.ledgerID, m.Version-1)
	}
	return t.record(domain.CollectionCashAccount, domain.OpUpsert, t.ledgerID, account, account.LastUpdated)
}

// AppendTransaction implements portsrepo.LedgerTx.
func (t *pgxLedgerTx) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(t.ledgerID, txn)
	query := `INSERT INTO transactions (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := t.tx.Exec(ctx, query, m.TransactionID, m.LedgerID, m.Type, m.Amount, m.Category, m.Note, m.PaymentMethod, m.OccurredAt)
	if err != nil {
		return classify(err, "insert transaction")
	}
	return t.record(domain.CollectionTransactions, domain.OpAppend, txn.TransactionID, txn, txn.Timestamp)
}

// AppendCashTransaction implements portsrepo.LedgerTx.
func (t *pgxLedgerTx) AppendCashTransaction(ctx context.Context, entry domain.CashTransaction) error {
	m := mapping.ToModelCashTransaction(t.ledgerID, entry)
	query := `INSERT INTO cash_transactions (` + cashTransactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := t.tx.Exec(ctx, query, m.CashTransactionID, m.LedgerID, m.Amount, m.Source, m.Note, m.OccurredAt, m.TransactionID)
	if err != nil {
		return classify(err, "insert cash transaction")
	}
	return t.record(domain.CollectionCashTransactions, domain.OpAppend, entry.CashTransactionID, entry, entry.Timestamp)
}

// EnsureSnapshot implements portsrepo.LedgerTx.
func (t *pgxLedgerTx) EnsureSnapshot(ctx context.Context, date string, baseline decimal.Decimal, at time.Time) (domain.DailySnapshot, error) {
	insert := `
		INSERT INTO daily_snapshots (ledger_id, snapshot_date, expected_balance, last_updated_at)
		VALUES ($1, $2::date, $3, $4)
		ON CONFLICT (ledger_id, snapshot_date) DO NOTHING
		RETURNING ` + snapshotColumns + `;
	`
	m, err := scanSnapshot(t.tx.QueryRow(ctx, insert, t.ledgerID, date, baseline, at))
	if err == nil {
		snap := mapping.ToDomainDailySnapshot(m)
		return snap, t.record(domain.CollectionSnapshots, domain.OpUpsert, date, snap, at)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.DailySnapshot{}, classify(err, "ensure snapshot")
	}

	// Row already existed
	query := `SELECT ` + snapshotColumns + ` FROM daily_snapshots WHERE ledger_id = $1 AND snapshot_date = $2::date;`
	m, err = scanSnapshot(t.tx.QueryRow(ctx, query, t.ledgerID, date))
	if err != nil {
		return domain.DailySnapshot{}, classify(err, "read snapshot")
	}
	return mapping.ToDomainDailySnapshot(m), nil
}

// UpsertSnapshot implements portsrepo.LedgerTx. NULL patch fields keep the stored values.
func (t *pgxLedgerTx) UpsertSnapshot(ctx context.Context, patch domain.SnapshotPatch, baseline decimal.Decimal) (domain.DailySnapshot, error) {
	query := `
		INSERT INTO daily_snapshots (ledger_id, snapshot_date, expected_balance, actual_balance, difference, last_updated_at)
		VALUES ($1, $2::date, COALESCE($3::numeric, $4::numeric), $5::numeric, $6::numeric, COALESCE($7::timestamptz, now()))
		ON CONFLICT (ledger_id, snapshot_date) DO UPDATE SET
			expected_balance = COALESCE($3::numeric, daily_snapshots.expected_balance),
			actual_balance = COALESCE($5::numeric, daily_snapshots.actual_balance),
			difference = COALESCE($6::numeric, daily_snapshots.difference),
			last_updated_at = COALESCE($7::timestamptz, daily_snapshots.last_updated_at)
		RETURNING ` + snapshotColumns + `;
	`
	var at *time.Time
	if !patch.At.IsZero() {
		at = &patch.At
	}
	m, err := scanSnapshot(t.tx.QueryRow(ctx, query,
		t.ledgerID,
		patch.Date,
		mapping.ToNullDecimal(patch.ExpectedBalance),
		baseline,
		mapping.ToNullDecimal(patch.ActualBalance),
		mapping.ToNullDecimal(patch.Difference),
		at,
	))
	if err != nil {
		return domain.DailySnapshot{}, classify(err, "upsert snapshot")
	}
	snap := mapping.ToDomainDailySnapshot(m)
	return snap, t.record(domain.CollectionSnapshots, domain.OpUpsert, patch.Date, snap, patch.At)
}
