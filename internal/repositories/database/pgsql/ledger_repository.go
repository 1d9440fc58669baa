package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
	"github.com/SscSPs/cashkeeper/internal/models"
	"github.com/SscSPs/cashkeeper/internal/platform/feed"
	"github.com/SscSPs/cashkeeper/internal/utils/mapping"
	"github.com/SscSPs/cashkeeper/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPageSize = 20

const (
	transactionColumns     = "transaction_id, ledger_id, type, amount, category, note, payment_method, occurred_at"
	cashTransactionColumns = "cash_transaction_id, ledger_id, amount, source, note, occurred_at, transaction_id"
	snapshotColumns        = "ledger_id, to_char(snapshot_date, 'YYYY-MM-DD'), expected_balance, actual_balance, difference, last_updated_at"
)

// PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade on PostgreSQL. Every row is
// scoped to one ledger so several ledgers can share a database.
type PgxLedgerRepository struct {
	BaseRepository
	ledgerID string
	origin   string
	hub      *feed.Hub
}

// Ensure PgxLedgerRepository implements the ledger repository interfaces
var (
	_ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)
	_ portsrepo.ChangeFeed             = (*PgxLedgerRepository)(nil)
)

// newPgxLedgerRepository creates a new repository for ledgerID. origin identifies this process in
// change notifications.
func newPgxLedgerRepository(pool *pgxpool.Pool, ledgerID, origin string, hub *feed.Hub) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerID:       ledgerID,
		origin:         origin,
		hub:            hub,
	}
}

// RunInTx implements portsrepo.LedgerUnitOfWork. Change notifications are sent inside the
// transaction so other processes only see them once it commits; local subscribers get the
// events directly after commit.
func (r *PgxLedgerRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	ltx := &pgxLedgerTx{tx: tx, ledgerID: r.ledgerID}
	if err := fn(ctx, ltx); err != nil {
		return err
	}
	if len(ltx.events) == 0 {
		return nil
	}
	if err := notifyChanges(ctx, tx, r.origin, r.ledgerID, ltx.events); err != nil {
		return err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	r.hub.Publish(ltx.events...)
	return nil
}

// Subscribe implements portsrepo.ChangeFeed.
func (r *PgxLedgerRepository) Subscribe(ctx context.Context, collections ...domain.Collection) (<-chan domain.ChangeEvent, func()) {
	return r.hub.Subscribe(ctx, collections...)
}

// GetCashAccount implements portsrepo.CashReader.
func (r *PgxLedgerRepository) GetCashAccount(ctx context.Context) (*domain.CashAccount, error) {
	query := `SELECT ledger_id, balance, last_updated_at, version FROM cash_accounts WHERE ledger_id = $1;`
	var m models.CashAccount
	err := r.Pool.QueryRow(ctx, query, r.ledgerID).Scan(&m.LedgerID, &m.Balance, &m.LastUpdatedAt, &m.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			acc := domain.CashAccount{LedgerID: r.ledgerID}
			return &acc, nil
		}
		return nil, classify(err, "get cash account")
	}
	acc := mapping.ToDomainCashAccount(m)
	return &acc, nil
}

// ListTransactions implements portsrepo.TransactionReader.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	limit = pageSize(limit)
	q := newQuery("SELECT "+transactionColumns+" FROM transactions", r.ledgerID)
	filterRange(q, filter)
	if err := q.after(nextToken, "occurred_at", "transaction_id"); err != nil {
		return nil, nil, err
	}
	q.orderBy("occurred_at DESC, transaction_id DESC")
	q.limit(limit + 1)

	txns, err := r.queryTransactions(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	if len(txns) <= limit {
		return txns, nil, nil
	}
	txns = txns[:limit]
	last := txns[limit-1]
	token := pagination.EncodeToken(last.Timestamp, last.TransactionID)
	return txns, &token, nil
}

// FindTransactionsInRange implements portsrepo.TransactionReader.
func (r *PgxLedgerRepository) FindTransactionsInRange(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	q := newQuery("SELECT "+transactionColumns+" FROM transactions", r.ledgerID)
	filterRange(q, filter)
	q.orderBy("occurred_at ASC, transaction_id ASC")
	return r.queryTransactions(ctx, q)
}

func (r *PgxLedgerRepository) queryTransactions(ctx context.Context, q *query) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, q.String(), q.args...)
	if err != nil {
		return nil, classify(err, "query transactions")
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.TransactionID, &m.LedgerID, &m.Type, &m.Amount, &m.Category, &m.Note, &m.PaymentMethod, &m.OccurredAt); err != nil {
			return nil, classify(err, "scan transaction")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "iterate transactions")
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// ListCashTransactions implements portsrepo.CashReader.
func (r *PgxLedgerRepository) ListCashTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.CashTransaction, *string, error) {
	limit = pageSize(limit)
	q := newQuery("SELECT "+cashTransactionColumns+" FROM cash_transactions", r.ledgerID)
	if err := q.after(nextToken, "occurred_at", "cash_transaction_id"); err != nil {
		return nil, nil, err
	}
	q.orderBy("occurred_at DESC, cash_transaction_id DESC")
	q.limit(limit + 1)

	rows, err := r.Pool.Query(ctx, q.String(), q.args...)
	if err != nil {
		return nil, nil, classify(err, "query cash transactions")
	}
	defer rows.Close()

	var ms []models.CashTransaction
	for rows.Next() {
		var m models.CashTransaction
		if err := rows.Scan(&m.CashTransactionID, &m.LedgerID, &m.Amount, &m.Source, &m.Note, &m.OccurredAt, &m.TransactionID); err != nil {
			return nil, nil, classify(err, "scan cash transaction")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, classify(err, "iterate cash transactions")
	}

	entries := mapping.ToDomainCashTransactionSlice(ms)
	if len(entries) <= limit {
		return entries, nil, nil
	}
	entries = entries[:limit]
	last := entries[limit-1]
	token := pagination.EncodeToken(last.Timestamp, last.CashTransactionID)
	return entries, &token, nil
}

// FindSnapshot implements portsrepo.SnapshotReader.
func (r *PgxLedgerRepository) FindSnapshot(ctx context.Context, date string) (*domain.DailySnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM daily_snapshots WHERE ledger_id = $1 AND snapshot_date = $2::date;`
	m, err := scanSnapshot(r.Pool.QueryRow(ctx, query, r.ledgerID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no snapshot for %s", apperrors.ErrNotFound, date)
		}
		return nil, classify(err, "find snapshot")
	}
	snap := mapping.ToDomainDailySnapshot(m)
	return &snap, nil
}

// ListSnapshots implements portsrepo.SnapshotReader.
func (r *PgxLedgerRepository) ListSnapshots(ctx context.Context, sinceDate string, limit int) ([]domain.DailySnapshot, error) {
	q := newQuery("SELECT "+snapshotColumns+" FROM daily_snapshots", r.ledgerID)
	if sinceDate != "" {
		q.where("snapshot_date >= " + q.arg(sinceDate) + "::date")
	}
	q.orderBy("snapshot_date DESC")
	if limit > 0 {
		q.limit(limit)
	}

	rows, err := r.Pool.Query(ctx, q.String(), q.args...)
	if err != nil {
		return nil, classify(err, "query snapshots")
	}
	defer rows.Close()

	snaps := []domain.DailySnapshot{}
	for rows.Next() {
		m, err := scanSnapshot(rows)
		if err != nil {
			return nil, classify(err, "scan snapshot")
		}
		snaps = append(snaps, mapping.ToDomainDailySnapshot(m))
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "iterate snapshots")
	}
	return snaps, nil
}

func scanSnapshot(row pgx.Row) (models.DailySnapshot, error) {
	var m models.DailySnapshot
	err := row.Scan(&m.LedgerID, &m.SnapshotDate, &m.ExpectedBalance, &m.ActualBalance, &m.Difference, &m.LastUpdatedAt)
	return m, err
}

func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	return limit
}

func filterRange(q *query, filter domain.TransactionFilter) {
	if filter.From != nil {
		q.where("occurred_at >= " + q.arg(*filter.From))
	}
	if filter.To != nil {
		q.where("occurred_at < " + q.arg(*filter.To))
	}
}

// query builds a ledger-scoped SELECT with positional arguments.
type query struct {
	base       string
	conditions []string
	order      string
	limitArg   string
	args       []any
}

func newQuery(base, ledgerID string) *query {
	q := &query{base: base}
	q.where("ledger_id = " + q.arg(ledgerID))
	return q
}

func (q *query) arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *query) where(cond string) {
	q.conditions = append(q.conditions, cond)
}

func (q *query) orderBy(order string) {
	q.order = order
}

func (q *query) limit(n int) {
	q.limitArg = q.arg(n)
}

// after restricts a newest-first listing to rows strictly older than the cursor in nextToken.
func (q *query) after(nextToken *string, tsColumn, idColumn string) error {
	if nextToken == nil || *nextToken == "" {
		return nil
	}
	cur, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return fmt.Errorf("%w: invalid nextToken: %w", apperrors.ErrValidation, err)
	}
	q.where(fmt.Sprintf("(%s, %s) < (%s, %s)", tsColumn, idColumn, q.arg(cur.Timestamp), q.arg(cur.ID)))
	return nil
}

func (q *query) String() string {
	var sb strings.Builder
	sb.WriteString(q.base)
	if len(q.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(q.conditions, " AND "))
	}
	if q.order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.order)
	}
	if q.limitArg != "" {
		sb.WriteString(" LIMIT ")
		sb.WriteString(q.limitArg)
	}
	sb.WriteString(";")
	return sb.String()
}
