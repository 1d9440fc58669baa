package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
	"github.com/SscSPs/cashkeeper/internal/dto"
)

const (
	DefaultSnapshotWindowDays = 30
	defaultPageLimit          = 20
	maxPageLimit              = 100
)

// ledgerService is the reconciliation engine. Every cash mutation goes through applyCashMovement
// inside a single store transaction, so the balance, the cash log and today's snapshot move together.
type ledgerService struct {
	BaseService
	repo         portsrepo.LedgerRepositoryFacade
	feed         portsrepo.ChangeFeed
	sync         portssvc.SyncStatusSvc
	windowDays   int
	ensuredMu    sync.Mutex
	ensuredToday string // day key last bootstrapped by this process
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithClock sets the clock used for timestamps and day keys.
func WithClock(clock domain.Clock) LedgerServiceOption {
	return func(s *ledgerService) {
		s.Clock = clock
	}
}

// WithLocation sets the time zone that decides where a day starts.
func WithLocation(loc *time.Location) LedgerServiceOption {
	return func(s *ledgerService) {
		s.Location = loc
	}
}

// WithSnapshotWindow sets the default number of days ListSnapshots returns.
func WithSnapshotWindow(days int) LedgerServiceOption {
	return func(s *ledgerService) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// WithSyncTracker sets the tracker informed about store failures.
func WithSyncTracker(tracker portssvc.SyncStatusSvc) LedgerServiceOption {
	return func(s *ledgerService) {
		s.sync = tracker
	}
}

// NewLedgerService creates the ledger service on top of a store.
func NewLedgerService(repo portsrepo.LedgerRepositoryFacade, feed portsrepo.ChangeFeed, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		BaseService: newBaseService(),
		repo:        repo,
		feed:        feed,
		windowDays:  DefaultSnapshotWindowDays,
	}

	for _, option := range options {
		option(svc)
	}
	if svc.sync == nil {
		svc.sync = NewSyncTracker(repo, nil, svc.Clock)
	}

	return svc
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// RecordTransaction implements portssvc.LedgerWriterSvc.
func (s *ledgerService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (*domain.Transaction, error) {
	if req.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required", apperrors.ErrInvalidAmount)
	}

	now := s.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          req.Type,
		Amount:        *req.Amount,
		Category:      req.Category,
		Note:          strings.TrimSpace(req.Note),
		PaymentMethod: req.PaymentMethod,
		Timestamp:     now,
	}
	if err := txn.Validate(); err != nil {
		s.LogDebug(ctx, "Rejected transaction", slog.String("reason", err.Error()))
		return nil, err
	}

	err := s.write(ctx, "record_transaction", func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if err := tx.AppendTransaction(ctx, txn); err != nil {
			return err
		}
		// Non-cash payments leave the cash account, its log and the snapshots alone.
		if !txn.AffectsCash() {
			return nil
		}
		acc, err := tx.LockCashAccount(ctx)
		if err != nil {
			return err
		}
		txnID := txn.TransactionID
		_, _, err = s.applyCashMovement(ctx, tx, acc, domain.CashMovement{
			Amount:        txn.CashDelta(),
			Source:        domain.SourceOther,
			Note:          txn.CashNote(),
			At:            now,
			TransactionID: &txnID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("payment_method", string(txn.PaymentMethod)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// AddCash implements portssvc.LedgerWriterSvc.
func (s *ledgerService) AddCash(ctx context.Context, req dto.AddCashRequest) (*domain.CashTransaction, error) {
	if req.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required", apperrors.ErrInvalidAmount)
	}
	mv := domain.CashMovement{
		Amount: *req.Amount,
		Source: req.Source,
		Note:   strings.TrimSpace(req.Note),
		At:     s.Now(),
	}
	if err := mv.Validate(); err != nil {
		s.LogDebug(ctx, "Rejected cash movement", slog.String("reason", err.Error()))
		return nil, err
	}

	var entry *domain.CashTransaction
	err := s.write(ctx, "add_cash", func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := tx.LockCashAccount(ctx)
		if err != nil {
			return err
		}
		entry, _, err = s.applyCashMovement(ctx, tx, acc, mv)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Cash movement recorded",
		slog.String("cash_transaction_id", entry.CashTransactionID),
		slog.String("source", string(entry.Source)),
		slog.String("amount", entry.Amount.String()))
	return entry, nil
}

// Reconcile implements portssvc.LedgerWriterSvc.
func (s *ledgerService) Reconcile(ctx context.Context, req dto.ReconcileRequest) (*domain.Reconciliation, error) {
	if req.ActualAmount == nil {
		return nil, fmt.Errorf("%w: actual amount is required", apperrors.ErrInvalidAmount)
	}
	actual := *req.ActualAmount
	if actual.IsNegative() {
		return nil, fmt.Errorf("%w: counted cash cannot be negative, got %s", apperrors.ErrInvalidAmount, actual.String())
	}

	now := s.Now()
	today := s.DayKey(now)
	var result domain.Reconciliation
	err := s.write(ctx, "reconcile", func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := tx.LockCashAccount(ctx)
		if err != nil {
			return err
		}
		expected := acc.Balance
		diff := actual.Sub(expected)

		if _, err := tx.EnsureSnapshot(ctx, today, expected, now); err != nil {
			return err
		}
		snap, err := tx.UpsertSnapshot(ctx, domain.SnapshotPatch{
			Date:          today,
			ActualBalance: &actual,
			Difference:    &diff,
			At:            now,
		}, expected)
		if err != nil {
			return err
		}

		result = domain.Reconciliation{Date: today, Expected: expected, Actual: actual, Difference: diff, Snapshot: snap}
		if diff.IsZero() {
			return nil
		}
		adj, snap, err := s.applyCashMovement(ctx, tx, acc, domain.CashMovement{
			Amount: diff,
			Source: domain.SourceAdjustment,
			Note:   domain.ReconciliationNote,
			At:     now,
		})
		if err != nil {
			return err
		}
		result.Adjustment = adj
		result.Snapshot = snap
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Cash reconciled",
		slog.String("date", today),
		slog.String("expected", result.Expected.String()),
		slog.String("actual", result.Actual.String()),
		slog.String("difference", result.Difference.String()))
	return &result, nil
}

// EnsureTodaySnapshot implements portssvc.LedgerWriterSvc.
func (s *ledgerService) EnsureTodaySnapshot(ctx context.Context) (*domain.DailySnapshot, error) {
	now := s.Now()
	today := s.DayKey(now)
	var snap domain.DailySnapshot
	err := s.write(ctx, "ensure_snapshot", func(ctx context.Context, tx portsrepo.LedgerTx) error {
		acc, err := tx.LockCashAccount(ctx)
		if err != nil {
			return err
		}
		snap, err = tx.EnsureSnapshot(ctx, today, acc.Balance, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.ensuredMu.Lock()
	s.ensuredToday = today
	s.ensuredMu.Unlock()
	return &snap, nil
}

// ensureToday bootstraps today's snapshot once per day and process before a read.
func (s *ledgerService) ensureToday(ctx context.Context) error {
	s.ensuredMu.Lock()
	done := s.ensuredToday == s.DayKey(s.Now())
	s.ensuredMu.Unlock()
	if done {
		return nil
	}
	_, err := s.EnsureTodaySnapshot(ctx)
	return err
}

// applyCashMovement is the single primitive through which the cash balance changes. It must run
// inside RunInTx with acc obtained from tx.LockCashAccount. It returns the new log entry and
// today's snapshot after the change.
func (s *ledgerService) applyCashMovement(ctx context.Context, tx portsrepo.LedgerTx, acc domain.CashAccount, mv domain.CashMovement) (*domain.CashTransaction, domain.DailySnapshot, error) {
	if err := mv.Validate(); err != nil {
		return nil, domain.DailySnapshot{}, err
	}
	today := s.DayKey(mv.At)

	// Bootstrap with the balance from before the movement so the day keeps its opening value.
	if _, err := tx.EnsureSnapshot(ctx, today, acc.Balance, mv.At); err != nil {
		return nil, domain.DailySnapshot{}, err
	}

	updated := acc.Apply(mv.Amount, mv.At)
	if err := tx.SaveCashAccount(ctx, updated); err != nil {
		return nil, domain.DailySnapshot{}, err
	}

	entry := domain.CashTransaction{
		CashTransactionID: uuid.NewString(),
		Amount:            mv.Amount,
		Source:            mv.Source,
		Note:              mv.Note,
		Timestamp:         mv.At,
		TransactionID:     mv.TransactionID,
	}
	if err := tx.AppendCashTransaction(ctx, entry); err != nil {
		return nil, domain.DailySnapshot{}, err
	}

	expected := updated.Balance
	snap, err := tx.UpsertSnapshot(ctx, domain.SnapshotPatch{Date: today, ExpectedBalance: &expected, At: mv.At}, updated.Balance)
	if err != nil {
		return nil, domain.DailySnapshot{}, err
	}
	return &entry, snap, nil
}

// write runs fn atomically and keeps the sync state in line with the outcome.
func (s *ledgerService) write(ctx context.Context, op string, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	err := s.repo.RunInTx(ctx, fn)
	if err == nil {
		s.sync.MarkSuccess(ctx)
		return nil
	}
	switch {
	case apperrors.IsStoreError(err):
		s.sync.MarkFailure(ctx, err)
		s.LogError(ctx, err, "Ledger write failed", slog.String("operation", op))
	case errors.Is(err, apperrors.ErrConcurrentUpdate):
		s.GetLogger(ctx).Warn("Ledger write lost a concurrent update", slog.String("operation", op))
	}
	return err
}

// observe records the store outcome of a read.
func (s *ledgerService) observe(ctx context.Context, err error) {
	switch {
	case err == nil:
		s.sync.MarkSuccess(ctx)
	case apperrors.IsStoreError(err):
		s.sync.MarkFailure(ctx, err)
	}
}

// ListTransactions implements portssvc.LedgerReaderSvc.
func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	var filter domain.TransactionFilter
	if params.Month != "" {
		from, to, err := domain.MonthRange(params.Month, s.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		filter = domain.TransactionFilter{From: &from, To: &to}
	}

	txns, next, err := s.repo.ListTransactions(ctx, filter, clampLimit(params.Limit), params.NextToken)
	s.observe(ctx, err)
	if err != nil {
		return nil, err
	}
	return &dto.ListTransactionsResponse{Transactions: dto.ToTransactionResponses(txns), NextToken: next}, nil
}

// GetCashAccount implements portssvc.LedgerReaderSvc.
func (s *ledgerService) GetCashAccount(ctx context.Context) (*domain.CashAccount, error) {
	if err := s.ensureToday(ctx); err != nil {
		return nil, err
	}
	acc, err := s.repo.GetCashAccount(ctx)
	s.observe(ctx, err)
	return acc, err
}

// ListCashTransactions implements portssvc.LedgerReaderSvc.
func (s *ledgerService) ListCashTransactions(ctx context.Context, params dto.ListCashTransactionsParams) (*dto.ListCashTransactionsResponse, error) {
	entries, next, err := s.repo.ListCashTransactions(ctx, clampLimit(params.Limit), params.NextToken)
	s.observe(ctx, err)
	if err != nil {
		return nil, err
	}
	return &dto.ListCashTransactionsResponse{Movements: dto.ToCashTransactionResponses(entries), NextToken: next}, nil
}

// ListSnapshots implements portssvc.LedgerReaderSvc.
func (s *ledgerService) ListSnapshots(ctx context.Context, days int) ([]domain.DailySnapshot, error) {
	if days <= 0 {
		days = s.windowDays
	}
	if err := s.ensureToday(ctx); err != nil {
		return nil, err
	}
	since := s.DayKey(s.Now().In(s.location()).AddDate(0, 0, -(days - 1)))
	snaps, err := s.repo.ListSnapshots(ctx, since, days)
	s.observe(ctx, err)
	return snaps, err
}

// GetSnapshot implements portssvc.LedgerReaderSvc.
func (s *ledgerService) GetSnapshot(ctx context.Context, date string) (*domain.DailySnapshot, error) {
	if _, err := domain.ParseDayKey(date, s.Location); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	if date == s.Today() {
		if err := s.ensureToday(ctx); err != nil {
			return nil, err
		}
	}
	snap, err := s.repo.FindSnapshot(ctx, date)
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.observe(ctx, err)
	}
	return snap, err
}

// Today implements portssvc.LedgerReaderSvc.
func (s *ledgerService) Today() string {
	return s.DayKey(s.Now())
}

// Subscribe implements portssvc.LedgerFeedSvc.
func (s *ledgerService) Subscribe(ctx context.Context, collections ...domain.Collection) (<-chan domain.ChangeEvent, func()) {
	return s.feed.Subscribe(ctx, collections...)
}

func (s *ledgerService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultPageLimit
	case limit > maxPageLimit:
		return maxPageLimit
	default:
		return limit
	}
}
