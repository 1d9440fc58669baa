package services

import (
	"context"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/SscSPs/cashkeeper/internal/dto"
)

// LedgerWriterSvc defines the mutations of the ledger. Each one commits atomically or not at all.
type LedgerWriterSvc interface {
	// RecordTransaction validates and appends an income or expense. Cash-settled transactions
	// also move the cash balance, the cash log and today's snapshot.
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (*domain.Transaction, error)

	// AddCash moves cash without a ledger transaction. Amounts of either sign are accepted;
	// zero is rejected with apperrors.ErrInvalidAmount since no movement can be logged for it.
	AddCash(ctx context.Context, req dto.AddCashRequest) (*domain.CashTransaction, error)

	// Reconcile records a physical cash count for today and books any difference as an adjustment.
	// A zero count is valid; a negative count is rejected with apperrors.ErrInvalidAmount.
	Reconcile(ctx context.Context, req dto.ReconcileRequest) (*domain.Reconciliation, error)

	// EnsureTodaySnapshot creates today's snapshot from the current balance if it does not exist.
	EnsureTodaySnapshot(ctx context.Context) (*domain.DailySnapshot, error)
}

// LedgerReaderSvc defines the views of the ledger.
type LedgerReaderSvc interface {
	// ListTransactions returns the transaction history, newest first.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// GetCashAccount returns the cash balance.
	GetCashAccount(ctx context.Context) (*domain.CashAccount, error)

	// ListCashTransactions returns the cash log, newest first.
	ListCashTransactions(ctx context.Context, params dto.ListCashTransactionsParams) (*dto.ListCashTransactionsResponse, error)

	// ListSnapshots returns the snapshots of the last days calendar days, newest first.
	ListSnapshots(ctx context.Context, days int) ([]domain.DailySnapshot, error)

	// GetSnapshot returns the snapshot of one day.
	GetSnapshot(ctx context.Context, date string) (*domain.DailySnapshot, error)

	// Today returns the day key of the current instant in the ledger's time zone.
	Today() string
}

// LedgerFeedSvc exposes committed changes to observers.
type LedgerFeedSvc interface {
	Subscribe(ctx context.Context, collections ...domain.Collection) (<-chan domain.ChangeEvent, func())
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
	LedgerFeedSvc
}
