package services_test

import (
	"context"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
	"github.com/SscSPs/cashkeeper/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func memoryProvider(store *memory.Store) portsrepo.RepositoryProvider {
	return memory.NewRepositoryProvider(store)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockLedgerRepository) FindTransactionsInRange(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) GetCashAccount(ctx context.Context) (*domain.CashAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}

func (m *MockLedgerRepository) ListCashTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.CashTransaction, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.CashTransaction), nil, args.Error(2)
}

func (m *MockLedgerRepository) FindSnapshot(ctx context.Context, date string) (*domain.DailySnapshot, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySnapshot), args.Error(1)
}

func (m *MockLedgerRepository) ListSnapshots(ctx context.Context, sinceDate string, limit int) ([]domain.DailySnapshot, error) {
	args := m.Called(ctx, sinceDate, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailySnapshot), args.Error(1)
}

func (m *MockLedgerRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock ChangePublisher ---
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(events ...domain.ChangeEvent) {
	m.Called(events)
}

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
