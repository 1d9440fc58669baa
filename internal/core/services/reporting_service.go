package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	txnReader portsrepo.TransactionReader
	sync      portssvc.SyncStatusSvc
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock sets the clock used to pick the current month.
func WithReportingClock(clock domain.Clock) ReportingServiceOption {
	return func(s *reportingService) {
		s.Clock = clock
	}
}

// WithReportingLocation sets the time zone months are cut in.
func WithReportingLocation(loc *time.Location) ReportingServiceOption {
	return func(s *reportingService) {
		s.Location = loc
	}
}

// WithReportingSyncTracker reports store outcomes of summaries to tracker.
func WithReportingSyncTracker(tracker portssvc.SyncStatusSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.sync = tracker
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(reader portsrepo.TransactionReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		BaseService: newBaseService(),
		txnReader:   reader,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// MonthlySummary aggregates the transactions of month. An empty month means the current one.
func (s *reportingService) MonthlySummary(ctx context.Context, month string) (*domain.MonthlySummary, error) {
	if month == "" {
		loc := s.Location
		if loc == nil {
			loc = time.UTC
		}
		month = s.Now().In(loc).Format("2006-01")
	}
	from, to, err := domain.MonthRange(month, s.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	txns, err := s.txnReader.FindTransactionsInRange(ctx, domain.TransactionFilter{From: &from, To: &to})
	if err != nil {
		if s.sync != nil && apperrors.IsStoreError(err) {
			s.sync.MarkFailure(ctx, err)
		}
		s.LogError(ctx, err, "Failed to retrieve transactions for monthly summary", slog.String("month", month))
		return nil, fmt.Errorf("failed to retrieve transactions for %s: %w", month, err)
	}
	if s.sync != nil {
		s.sync.MarkSuccess(ctx)
	}

	summary := summarize(month, txns)
	s.LogDebug(ctx, "Monthly summary generated",
		slog.String("month", month),
		slog.Int("transaction_count", summary.TransactionCount))
	return summary, nil
}

func summarize(month string, txns []domain.Transaction) *domain.MonthlySummary {
	summary := &domain.MonthlySummary{
		Month:        month,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		CashNet:      decimal.Zero,
		NonCashNet:   decimal.Zero,
		ExpenseByCat: []domain.CategoryAmount{},
	}
	byCategory := make(map[domain.Category]decimal.Decimal)

	for _, t := range txns {
		summary.TransactionCount++
		signed := t.CashDelta()
		if t.Type == domain.Income {
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		} else {
			summary.TotalExpense = summary.TotalExpense.Add(t.Amount)
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
		}
		if t.AffectsCash() {
			summary.CashNet = summary.CashNet.Add(signed)
		} else {
			summary.NonCashNet = summary.NonCashNet.Add(signed)
		}
	}
	summary.NetFlow = summary.TotalIncome.Sub(summary.TotalExpense)

	for cat, amount := range byCategory {
		summary.ExpenseByCat = append(summary.ExpenseByCat, domain.CategoryAmount{Category: cat, Amount: amount})
	}
	// Largest spend first, ties by name so output is stable
	slices.SortFunc(summary.ExpenseByCat, func(a, b domain.CategoryAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return strings.Compare(string(a.Category), string(b.Category))
	})
	return summary
}
