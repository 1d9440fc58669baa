package services

import (
	"context"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
)

// ReportingService defines the interface for reporting operations
type ReportingService interface {
	// MonthlySummary aggregates the transactions of month (YYYY-MM).
	MonthlySummary(ctx context.Context, month string) (*domain.MonthlySummary, error)
}
