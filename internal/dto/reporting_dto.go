package dto

import (
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlySummaryParams defines query parameters for the monthly dashboard.
type MonthlySummaryParams struct {
	Month string `form:"month"` // YYYY-MM, defaults to the current month
}

// CategoryAmountResponse is the total of one category in a report.
type CategoryAmountResponse struct {
	Category domain.Category `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthlySummaryResponse represents the monthly dashboard report response
type MonthlySummaryResponse struct {
	Month             string                   `json:"month"`
	TotalIncome       decimal.Decimal          `json:"totalIncome"`
	TotalExpense      decimal.Decimal          `json:"totalExpense"`
	NetFlow           decimal.Decimal          `json:"netFlow"`
	CashNet           decimal.Decimal          `json:"cashNet"`
	NonCashNet        decimal.Decimal          `json:"nonCashNet"`
	ExpenseByCategory []CategoryAmountResponse `json:"expenseByCategory"`
	TransactionCount  int                      `json:"transactionCount"`
}

// ToMonthlySummaryResponse converts a domain.MonthlySummary to its response DTO.
func ToMonthlySummaryResponse(s *domain.MonthlySummary) MonthlySummaryResponse {
	cats := make([]CategoryAmountResponse, len(s.ExpenseByCat))
	for i, c := range s.ExpenseByCat {
		cats[i] = CategoryAmountResponse{Category: c.Category, Amount: c.Amount}
	}
	return MonthlySummaryResponse{
		Month:             s.Month,
		TotalIncome:       s.TotalIncome,
		TotalExpense:      s.TotalExpense,
		NetFlow:           s.NetFlow,
		CashNet:           s.CashNet,
		NonCashNet:        s.NonCashNet,
		ExpenseByCategory: cats,
		TransactionCount:  s.TransactionCount,
	}
}
