package domain

import (
	"github.com/shopspring/decimal"
)

// CategoryAmount is the total spent or earned in one category.
type CategoryAmount struct {
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthlySummary aggregates a month of transactions.
type MonthlySummary struct {
	Month            string           `json:"month"` // YYYY-MM
	TotalIncome      decimal.Decimal  `json:"totalIncome"`
	TotalExpense     decimal.Decimal  `json:"totalExpense"`
	NetFlow          decimal.Decimal  `json:"netFlow"`
	CashNet          decimal.Decimal  `json:"cashNet"`    // Net flow settled in cash
	NonCashNet       decimal.Decimal  `json:"nonCashNet"` // Net flow settled otherwise
	ExpenseByCat     []CategoryAmount `json:"expenseByCategory"`
	TransactionCount int              `json:"transactionCount"`
}
