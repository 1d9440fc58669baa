package dto

import (
	"time"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddCashRequest moves cash in (positive amount) or out (negative amount) without a transaction.
type AddCashRequest struct {
	Amount *decimal.Decimal  `json:"amount" binding:"required"`
	Source domain.CashSource `json:"source" binding:"required,oneof=Salary Gift Withdrawal Other Adjustment"`
	Note   string            `json:"note" binding:"max=500"`
}

// ReconcileRequest carries the physically counted cash.
type ReconcileRequest struct {
	ActualAmount *decimal.Decimal `json:"actualAmount" binding:"required"`
}

// CashAccountResponse defines the data returned for the cash balance.
type CashAccountResponse struct {
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"lastUpdated"`
	// Today is the snapshot of the current day, bootstrapped on read.
	Today *SnapshotResponse `json:"today,omitempty"`
}

// CashTransactionResponse defines the data returned for a cash log entry.
type CashTransactionResponse struct {
	CashTransactionID string            `json:"cashTransactionID"`
	Amount            decimal.Decimal   `json:"amount"`
	Source            domain.CashSource `json:"source"`
	Note              string            `json:"note"`
	Timestamp         time.Time         `json:"timestamp"`
	TransactionID     *string           `json:"transactionID,omitempty"`
}

// ListCashTransactionsParams defines query parameters for the cash log.
type ListCashTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListCashTransactionsResponse wraps a page of cash log entries.
type ListCashTransactionsResponse struct {
	Movements []CashTransactionResponse `json:"movements"`
	NextToken *string                   `json:"nextToken,omitempty"`
}

// ReconciliationResponse defines the outcome of a cash count.
type ReconciliationResponse struct {
	Date       string                   `json:"date"`
	Expected   decimal.Decimal          `json:"expected"`
	Actual     decimal.Decimal          `json:"actual"`
	Difference decimal.Decimal          `json:"difference"`
	Adjustment *CashTransactionResponse `json:"adjustment,omitempty"`
	Snapshot   SnapshotResponse         `json:"snapshot"`
}

// ToCashAccountResponse converts a domain.CashAccount, with today's snapshot if known.
func ToCashAccountResponse(acc *domain.CashAccount, today *domain.DailySnapshot) CashAccountResponse {
	res := CashAccountResponse{Balance: acc.Balance, LastUpdated: acc.LastUpdated}
	if today != nil {
		s := ToSnapshotResponse(today)
		res.Today = &s
	}
	return res
}

// ToCashTransactionResponse converts a domain.CashTransaction to CashTransactionResponse DTO.
func ToCashTransactionResponse(ct *domain.CashTransaction) CashTransactionResponse {
	return CashTransactionResponse{
		CashTransactionID: ct.CashTransactionID,
		Amount:            ct.Amount,
		Source:            ct.Source,
		Note:              ct.Note,
		Timestamp:         ct.Timestamp,
		TransactionID:     ct.TransactionID,
	}
}

// ToCashTransactionResponses converts a slice of domain.CashTransaction.
func ToCashTransactionResponses(entries []domain.CashTransaction) []CashTransactionResponse {
	res := make([]CashTransactionResponse, len(entries))
	for i, e := range entries {
		res[i] = ToCashTransactionResponse(&e)
	}
	return res
}

// ToReconciliationResponse converts a domain.Reconciliation to ReconciliationResponse DTO.
func ToReconciliationResponse(r *domain.Reconciliation) ReconciliationResponse {
	res := ReconciliationResponse{
		Date:       r.Date,
		Expected:   r.Expected,
		Actual:     r.Actual,
		Difference: r.Difference,
		Snapshot:   ToSnapshotResponse(&r.Snapshot),
	}
	if r.Adjustment != nil {
		adj := ToCashTransactionResponse(r.Adjustment)
		res.Adjustment = &adj
	}
	return res
}
