package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CashSource explains where a cash movement came from.
type CashSource string

const (
	SourceSalary     CashSource = "Salary"
	SourceGift       CashSource = "Gift"
	SourceWithdrawal CashSource = "Withdrawal"
	SourceOther      CashSource = "Other"
	SourceAdjustment CashSource = "Adjustment"
)

// ReconciliationNote is the note attached to adjustments created by a cash count.
const ReconciliationNote = "Reconciliation adjustment"

// IsValid reports whether s is a known cash source.
func (s CashSource) IsValid() bool {
	switch s {
	case SourceSalary, SourceGift, SourceWithdrawal, SourceOther, SourceAdjustment:
		return true
	}
	return false
}

// CashTransaction is an append-only entry of the cash log. Its signed amounts sum to the cash balance.
type CashTransaction struct {
	CashTransactionID string          `json:"cashTransactionID"`
	Amount            decimal.Decimal `json:"amount"` // Positive adds cash, negative removes it
	Source            CashSource      `json:"source"`
	Note              string          `json:"note"`
	Timestamp         time.Time       `json:"timestamp"`
	// TransactionID references the ledger transaction that produced this entry, if any.
	TransactionID *string `json:"transactionID,omitempty"`
}

// CashMovement is a request to move cash, before it has been given an identity.
type CashMovement struct {
	Amount        decimal.Decimal
	Source        CashSource
	Note          string
	At            time.Time
	TransactionID *string
}

// Validate rejects movements that would not change the balance or carry an unknown source.
func (m CashMovement) Validate() error {
	if m.Amount.IsZero() {
		return fmt.Errorf("%w: cash amount must not be zero", apperrors.ErrInvalidAmount)
	}
	if !m.Source.IsValid() {
		return fmt.Errorf("%w: unknown cash source %q", apperrors.ErrValidation, m.Source)
	}
	return nil
}

// SumCashTransactions returns the signed total of the given entries.
func SumCashTransactions(entries []CashTransaction) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}
