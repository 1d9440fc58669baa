package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashAccount is the singleton aggregate holding the physical-cash balance of a ledger.
type CashAccount struct {
	LedgerID    string          `json:"ledgerID"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"lastUpdated"`
	// Version increases by one on every mutation and guards compare-and-swap writes.
	Version int64 `json:"version"`
}

// NewCashAccount returns the zero-balance account a ledger starts with.
func NewCashAccount(ledgerID string, at time.Time) CashAccount {
	return CashAccount{LedgerID: ledgerID, Balance: decimal.Zero, LastUpdated: at}
}

// Apply returns the account after adding delta at the given instant.
func (a CashAccount) Apply(delta decimal.Decimal, at time.Time) CashAccount {
	a.Balance = a.Balance.Add(delta)
	a.LastUpdated = at
	a.Version++
	return a
}
