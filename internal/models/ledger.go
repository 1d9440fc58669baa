package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	LedgerID      string          `db:"ledger_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	Category      string          `db:"category"`
	Note          string          `db:"note"`
	PaymentMethod string          `db:"payment_method"`
	OccurredAt    time.Time       `db:"occurred_at"`
}

// CashAccount is a row of the cash_accounts table, one per ledger.
type CashAccount struct {
	LedgerID      string          `db:"ledger_id"`
	Balance       decimal.Decimal `db:"balance"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
	Version       int64           `db:"version"`
}

// CashTransaction is a row of the cash_transactions table.
type CashTransaction struct {
	CashTransactionID string          `db:"cash_transaction_id"`
	LedgerID          string          `db:"ledger_id"`
	Amount            decimal.Decimal `db:"amount"`
	Source            string          `db:"source"`
	Note              string          `db:"note"`
	OccurredAt        time.Time       `db:"occurred_at"`
	TransactionID     *string         `db:"transaction_id"` // Nullable
}

// DailySnapshot is a row of the daily_snapshots table, keyed by (ledger_id, snapshot_date).
type DailySnapshot struct {
	LedgerID        string              `db:"ledger_id"`
	SnapshotDate    string              `db:"snapshot_date"` // Read back as YYYY-MM-DD
	ExpectedBalance decimal.Decimal     `db:"expected_balance"`
	ActualBalance   decimal.NullDecimal `db:"actual_balance"`
	Difference      decimal.NullDecimal `db:"difference"`
	LastUpdatedAt   time.Time           `db:"last_updated_at"`
}
