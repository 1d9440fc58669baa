package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySnapshot records the expected cash balance of a day and, once counted, the actual one.
type DailySnapshot struct {
	Date            string           `json:"date"` // YYYY-MM-DD in the ledger's time zone
	ExpectedBalance decimal.Decimal  `json:"expectedBalance"`
	ActualBalance   *decimal.Decimal `json:"actualBalance,omitempty"`
	Difference      *decimal.Decimal `json:"difference,omitempty"`
	LastUpdatedAt   time.Time        `json:"lastUpdatedAt"`
}

// IsReconciled reports whether a cash count has been recorded for the day.
// A reconciled row keeps its actual/difference even when the expected balance moves later that day.
func (s DailySnapshot) IsReconciled() bool {
	return s.ActualBalance != nil
}

// SnapshotPatch is a partial update of a day's snapshot. Nil fields are left untouched.
type SnapshotPatch struct {
	Date            string
	ExpectedBalance *decimal.Decimal
	ActualBalance   *decimal.Decimal
	Difference      *decimal.Decimal
	At              time.Time
}

// NewSnapshot bootstraps the row of a day with the balance known at that moment.
func NewSnapshot(date string, expected decimal.Decimal, at time.Time) DailySnapshot {
	return DailySnapshot{Date: date, ExpectedBalance: expected, LastUpdatedAt: at}
}

// Merge applies p on top of s.
func (s DailySnapshot) Merge(p SnapshotPatch) DailySnapshot {
	if p.ExpectedBalance != nil {
		s.ExpectedBalance = *p.ExpectedBalance
	}
	if p.ActualBalance != nil {
		v := *p.ActualBalance
		s.ActualBalance = &v
	}
	if p.Difference != nil {
		v := *p.Difference
		s.Difference = &v
	}
	if !p.At.IsZero() {
		s.LastUpdatedAt = p.At
	}
	return s
}

// Reconciliation is the outcome of a cash count.
type Reconciliation struct {
	Date       string           `json:"date"`
	Expected   decimal.Decimal  `json:"expected"` // Balance before the count
	Actual     decimal.Decimal  `json:"actual"`
	Difference decimal.Decimal  `json:"difference"`
	Adjustment *CashTransaction `json:"adjustment,omitempty"`
	Snapshot   DailySnapshot    `json:"snapshot"`
}
