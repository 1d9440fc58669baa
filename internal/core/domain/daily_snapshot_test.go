package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestDailySnapshot_Merge(t *testing.T) {
	t0 := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	s := domain.NewSnapshot("2026-10-19", decimal.NewFromInt(100), t0)
	assert.False(t, s.IsReconciled())

	// Reconciled: actual and difference set, expected untouched.
	s = s.Merge(domain.SnapshotPatch{
		Date:          "2026-10-19",
		ActualBalance: decimalPtr(decimal.NewFromInt(85)),
		Difference:    decimalPtr(decimal.NewFromInt(-15)),
		At:            t0.Add(time.Hour),
	})
	require.True(t, s.IsReconciled())
	assert.True(t, s.ExpectedBalance.Equal(decimal.NewFromInt(100)))
	assert.True(t, s.ActualBalance.Equal(decimal.NewFromInt(85)))
	assert.Equal(t, t0.Add(time.Hour), s.LastUpdatedAt)

	// A later expected-balance update keeps the earlier count.
	s = s.Merge(domain.SnapshotPatch{Date: "2026-10-19", ExpectedBalance: decimalPtr(decimal.NewFromInt(70))})
	assert.True(t, s.ExpectedBalance.Equal(decimal.NewFromInt(70)))
	assert.True(t, s.ActualBalance.Equal(decimal.NewFromInt(85)))
	assert.True(t, s.Difference.Equal(decimal.NewFromInt(-15)))
	assert.Equal(t, t0.Add(time.Hour), s.LastUpdatedAt, "zero patch time leaves LastUpdatedAt alone")
}

func TestCashAccount_Apply(t *testing.T) {
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	acct := domain.NewCashAccount("default", at)

	acct = acct.Apply(decimal.NewFromInt(500), at.Add(time.Minute))
	acct = acct.Apply(decimal.NewFromInt(-120), at.Add(2*time.Minute))

	assert.True(t, acct.Balance.Equal(decimal.NewFromInt(380)))
	assert.Equal(t, int64(2), acct.Version)
	assert.Equal(t, at.Add(2*time.Minute), acct.LastUpdated)
}

func TestCashMovement_Validate(t *testing.T) {
	assert.NoError(t, domain.CashMovement{Amount: decimal.NewFromInt(-20), Source: domain.SourceOther}.Validate())
	assert.ErrorIs(t, domain.CashMovement{Amount: decimal.Zero, Source: domain.SourceGift}.Validate(), apperrors.ErrInvalidAmount)
	assert.ErrorIs(t, domain.CashMovement{Amount: decimal.NewFromInt(5), Source: "Lottery"}.Validate(), apperrors.ErrValidation)
}

func TestDayKey(t *testing.T) {
	addis := time.FixedZone("EAT", 3*60*60)

	// 22:30 UTC is already the next day in UTC+3.
	instant := time.Date(2026, 10, 19, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-19", domain.DayKey(instant, time.UTC))
	assert.Equal(t, "2026-10-20", domain.DayKey(instant, addis))
	assert.Equal(t, "2026-10-19", domain.DayKey(instant, nil))

	start, err := domain.ParseDayKey("2026-10-20", addis)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", domain.DayKey(start, addis))

	_, err = domain.ParseDayKey("20-10-2026", time.UTC)
	assert.Error(t, err)
}

func TestMonthRange(t *testing.T) {
	from, to, err := domain.MonthRange("2026-12", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), to)

	_, _, err = domain.MonthRange("December", time.UTC)
	assert.Error(t, err)
}
