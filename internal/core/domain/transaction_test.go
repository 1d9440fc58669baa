package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr error
	}{
		{
			name: "valid cash income",
			tx: domain.Transaction{
				Type:          domain.Income,
				Amount:        decimal.NewFromInt(500),
				Category:      domain.CategorySalary,
				PaymentMethod: domain.Cash,
				Timestamp:     now,
			},
		},
		{
			name: "valid non-cash expense with shared Other category",
			tx: domain.Transaction{
				Type:          domain.Expense,
				Amount:        decimal.RequireFromString("12.50"),
				Category:      domain.CategoryOther,
				PaymentMethod: domain.NonCash,
			},
		},
		{
			name: "zero amount",
			tx: domain.Transaction{
				Type:          domain.Expense,
				Amount:        decimal.Zero,
				Category:      domain.CategoryFood,
				PaymentMethod: domain.Cash,
			},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			tx: domain.Transaction{
				Type:          domain.Expense,
				Amount:        decimal.NewFromInt(-3),
				Category:      domain.CategoryFood,
				PaymentMethod: domain.Cash,
			},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name: "income with expense category",
			tx: domain.Transaction{
				Type:          domain.Income,
				Amount:        decimal.NewFromInt(10),
				Category:      domain.CategoryFood,
				PaymentMethod: domain.Cash,
			},
			wantErr: apperrors.ErrInvalidCategoryForType,
		},
		{
			name: "expense with income category",
			tx: domain.Transaction{
				Type:          domain.Expense,
				Amount:        decimal.NewFromInt(10),
				Category:      domain.CategorySalary,
				PaymentMethod: domain.NonCash,
			},
			wantErr: apperrors.ErrInvalidCategoryForType,
		},
		{
			name: "unknown payment method",
			tx: domain.Transaction{
				Type:          domain.Expense,
				Amount:        decimal.NewFromInt(10),
				Category:      domain.CategoryFun,
				PaymentMethod: "Card",
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "unknown type",
			tx: domain.Transaction{
				Type:          "Transfer",
				Amount:        decimal.NewFromInt(10),
				Category:      domain.CategoryOther,
				PaymentMethod: domain.Cash,
			},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_CashDelta(t *testing.T) {
	income := domain.Transaction{Type: domain.Income, Amount: decimal.NewFromInt(500), Category: domain.CategorySalary}
	expense := domain.Transaction{Type: domain.Expense, Amount: decimal.NewFromInt(120), Category: domain.CategoryFood}

	assert.True(t, income.CashDelta().Equal(decimal.NewFromInt(500)))
	assert.True(t, expense.CashDelta().Equal(decimal.NewFromInt(-120)))
	assert.Equal(t, "Income: Salary", income.CashNote())
	assert.Equal(t, "Expense: Food", expense.CashNote())
}

func TestCategoriesFor(t *testing.T) {
	assert.Equal(t, []domain.Category{domain.CategorySalary, domain.CategorySideHustle, domain.CategoryGift, domain.CategoryOther}, domain.CategoriesFor(domain.Income))
	assert.Equal(t, []domain.Category{domain.CategoryFood, domain.CategoryTransport, domain.CategoryBills, domain.CategoryFun, domain.CategoryOther}, domain.CategoriesFor(domain.Expense))
	assert.Nil(t, domain.CategoriesFor("Transfer"))

	// Returned slices are copies.
	cats := domain.CategoriesFor(domain.Income)
	cats[0] = domain.CategoryFood
	assert.True(t, domain.Income.Allows(domain.CategorySalary))
}

func TestTransactionFilter_Matches(t *testing.T) {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	f := domain.TransactionFilter{From: &from, To: &to}

	assert.True(t, f.Matches(domain.Transaction{Timestamp: from}))
	assert.True(t, f.Matches(domain.Transaction{Timestamp: to.Add(-time.Nanosecond)}))
	assert.False(t, f.Matches(domain.Transaction{Timestamp: to}))
	assert.False(t, f.Matches(domain.Transaction{Timestamp: from.Add(-time.Second)}))
	assert.True(t, domain.TransactionFilter{}.Matches(domain.Transaction{}))
}
