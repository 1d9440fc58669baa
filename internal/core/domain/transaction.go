package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction brings money in or takes it out.
type TransactionType string

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

// Category classifies a transaction. The permitted set depends on the TransactionType.
type Category string

const (
	CategoryFood       Category = "Food"
	CategoryTransport  Category = "Transport"
	CategoryBills      Category = "Bills"
	CategoryFun        Category = "Fun"
	CategoryOther      Category = "Other"
	CategorySalary     Category = "Salary"
	CategorySideHustle Category = "Side Hustle"
	CategoryGift       Category = "Gift"
)

// PaymentMethod records how a transaction was settled.
type PaymentMethod string

const (
	Cash    PaymentMethod = "Cash"
	NonCash PaymentMethod = "Non-cash"
)

var (
	incomeCategories  = []Category{CategorySalary, CategorySideHustle, CategoryGift, CategoryOther}
	expenseCategories = []Category{CategoryFood, CategoryTransport, CategoryBills, CategoryFun, CategoryOther}
)

// CategoriesFor returns the categories a transaction of type t may carry.
func CategoriesFor(t TransactionType) []Category {
	switch t {
	case Income:
		return slices.Clone(incomeCategories)
	case Expense:
		return slices.Clone(expenseCategories)
	default:
		return nil
	}
}

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Multiplier is +1 for income and -1 for expenses.
func (t TransactionType) Multiplier() decimal.Decimal {
	if t == Income {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}

// Allows reports whether c belongs to the category domain of t.
func (t TransactionType) Allows(c Category) bool {
	switch t {
	case Income:
		return slices.Contains(incomeCategories, c)
	case Expense:
		return slices.Contains(expenseCategories, c)
	default:
		return false
	}
}

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	return m == Cash || m == NonCash
}

// Transaction is an immutable income or expense record in the ledger.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // Never negative
	Category      Category        `json:"category"`
	Note          string          `json:"note"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Validate checks the transaction's fields before anything is written.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: transaction amount must be positive, got %s", apperrors.ErrInvalidAmount, t.Amount.String())
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, t.Type)
	}
	if !t.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, t.PaymentMethod)
	}
	if !t.Type.Allows(t.Category) {
		return fmt.Errorf("%w: %q is not a valid %s category", apperrors.ErrInvalidCategoryForType, t.Category, t.Type)
	}
	return nil
}

// AffectsCash reports whether recording t changes the physical cash balance.
func (t Transaction) AffectsCash() bool {
	return t.PaymentMethod == Cash
}

// CashDelta is the signed change t applies to the cash balance.
func (t Transaction) CashDelta() decimal.Decimal {
	return t.Amount.Mul(t.Type.Multiplier())
}

// CashNote is the note carried by the cash log entry a cash transaction produces.
func (t Transaction) CashNote() string {
	return fmt.Sprintf("%s: %s", t.Type, t.Category)
}

// TransactionFilter narrows transaction queries to a half-open time range [From, To).
type TransactionFilter struct {
	From *time.Time
	To   *time.Time
}

// Matches reports whether t falls inside the filter range.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.From != nil && t.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.Timestamp.Before(*f.To) {
		return false
	}
	return true
}
