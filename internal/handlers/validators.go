package handlers

import (
	"sync"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/SscSPs/cashkeeper/internal/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the ledger's struct-level rules to gin's binding validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterStructValidation(recordTransactionValidation, dto.RecordTransactionRequest{})
		}
	})
}

// recordTransactionValidation rejects non-positive amounts and categories outside the set
// permitted for the transaction type.
func recordTransactionValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.RecordTransactionRequest)
	if req.Amount != nil && !req.Amount.IsPositive() {
		sl.ReportError(req.Amount, "Amount", "amount", "gt_zero", "")
	}
	// Missing or unknown types are reported by the field tags
	if req.Type.IsValid() && req.Category != "" && !req.Type.Allows(req.Category) {
		sl.ReportError(req.Category, "Category", "category", "category_for_type", string(req.Type))
	}
}

// categoryOptions lists the categories a client may offer for each type.
func categoryOptions() map[domain.TransactionType][]domain.Category {
	return map[domain.TransactionType][]domain.Category{
		domain.Income:  domain.CategoriesFor(domain.Income),
		domain.Expense: domain.CategoriesFor(domain.Expense),
	}
}
