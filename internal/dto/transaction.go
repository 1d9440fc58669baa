package dto

import (
	"time"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest defines the data needed to record an income or expense.
type RecordTransactionRequest struct {
	Type          domain.TransactionType `json:"type" binding:"required,oneof=Income Expense"`
	Amount        *decimal.Decimal       `json:"amount" binding:"required"` // Pointer so a missing amount is not read as zero
	Category      domain.Category        `json:"category" binding:"required"`
	Note          string                 `json:"note" binding:"max=500"`
	PaymentMethod domain.PaymentMethod   `json:"paymentMethod" binding:"required,oneof=Cash Non-cash"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	Category      domain.Category        `json:"category"`
	Note          string                 `json:"note"`
	PaymentMethod domain.PaymentMethod   `json:"paymentMethod"`
	Timestamp     time.Time              `json:"timestamp"`
}

// ListTransactionsParams defines query parameters for the transaction history.
type ListTransactionsParams struct {
	Month     string  `form:"month"` // Optional YYYY-MM filter
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Type:          txn.Type,
		Amount:        txn.Amount,
		Category:      txn.Category,
		Note:          txn.Note,
		PaymentMethod: txn.PaymentMethod,
		Timestamp:     txn.Timestamp,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
