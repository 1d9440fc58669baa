package mapping

import (
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/SscSPs/cashkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(ledgerID string, d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		LedgerID:      ledgerID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		Category:      string(d.Category),
		Note:          d.Note,
		PaymentMethod: string(d.PaymentMethod),
		OccurredAt:    d.Timestamp,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		Category:      domain.Category(m.Category),
		Note:          m.Note,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		Timestamp:     m.OccurredAt,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	res := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		res[i] = ToDomainTransaction(m)
	}
	return res
}

// ToModelCashAccount converts a domain CashAccount to a model CashAccount
func ToModelCashAccount(d domain.CashAccount) models.CashAccount {
	return models.CashAccount{
		LedgerID:      d.LedgerID,
		Balance:       d.Balance,
		LastUpdatedAt: d.LastUpdated,
		Version:       d.Version,
	}
}

// ToDomainCashAccount converts a model CashAccount to a domain CashAccount
func ToDomainCashAccount(m models.CashAccount) domain.CashAccount {
	return domain.CashAccount{
		LedgerID:    m.LedgerID,
		Balance:     m.Balance,
		LastUpdated: m.LastUpdatedAt,
		Version:     m.Version,
	}
}

// ToModelCashTransaction converts a domain CashTransaction to a model CashTransaction
func ToModelCashTransaction(ledgerID string, d domain.CashTransaction) models.CashTransaction {
	return models.CashTransaction{
		CashTransactionID: d.CashTransactionID,
		LedgerID:          ledgerID,
		Amount:            d.Amount,
		Source:            string(d.Source),
		Note:              d.Note,
		OccurredAt:        d.Timestamp,
		TransactionID:     d.TransactionID,
	}
}

// ToDomainCashTransaction converts a model CashTransaction to a domain CashTransaction
func ToDomainCashTransaction(m models.CashTransaction) domain.CashTransaction {
	return domain.CashTransaction{
		CashTransactionID: m.CashTransactionID,
		Amount:            m.Amount,
		Source:            domain.CashSource(m.Source),
		Note:              m.Note,
		Timestamp:         m.OccurredAt,
		TransactionID:     m.TransactionID,
	}
}

// ToDomainCashTransactionSlice converts a slice of model CashTransactions to domain CashTransactions
func ToDomainCashTransactionSlice(ms []models.CashTransaction) []domain.CashTransaction {
	res := make([]domain.CashTransaction, len(ms))
	for i, m := range ms {
		res[i] = ToDomainCashTransaction(m)
	}
	return res
}

// ToDomainDailySnapshot converts a model DailySnapshot to a domain DailySnapshot
func ToDomainDailySnapshot(m models.DailySnapshot) domain.DailySnapshot {
	return domain.DailySnapshot{
		Date:            m.SnapshotDate,
		ExpectedBalance: m.ExpectedBalance,
		ActualBalance:   fromNullDecimal(m.ActualBalance),
		Difference:      fromNullDecimal(m.Difference),
		LastUpdatedAt:   m.LastUpdatedAt,
	}
}

// ToNullDecimal converts an optional amount into its nullable column value.
func ToNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	v := n.Decimal
	return &v
}
