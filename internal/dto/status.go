package dto

import "github.com/SscSPs/cashkeeper/internal/core/domain"

// StatusResponse reports the ledger and its store connectivity.
type StatusResponse struct {
	LedgerID string           `json:"ledgerID"`
	Store    string           `json:"store"`
	Today    string           `json:"today"`
	Sync     domain.SyncState `json:"sync"`
}
