package domain

import "time"

// SyncStatus is the connectivity state between the engine and its durable store.
type SyncStatus string

const (
	SyncOnline   SyncStatus = "online"
	SyncDegraded SyncStatus = "degraded"
)

// SyncState is what callers show to the user so a degraded store is never silent.
type SyncState struct {
	Status        SyncStatus `json:"status"`
	LastError     string     `json:"lastError,omitempty"`
	Since         time.Time  `json:"since"`
	LastSuccessAt *time.Time `json:"lastSuccessAt,omitempty"`
}
