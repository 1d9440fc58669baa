package domain

import (
	"encoding/json"
	"time"
)

// Collection names one of the ledger's stores.
type Collection string

const (
	CollectionTransactions     Collection = "transactions"
	CollectionCashAccount      Collection = "cash_account"
	CollectionCashTransactions Collection = "cash_transactions"
	CollectionSnapshots        Collection = "daily_snapshots"
	// CollectionSync carries SyncState changes rather than stored records.
	CollectionSync Collection = "sync"
)

// ChangeOp describes how a record changed.
type ChangeOp string

const (
	OpAppend ChangeOp = "append"
	OpUpsert ChangeOp = "upsert"
)

// ChangeEvent is published once a committed write touched a record.
type ChangeEvent struct {
	Collection Collection      `json:"collection"`
	Op         ChangeOp        `json:"op"`
	Key        string          `json:"key"`
	Record     json.RawMessage `json:"record"`
	At         time.Time       `json:"at"`
}

// NewChangeEvent encodes record into an event.
func NewChangeEvent(c Collection, op ChangeOp, key string, record any, at time.Time) (ChangeEvent, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return ChangeEvent{}, err
	}
	return ChangeEvent{Collection: c, Op: op, Key: key, Record: raw, At: at}, nil
}
