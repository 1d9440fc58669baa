package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
)

const fileFormatVersion = 1

// ledgerState is everything the store holds for one ledger. It is also the on-disk format.
type ledgerState struct {
	FormatVersion    int                             `json:"formatVersion"`
	LedgerID         string                          `json:"ledgerID"`
	Account          *domain.CashAccount             `json:"cashAccount,omitempty"`
	Transactions     []domain.Transaction            `json:"transactions"`
	CashTransactions []domain.CashTransaction        `json:"cashTransactions"`
	Snapshots        map[string]domain.DailySnapshot `json:"snapshots"`
}

func newLedgerState(ledgerID string) *ledgerState {
	return &ledgerState{
		FormatVersion: fileFormatVersion,
		LedgerID:      ledgerID,
		Snapshots:     make(map[string]domain.DailySnapshot),
	}
}

// clone returns a copy that can be staged without affecting readers. Records are values and
// never mutated in place, so a shallow copy of each collection is enough.
func (s *ledgerState) clone() *ledgerState {
	c := *s
	if s.Account != nil {
		acc := *s.Account
		c.Account = &acc
	}
	c.Transactions = slices.Clone(s.Transactions)
	c.CashTransactions = slices.Clone(s.CashTransactions)
	c.Snapshots = maps.Clone(s.Snapshots)
	if c.Snapshots == nil {
		c.Snapshots = make(map[string]domain.DailySnapshot)
	}
	return &c
}

// persister writes committed state somewhere durable.
type persister interface {
	load(ledgerID string) (*ledgerState, error)
	save(state *ledgerState) error
}

// volatile keeps nothing beyond the process lifetime.
type volatile struct{}

func (volatile) load(ledgerID string) (*ledgerState, error) { return newLedgerState(ledgerID), nil }
func (volatile) save(*ledgerState) error                    { return nil }

// jsonFile stores the whole ledger as one JSON document. Saves go to a temporary file in the
// same directory that is renamed over the previous version, so a crash never leaves half a file.
type jsonFile struct {
	path string
}

func (f jsonFile) load(ledgerID string) (*ledgerState, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return newLedgerState(ledgerID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file %s: %w", f.path, err)
	}
	defer file.Close()

	state := newLedgerState(ledgerID)
	if err := json.NewDecoder(file).Decode(state); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode ledger file %s: %w", f.path, err)
	}
	if state.LedgerID != ledgerID {
		return nil, fmt.Errorf("ledger file %s belongs to ledger %q, not %q", f.path, state.LedgerID, ledgerID)
	}
	if state.Snapshots == nil {
		state.Snapshots = make(map[string]domain.DailySnapshot)
	}
	return state, nil
}

func (f jsonFile) save(state *ledgerState) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary ledger file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close ledger file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace ledger file %s: %w", f.path, err)
	}
	return nil
}
