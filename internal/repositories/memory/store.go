package memory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
	"github.com/SscSPs/cashkeeper/internal/platform/feed"
	"github.com/SscSPs/cashkeeper/internal/utils/pagination"
)

const defaultPageSize = 20

// Store is a single-writer ledger store kept in memory and optionally mirrored to a JSON file.
// Transactions are serialized by one mutex; readers see only committed state.
type Store struct {
	ledgerID string
	hub      *feed.Hub
	persist  persister
	path     string

	writeMu sync.Mutex // held for the whole of RunInTx

	mu    sync.RWMutex // guards state
	state *ledgerState
}

// Ensure Store implements the ledger repository interfaces
var (
	_ portsrepo.LedgerRepositoryFacade = (*Store)(nil)
	_ portsrepo.ChangeFeed             = (*Store)(nil)
)

// NewInMemory creates a store that keeps the ledger only for the lifetime of the process.
func NewInMemory(ledgerID string, hub *feed.Hub) *Store {
	s, _ := open(ledgerID, hub, volatile{}, "")
	return s
}

// OpenFile loads the ledger from path, creating an empty one if the file does not exist.
func OpenFile(ledgerID, path string, hub *feed.Hub) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("ledger file path must not be empty")
	}
	return open(ledgerID, hub, jsonFile{path: path}, path)
}

func open(ledgerID string, hub *feed.Hub, p persister, path string) (*Store, error) {
	if hub == nil {
		hub = feed.NewHub(feed.DefaultBuffer)
	}
	state, err := p.load(ledgerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrStoreUnavailable, err)
	}
	return &Store{ledgerID: ledgerID, hub: hub, persist: p, path: path, state: state}, nil
}

// RunInTx implements portsrepo.LedgerUnitOfWork. fn works on a staged copy of the ledger that
// replaces the committed state only after it has been persisted.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	staged := s.state.clone()
	s.mu.RUnlock()

	tx := &ledgerTx{ledgerID: s.ledgerID, state: staged}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if len(tx.events) == 0 {
		return nil
	}
	if err := s.persist.save(staged); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStoreWriteFailed, err)
	}

	s.mu.Lock()
	s.state = staged
	s.mu.Unlock()

	s.hub.Publish(tx.events...)
	return nil
}

// Subscribe implements portsrepo.ChangeFeed.
func (s *Store) Subscribe(ctx context.Context, collections ...domain.Collection) (<-chan domain.ChangeEvent, func()) {
	return s.hub.Subscribe(ctx, collections...)
}

// Publish implements portsrepo.ChangePublisher.
func (s *Store) Publish(events ...domain.ChangeEvent) {
	s.hub.Publish(events...)
}

// Ping implements portsrepo.HealthChecker. A file store is healthy while its directory exists.
func (s *Store) Ping(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStoreUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", apperrors.ErrStoreUnavailable, dir)
	}
	return nil
}

// GetCashAccount implements portsrepo.CashReader.
func (s *Store) GetCashAccount(ctx context.Context) (*domain.CashAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Account == nil {
		acc := domain.NewCashAccount(s.ledgerID, time.Time{})
		return &acc, nil
	}
	acc := *s.state.Account
	return &acc, nil
}

// ListCashTransactions implements portsrepo.CashReader.
func (s *Store) ListCashTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.CashTransaction, *string, error) {
	s.mu.RLock()
	entries := slices.Clone(s.state.CashTransactions)
	s.mu.RUnlock()

	slices.SortStableFunc(entries, func(a, b domain.CashTransaction) int {
		return newestFirst(a.Timestamp, a.CashTransactionID, b.Timestamp, b.CashTransactionID)
	})
	return page(entries, limit, nextToken, func(e domain.CashTransaction) (time.Time, string) {
		return e.Timestamp, e.CashTransactionID
	})
}

// ListTransactions implements portsrepo.TransactionReader.
func (s *Store) ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	txns := s.matching(filter)
	slices.SortStableFunc(txns, func(a, b domain.Transaction) int {
		return newestFirst(a.Timestamp, a.TransactionID, b.Timestamp, b.TransactionID)
	})
	return page(txns, limit, nextToken, func(t domain.Transaction) (time.Time, string) {
		return t.Timestamp, t.TransactionID
	})
}

// FindTransactionsInRange implements portsrepo.TransactionReader.
func (s *Store) FindTransactionsInRange(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	txns := s.matching(filter)
	slices.SortStableFunc(txns, func(a, b domain.Transaction) int {
		return -newestFirst(a.Timestamp, a.TransactionID, b.Timestamp, b.TransactionID)
	})
	return txns, nil
}

func (s *Store) matching(filter domain.TransactionFilter) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, 0, len(s.state.Transactions))
	for _, t := range s.state.Transactions {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// FindSnapshot implements portsrepo.SnapshotReader.
func (s *Store) FindSnapshot(ctx context.Context, date string) (*domain.DailySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.state.Snapshots[date]
	if !ok {
		return nil, fmt.Errorf("%w: no snapshot for %s", apperrors.ErrNotFound, date)
	}
	return &snap, nil
}

// ListSnapshots implements portsrepo.SnapshotReader.
func (s *Store) ListSnapshots(ctx context.Context, sinceDate string, limit int) ([]domain.DailySnapshot, error) {
	s.mu.RLock()
	out := make([]domain.DailySnapshot, 0, len(s.state.Snapshots))
	for date, snap := range s.state.Snapshots {
		if date >= sinceDate {
			out = append(out, snap)
		}
	}
	s.mu.RUnlock()

	// Day keys sort lexicographically in calendar order
	slices.SortFunc(out, func(a, b domain.DailySnapshot) int {
		return strings.Compare(b.Date, a.Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newestFirst(ta time.Time, ida string, tb time.Time, idb string) int {
	if c := tb.Compare(ta); c != 0 {
		return c
	}
	return strings.Compare(idb, ida)
}

// page cuts a newest-first slice at the cursor carried by nextToken.
func page[T any](items []T, limit int, nextToken *string, key func(T) (time.Time, string)) ([]T, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	start := 0
	if nextToken != nil && *nextToken != "" {
		cur, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %w", apperrors.ErrValidation, err)
		}
		start = len(items)
		for i, item := range items {
			ts, id := key(item)
			if cur.Before(ts, id) {
				start = i
				break
			}
		}
	}
	items = items[start:]
	if len(items) <= limit {
		return items, nil, nil
	}
	items = items[:limit]
	ts, id := key(items[len(items)-1])
	token := pagination.EncodeToken(ts, id)
	return items, &token, nil
}
