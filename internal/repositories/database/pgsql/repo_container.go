package pgsql

import (
	"log/slog"

	portsrepo "github.com/SscSPs/cashkeeper/internal/core/ports/repositories"
	"github.com/SscSPs/cashkeeper/internal/platform/feed"
	"github.com/SscSPs/cashkeeper/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL ledger store for ledgerID. The returned Listener must
// be started for changes made by other processes to reach local subscribers.
func NewRepositoryProvider(dbPool *pgxpool.Pool, ledgerID string, hub *feed.Hub, logger *slog.Logger) (portsrepo.RepositoryProvider, *Listener) {
	if hub == nil {
		hub = feed.NewHub(feed.DefaultBuffer)
	}
	origin := uuid.NewString()
	ledgerRepo := newPgxLedgerRepository(dbPool, ledgerID, origin, hub)
	listener := NewListener(dbPool, ledgerID, origin, hub, logger)

	return portsrepo.RepositoryProvider{
		LedgerRepo: ledgerRepo,
		Feed:       hub,
		Publisher:  hub,
		Close:      func() { database.ClosePgxPool(dbPool) },
	}, listener
}
