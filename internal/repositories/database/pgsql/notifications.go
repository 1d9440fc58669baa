package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/SscSPs/cashkeeper/internal/platform/feed"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotifyChannel is the PostgreSQL channel carrying committed ledger changes.
const NotifyChannel = "cashkeeper_changes"

const (
	minListenBackoff = time.Second
	maxListenBackoff = 30 * time.Second
)

// changeNotification is the payload of one NOTIFY on NotifyChannel.
type changeNotification struct {
	Origin   string             `json:"origin"`
	LedgerID string             `json:"ledgerID"`
	Event    domain.ChangeEvent `json:"event"`
}

// notifyChanges queues one notification per event on tx. PostgreSQL delivers them on commit.
func notifyChanges(ctx context.Context, tx pgx.Tx, origin, ledgerID string, events []domain.ChangeEvent) error {
	batch := &pgx.Batch{}
	for _, ev := range events {
		payload, err := json.Marshal(changeNotification{Origin: origin, LedgerID: ledgerID, Event: ev})
		if err != nil {
			return fmt.Errorf("%w: encode change notification: %w", apperrors.ErrStoreWriteFailed, err)
		}
		batch.Queue("SELECT pg_notify($1, $2);", NotifyChannel, string(payload))
	}

	br := tx.SendBatch(ctx, batch)
	for range events {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return classify(err, "notify changes")
		}
	}
	if err := br.Close(); err != nil {
		return classify(err, "notify changes")
	}
	return nil
}

// Listener forwards changes committed by other processes sharing the database to the local hub.
type Listener struct {
	pool     *pgxpool.Pool
	ledgerID string
	origin   string
	hub      *feed.Hub
	logger   *slog.Logger
}

// NewListener creates a listener for ledgerID. Notifications sent by origin are skipped since
// they were already published locally.
func NewListener(pool *pgxpool.Pool, ledgerID, origin string, hub *feed.Hub, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{pool: pool, ledgerID: ledgerID, origin: origin, hub: hub, logger: logger}
}

// Run listens until ctx is done, reconnecting with backoff when the connection drops.
func (l *Listener) Run(ctx context.Context) {
	backoff := minListenBackoff
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		l.logger.Warn("Change listener disconnected, retrying",
			slog.String("error", err.Error()),
			slog.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxListenBackoff)
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{NotifyChannel}.Sanitize()+";"); err != nil {
		return err
	}
	l.logger.Info("Listening for ledger changes", slog.String("channel", NotifyChannel))

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if err := l.handle(n.Payload); err != nil {
			l.logger.Warn("Dropping change notification", slog.String("error", err.Error()))
		}
	}
}

// handle decodes one payload and publishes it when it belongs to this ledger and another process.
func (l *Listener) handle(payload string) error {
	var n changeNotification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return fmt.Errorf("decode notification: %w", err)
	}
	if n.LedgerID != l.ledgerID || n.Origin == l.origin {
		return nil
	}
	if n.Event.Collection == "" {
		return errors.New("notification without collection")
	}
	l.hub.Publish(n.Event)
	return nil
}
