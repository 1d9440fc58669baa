package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

// classify maps a database error onto the store error taxonomy. Errors the server answered with
// are write failures; anything that kept the statement from reaching the server, or a server that
// is going away, means the store is unavailable. Context cancellation by the caller is passed through.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if apperrors.IsStoreError(err) || errors.Is(err, apperrors.ErrConcurrentUpdate) || errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, context.Canceled) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if isUnavailableCode(pgErr.Code) {
			return fmt.Errorf("%w: %s: %w", apperrors.ErrStoreUnavailable, op, err)
		}
		return fmt.Errorf("%w: %s: %w", apperrors.ErrStoreWriteFailed, op, err)
	}
	return fmt.Errorf("%w: %s: %w", apperrors.ErrStoreUnavailable, op, err)
}

// isUnavailableCode reports SQLSTATEs that describe the server rather than the statement:
// connection exceptions (08), insufficient resources (53) and operator intervention (57).
func isUnavailableCode(code string) bool {
	return strings.HasPrefix(code, "08") || strings.HasPrefix(code, "53") || strings.HasPrefix(code, "57")
}
