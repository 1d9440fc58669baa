package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: apperrors.ErrStoreWriteFailed},
		{name: "check violation", err: &pgconn.PgError{Code: "23514"}, want: apperrors.ErrStoreWriteFailed},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: apperrors.ErrStoreUnavailable},
		{name: "too many connections", err: &pgconn.PgError{Code: "53300"}, want: apperrors.ErrStoreUnavailable},
		{name: "admin shutdown", err: &pgconn.PgError{Code: "57P01"}, want: apperrors.ErrStoreUnavailable},
		{name: "dial error", err: errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), want: apperrors.ErrStoreUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, want: apperrors.ErrStoreUnavailable},
		{name: "cas conflict passes through", err: fmt.Errorf("%w: stale", apperrors.ErrConcurrentUpdate), want: apperrors.ErrConcurrentUpdate},
		{name: "not found passes through", err: apperrors.ErrNotFound, want: apperrors.ErrNotFound},
		{name: "caller cancellation passes through", err: context.Canceled, want: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err, "test")
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "original error stays reachable")
		})
	}

	assert.NoError(t, classify(nil, "test"))
	assert.False(t, errors.Is(classify(&pgconn.PgError{Code: "23505"}, "x"), apperrors.ErrStoreUnavailable))
}
