package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/SscSPs/cashkeeper/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock    domain.Clock
	Location *time.Location
}

func newBaseService() BaseService {
	return BaseService{Clock: domain.SystemClock{}, Location: time.Local}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// Now returns the current instant of the service clock.
func (s *BaseService) Now() time.Time {
	return s.Clock.Now()
}

// DayKey returns the ledger day t falls on.
func (s *BaseService) DayKey(t time.Time) string {
	return domain.DayKey(t, s.Location)
}
