package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/cashkeeper/internal/apperrors"
	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
	"github.com/SscSPs/cashkeeper/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps service errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidCategoryForType):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error. Client errors echo the cause, server errors only
// publicMsg. The sync header is refreshed because the failure may have degraded the store state.
func respondError(c *gin.Context, syncService portssvc.SyncStatusSvc, err error, publicMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)

	state := syncService.State()
	c.Header(middleware.SyncStateHeader, string(state.Status))

	if status < http.StatusInternalServerError {
		logger.Warn(publicMsg, slog.Int("status", status), slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	logger.Error(publicMsg, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": publicMsg, "sync": state})
}

// respondBindError answers a request whose body or query failed binding.
func respondBindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + ": " + err.Error()})
}
