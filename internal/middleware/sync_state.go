package middleware

import (
	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// SyncStateHeader is set on every API response so clients can keep a sync indicator visible.
const SyncStateHeader = "X-Sync-State"

// SyncStateReader reports the current store connectivity.
type SyncStateReader interface {
	State() domain.SyncState
}

// SyncState stamps the store connectivity known when the request started. Handlers that hit a
// store error overwrite it before writing their response.
func SyncState(tracker SyncStateReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(SyncStateHeader, string(tracker.State().Status))
		c.Next()
	}
}
