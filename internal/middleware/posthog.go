package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/cashkeeper/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogMiddleware tracks successful ledger writes with PostHog. Reads, the live feed and
// probes are not tracked.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// "/api/v1/cash/movements" -> "api_v1_cash_movements"
		eventName := strings.NewReplacer("/", "_", ":", "").Replace(strings.TrimPrefix(c.FullPath(), "/"))
		if eventName == "" {
			return
		}

		posthogClient.Enqueue(eventName, eventProperties(c, map[string]any{
			"status_code": c.Writer.Status(),
		}))
	}
}

// PosthogEvent sends a custom event from a handler.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	posthogClient.Enqueue(eventName, eventProperties(c, properties))
}

func eventProperties(c *gin.Context, props map[string]any) map[string]any {
	if props == nil {
		props = make(map[string]any)
	}
	props["method"] = c.Request.Method
	props["path"] = c.Request.URL.Path
	props["request_id"] = c.Writer.Header().Get(RequestIDHeader)
	if state := c.Writer.Header().Get(SyncStateHeader); state != "" {
		props["sync_state"] = state
	}
	return props
}
