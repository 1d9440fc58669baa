package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
	"github.com/SscSPs/cashkeeper/internal/middleware"
	"github.com/gin-gonic/gin"
)

const feedHeartbeat = 25 * time.Second

var knownCollections = map[domain.Collection]bool{
	domain.CollectionTransactions:     true,
	domain.CollectionCashAccount:      true,
	domain.CollectionCashTransactions: true,
	domain.CollectionSnapshots:        true,
	domain.CollectionSync:             true,
}

// feedHandler streams committed ledger changes as server-sent events.
type feedHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	heartbeat     time.Duration
}

// registerFeedRoutes registers the live change feed.
func registerFeedRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &feedHandler{ledgerService: ledgerService, heartbeat: feedHeartbeat}
	rg.GET("/feed", h.streamChanges)
}

// streamChanges godoc
// @Summary Follow ledger changes
// @Description Streams every committed change as a server-sent event named after its collection. A "ping" event carrying today's day key is sent while idle.
// @Tags feed
// @Produce text/event-stream
// @Param collections query string false "Comma separated collections (transactions,cash_account,cash_transactions,daily_snapshots,sync)"
// @Success 200 {object} domain.ChangeEvent
// @Failure 400 {object} map[string]string "Unknown collection"
// @Router /feed [get]
func (h *feedHandler) streamChanges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	collections, err := parseCollections(c.Query("collections"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, cancel := h.ledgerService.Subscribe(c.Request.Context(), collections...)
	defer cancel()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	logger.Info("Feed subscriber connected", slog.Int("collections", len(collections)))
	sent := 0
	clientGone := c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Collection), ev)
			sent++
			return true
		case <-ticker.C:
			c.SSEvent("ping", h.ledgerService.Today())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
	logger.Info("Feed subscriber disconnected", slog.Int("events_sent", sent), slog.Bool("client_gone", clientGone))
}

func parseCollections(raw string) ([]domain.Collection, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []domain.Collection
	for _, part := range strings.Split(raw, ",") {
		c := domain.Collection(strings.TrimSpace(part))
		if !knownCollections[c] {
			return nil, fmt.Errorf("unknown collection %q", c)
		}
		out = append(out, c)
	}
	return out, nil
}
