package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
	"github.com/SscSPs/cashkeeper/internal/dto"
	"github.com/SscSPs/cashkeeper/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusHandler reports liveness and store connectivity.
type statusHandler struct {
	ledgerID      string
	storeDriver   string
	ledgerService portssvc.LedgerSvcFacade
	syncService   portssvc.SyncStatusSvc
}

// health godoc
// @Summary Health check
// @Description Probes the store. Answers 503 while it cannot be reached.
// @Tags status
// @Produce plain
// @Success 200 {string} string "OK"
// @Failure 503 {string} string "DEGRADED"
// @Router /health [get]
func (h *statusHandler) health(c *gin.Context) {
	if err := h.syncService.Probe(c.Request.Context()); err != nil {
		c.Header(middleware.SyncStateHeader, string(h.syncService.State().Status))
		c.String(http.StatusServiceUnavailable, "DEGRADED")
		return
	}
	c.String(http.StatusOK, "OK")
}

// getStatus godoc
// @Summary Ledger status
// @Description Reports the ledger, its store driver, the current day key and the sync state
// @Tags status
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /status [get]
func (h *statusHandler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{
		LedgerID: h.ledgerID,
		Store:    h.storeDriver,
		Today:    h.ledgerService.Today(),
		Sync:     h.syncService.State(),
	})
}
