package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
	"github.com/SscSPs/cashkeeper/internal/dto"
	"github.com/gin-gonic/gin"
)

// snapshotHandler handles HTTP requests related to daily snapshots.
type snapshotHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	syncService   portssvc.SyncStatusSvc
}

// newSnapshotHandler creates a new snapshotHandler.
func newSnapshotHandler(ls portssvc.LedgerSvcFacade, ss portssvc.SyncStatusSvc) *snapshotHandler {
	return &snapshotHandler{
		ledgerService: ls,
		syncService:   ss,
	}
}

// registerSnapshotRoutes registers routes related to daily snapshots.
func registerSnapshotRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, syncService portssvc.SyncStatusSvc) {
	h := newSnapshotHandler(ledgerService, syncService)

	snapshots := rg.Group("/snapshots")
	{
		snapshots.GET("", h.listSnapshots)
		snapshots.GET("/:date", h.getSnapshot)
	}
}

// listSnapshots godoc
// @Summary List daily snapshots
// @Description Lists the snapshots of the last N days, newest first. Today's row is created if missing.
// @Tags snapshots
// @Produce  json
// @Param   days query int false "Number of days to include" default(30)
// @Success 200 {object} dto.ListSnapshotsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /snapshots [get]
func (h *snapshotHandler) listSnapshots(c *gin.Context) {
	var params dto.ListSnapshotsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	snapshots, err := h.ledgerService.ListSnapshots(c.Request.Context(), params.Days)
	if err != nil {
		respondError(c, h.syncService, err, "Failed to list snapshots")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSnapshotsResponse(snapshots))
}

// getSnapshot godoc
// @Summary Get the snapshot of a day
// @Tags snapshots
// @Produce  json
// @Param   date path string true "Day (YYYY-MM-DD)"
// @Success 200 {object} dto.SnapshotResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "No snapshot for that day"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /snapshots/{date} [get]
func (h *snapshotHandler) getSnapshot(c *gin.Context) {
	snapshot, err := h.ledgerService.GetSnapshot(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, h.syncService, err, "Failed to retrieve snapshot")
		return
	}
	c.JSON(http.StatusOK, dto.ToSnapshotResponse(snapshot))
}
