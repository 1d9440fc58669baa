package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
	"github.com/SscSPs/cashkeeper/internal/dto"
	"github.com/SscSPs/cashkeeper/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	syncService      portssvc.SyncStatusSvc
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, ss portssvc.SyncStatusSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		syncService:      ss,
	}
}

// registerReportingRoutes registers routes related to reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, syncService portssvc.SyncStatusSvc) {
	h := newReportingHandler(reportingService, syncService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/monthly", h.getMonthlySummary)
	}
}

// getMonthlySummary godoc
// @Summary Generate the monthly summary
// @Description Totals income and expenses of a month, with the expense breakdown by category and the cash/non-cash split
// @Tags reports
// @Produce json
// @Param month query string false "Month (YYYY-MM)" default(current month)
// @Success 200 {object} dto.MonthlySummaryResponse
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.MonthlySummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	logger = logger.With(slog.String("month", params.Month))
	logger.Info("Received request to generate monthly summary")

	summary, err := h.reportingService.MonthlySummary(c.Request.Context(), params.Month)
	if err != nil {
		respondError(c, h.syncService, err, "Failed to generate monthly summary")
		return
	}

	logger.Info("Monthly summary generated successfully", slog.Int("transaction_count", summary.TransactionCount))
	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(summary))
}
