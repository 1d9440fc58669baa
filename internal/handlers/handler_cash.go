package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
	"github.com/SscSPs/cashkeeper/internal/dto"
	"github.com/SscSPs/cashkeeper/internal/middleware"
	"github.com/SscSPs/cashkeeper/internal/utils"
	"github.com/gin-gonic/gin"
)

// cashHandler handles HTTP requests related to the physical cash account.
type cashHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	syncService   portssvc.SyncStatusSvc
	posthogClient *utils.PosthogClientWrapper
}

// newCashHandler creates a new cashHandler.
func newCashHandler(ls portssvc.LedgerSvcFacade, ss portssvc.SyncStatusSvc, ph *utils.PosthogClientWrapper) *cashHandler {
	return &cashHandler{
		ledgerService: ls,
		syncService:   ss,
		posthogClient: ph,
	}
}

// registerCashRoutes registers routes related to the cash account.
func registerCashRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, syncService portssvc.SyncStatusSvc, ph *utils.PosthogClientWrapper, mutation []gin.HandlerFunc) {
	h := newCashHandler(ledgerService, syncService, ph)

	cash := rg.Group("/cash")
	{
		cash.GET("", h.getCashAccount)
		cash.POST("/movements", chain(mutation, h.addCash)...)
		cash.GET("/movements", h.listMovements)
		cash.POST("/reconciliations", chain(mutation, h.reconcile)...)
	}
}

// getCashAccount godoc
// @Summary Get the cash balance
// @Description Returns the current cash balance together with today's snapshot, creating the snapshot if the day just started
// @Tags cash
// @Produce  json
// @Success 200 {object} dto.CashAccountResponse
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /cash [get]
func (h *cashHandler) getCashAccount(c *gin.Context) {
	ctx := c.Request.Context()
	acc, err := h.ledgerService.GetCashAccount(ctx)
	if err != nil {
		respondError(c, h.syncService, err, "Failed to retrieve cash account")
		return
	}
	today, err := h.ledgerService.GetSnapshot(ctx, h.ledgerService.Today())
	if err != nil {
		respondError(c, h.syncService, err, "Failed to retrieve today's snapshot")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashAccountResponse(acc, today))
}

// addCash godoc
// @Summary Add or remove cash
// @Description Moves cash in (positive amount) or out (negative amount) and logs the movement
// @Tags cash
// @Accept  json
// @Produce  json
// @Param   movement body dto.AddCashRequest true "Cash movement"
// @Success 201 {object} dto.CashTransactionResponse
// @Failure 400 {object} map[string]string "Invalid amount, source or payload"
// @Failure 409 {object} map[string]string "Concurrent update of the cash account"
// @Failure 500 {object} map[string]string "Failed to add cash"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /cash/movements [post]
func (h *cashHandler) addCash(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	logger.Info("Received request to add cash", slog.String("source", string(req.Source)))

	entry, err := h.ledgerService.AddCash(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.syncService, err, "Failed to add cash")
		return
	}

	logger.Info("Cash movement recorded", slog.String("cash_transaction_id", entry.CashTransactionID))
	c.JSON(http.StatusCreated, dto.ToCashTransactionResponse(entry))
}

// listMovements godoc
// @Summary List cash movements
// @Description Lists the cash log newest first with token-based pagination
// @Tags cash
// @Produce  json
// @Param   limit query int false "Number of movements to return" default(20)
// @Param   nextToken query string false "Token for fetching the next page"
// @Success 200 {object} dto.ListCashTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /cash/movements [get]
func (h *cashHandler) listMovements(c *gin.Context) {
	var params dto.ListCashTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	resp, err := h.ledgerService.ListCashTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, h.syncService, err, "Failed to list cash movements")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// reconcile godoc
// @Summary Reconcile counted cash
// @Description Records the physically counted cash for today. A difference is booked as an Adjustment so the balance equals the count.
// @Tags cash
// @Accept  json
// @Produce  json
// @Param   count body dto.ReconcileRequest true "Counted cash"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Invalid amount or payload"
// @Failure 409 {object} map[string]string "Concurrent update of the cash account"
// @Failure 500 {object} map[string]string "Failed to reconcile"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /cash/reconciliations [post]
func (h *cashHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	result, err := h.ledgerService.Reconcile(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.syncService, err, "Failed to reconcile cash")
		return
	}

	logger.Info("Cash reconciled",
		slog.String("date", result.Date),
		slog.String("difference", result.Difference.String()))
	middleware.PosthogEvent(c, h.posthogClient, "cash_reconciled", map[string]any{
		"date":          result.Date,
		"balanced":      result.Difference.IsZero(),
		"hasAdjustment": result.Adjustment != nil,
	})
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(result))
}
