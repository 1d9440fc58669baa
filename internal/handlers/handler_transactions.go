package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
	"github.com/SscSPs/cashkeeper/internal/dto"
	"github.com/SscSPs/cashkeeper/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to income and expense records.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	syncService   portssvc.SyncStatusSvc
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ls portssvc.LedgerSvcFacade, ss portssvc.SyncStatusSvc) *transactionHandler {
	return &transactionHandler{
		ledgerService: ls,
		syncService:   ss,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, syncService portssvc.SyncStatusSvc, mutation []gin.HandlerFunc) {
	h := newTransactionHandler(ledgerService, syncService)

	txns := rg.Group("/transactions")
	{
		txns.POST("", chain(mutation, h.recordTransaction)...)
		txns.GET("", h.listTransactions)
	}
	rg.GET("/categories", h.listCategories)
}

// recordTransaction godoc
// @Summary Record an income or expense
// @Description Records a transaction. Cash payments move the cash balance and today's expected snapshot in the same write.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.RecordTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid amount, category or payload"
// @Failure 409 {object} map[string]string "Concurrent update of the cash account"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /transactions [post]
func (h *transactionHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	logger.Info("Received request to record transaction",
		slog.String("type", string(req.Type)),
		slog.String("category", string(req.Category)),
		slog.String("payment_method", string(req.PaymentMethod)))

	txn, err := h.ledgerService.RecordTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.syncService, err, "Failed to record transaction")
		return
	}

	logger.Info("Transaction recorded successfully", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions newest first with token-based pagination, optionally limited to one month
// @Tags transactions
// @Produce  json
// @Param   month query string false "Month filter (YYYY-MM)"
// @Param   limit query int false "Number of transactions to return" default(20)
// @Param   nextToken query string false "Token for fetching the next page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	resp, err := h.ledgerService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, h.syncService, err, "Failed to list transactions")
		return
	}

	logger.Debug("Transactions listed", slog.Int("count", len(resp.Transactions)))
	c.JSON(http.StatusOK, resp)
}

// listCategories godoc
// @Summary List categories
// @Description Lists the categories permitted for each transaction type
// @Tags transactions
// @Produce  json
// @Success 200 {object} map[string][]string
// @Router /categories [get]
func (h *transactionHandler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, categoryOptions())
}
