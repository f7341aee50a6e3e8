package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/corebank/ledger_backend/internal/core/ports/services"
	"github.com/corebank/ledger_backend/internal/dto"
	"github.com/corebank/ledger_backend/internal/middleware"
)

// ledgerHandler handles the cross-account ledger operations: transfers,
// reversals and the day-wide transaction listing.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers transfer and transaction routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.POST("/transfers", h.transfer)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.POST("/:id/reversal", h.reverseTransaction)
	}
}

// transfer godoc
// @Summary Transfer funds between two accounts
// @Description Atomically debits the source and credits the destination; both legs share the idempotency key
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 204 "Transfer applied (or replayed)"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Inactive account, currency mismatch, insufficient funds or daily limit exceeded"
// @Router /transfers [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.PerformedBy = middleware.GetPrincipalFromContext(c)

	if err := h.ledgerService.Transfer(c.Request.Context(), req); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listTransactions godoc
// @Summary List every transaction of one day
// @Tags transactions
// @Produce  json
// @Param   date query string false "Day to list (YYYY-MM-DD), defaults to today"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Malformed date"
// @Router /transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	date, err := parseDateParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txns, err := h.ledgerService.ListTransactions(c.Request.Context(), date)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{id} [get]
func (h *ledgerHandler) getTransaction(c *gin.Context) {
	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

// reverseTransaction godoc
// @Summary Reverse a completed transaction
// @Description Appends a compensating entry; the original record is never mutated
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID to reverse"
// @Param   reversal body dto.ReversalRequest true "Optional idempotency key"
// @Success 204 "Reversal applied (or replayed)"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 422 {object} map[string]string "Type not reversible or reversal would overdraw the account"
// @Router /transactions/{id}/reversal [post]
func (h *ledgerHandler) reverseTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReversalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.TransactionID = c.Param("id")
	req.PerformedBy = middleware.GetPrincipalFromContext(c)

	if err := h.ledgerService.ReverseTransaction(c.Request.Context(), req); err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Transaction reversed", slog.String("transaction_id", req.TransactionID))
	c.Status(http.StatusNoContent)
}
