package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/corebank/ledger_backend/internal/core/ports/services"
	"github.com/corebank/ledger_backend/internal/dto"
	"github.com/corebank/ledger_backend/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{ledgerService: ls}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:number", h.getAccount)
		accounts.GET("/:number/balance", h.getBalance)
		accounts.PUT("/:number/status", h.changeStatus)
		accounts.POST("/:number/deposits", h.deposit)
		accounts.POST("/:number/withdrawals", h.withdraw)
		accounts.POST("/:number/external-transfers", h.externalTransfer)
		accounts.POST("/:number/interest", h.applyInterest)
		accounts.GET("/:number/transactions", h.listTransactions)
	}
}

// createAccount godoc
// @Summary Open a new account
// @Description Opens an account for an existing customer with a zero starting balance
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Customer not found"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	account, err := h.ledgerService.CreateAccount(c.Request.Context(), req, principal)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Account created successfully", slog.String("account_number", account.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by number
// @Tags accounts
// @Produce  json
// @Param   number path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{number} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.ledgerService.GetAccount(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getBalance godoc
// @Summary Get the current balance of an account
// @Tags accounts
// @Produce  json
// @Param   number path string true "Account number"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{number}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	account, err := h.ledgerService.GetAccount(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance,
		Currency:      account.Currency,
	})
}

// changeStatus godoc
// @Summary Change the status of an account
// @Description Sets the account status to ACTIVE, FROZEN or CLOSED
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   number path string true "Account number"
// @Param   status body dto.ChangeStatusRequest true "New status"
// @Success 204 "Status changed"
// @Failure 400 {object} map[string]string "Unknown status token"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{number}/status [put]
func (h *accountHandler) changeStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	number := c.Param("number")
	if err := h.ledgerService.ChangeStatus(c.Request.Context(), number, req.Status); err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("Account status changed", slog.String("account_number", number), slog.String("status", req.Status))
	c.Status(http.StatusNoContent)
}

// deposit godoc
// @Summary Deposit funds into an account
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   number path string true "Account number"
// @Param   movement body dto.MovementRequest true "Amount and optional idempotency key"
// @Success 204 "Deposit applied (or replayed)"
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Account not active"
// @Router /accounts/{number}/deposits [post]
func (h *accountHandler) deposit(c *gin.Context) {
	h.movement(c, h.ledgerService.Deposit)
}

// withdraw godoc
// @Summary Withdraw funds from an account
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   number path string true "Account number"
// @Param   movement body dto.MovementRequest true "Amount and optional idempotency key"
// @Success 204 "Withdrawal applied (or replayed)"
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Account not active, insufficient funds or daily limit exceeded"
// @Router /accounts/{number}/withdrawals [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	h.movement(c, h.ledgerService.Withdraw)
}

// externalTransfer godoc
// @Summary Send funds out of the ledger
// @Description Debits the account for a transfer whose destination is outside this system
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   number path string true "Account number"
// @Param   movement body dto.MovementRequest true "Amount and optional idempotency key"
// @Success 204 "Transfer applied (or replayed)"
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Account not active, insufficient funds or daily limit exceeded"
// @Router /accounts/{number}/external-transfers [post]
func (h *accountHandler) externalTransfer(c *gin.Context) {
	h.movement(c, h.ledgerService.ExternalTransfer)
}

func (h *accountHandler) movement(c *gin.Context, op func(ctx context.Context, req dto.MovementRequest) error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for movement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.AccountNumber = c.Param("number")
	req.PerformedBy = middleware.GetPrincipalFromContext(c)

	if err := op(c.Request.Context(), req); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// applyInterest godoc
// @Summary Accrue interest on an account
// @Description Credits balance * interest rate; a zero rate or non-positive balance is a no-op
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   number path string true "Account number"
// @Param   interest body dto.InterestRequest true "Optional idempotency key"
// @Success 204 "Interest applied (or skipped)"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Account not active"
// @Router /accounts/{number}/interest [post]
func (h *accountHandler) applyInterest(c *gin.Context) {
	var req dto.InterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.AccountNumber = c.Param("number")
	req.PerformedBy = middleware.GetPrincipalFromContext(c)

	if err := h.ledgerService.ApplyInterest(c.Request.Context(), req); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listTransactions godoc
// @Summary List an account's transactions for one day
// @Tags transactions
// @Produce  json
// @Param   number path string true "Account number"
// @Param   date query string false "Day to list (YYYY-MM-DD), defaults to today"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Malformed date"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{number}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	date, err := parseDateParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txns, err := h.ledgerService.ListAccountTransactions(c.Request.Context(), c.Param("number"), date)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}
