package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corebank/ledger_backend/internal/apperrors"
	"github.com/corebank/ledger_backend/internal/core/services"
	"github.com/corebank/ledger_backend/internal/middleware"
)

// respondWithError maps service errors onto HTTP statuses. Business rule
// rejections (frozen account, insufficient funds, limit breached) come back
// as 422 so the client can tell them apart from malformed input.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccountNotActive),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrDailyLimitExceeded),
		errors.Is(err, services.ErrCurrencyMismatch),
		errors.Is(err, services.ErrNegativeBalance),
		errors.Is(err, services.ErrSameAccount),
		errors.Is(err, services.ErrNotReversible),
		errors.Is(err, services.ErrReversalUnsupported):
		logger.Warn("Business rule rejected request", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Unexpected service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseDateParam reads an optional ?date=YYYY-MM-DD query parameter. A nil
// result means the caller wants the current day.
func parseDateParam(c *gin.Context) (*time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", apperrors.ErrValidation)
	}
	return &d, nil
}
