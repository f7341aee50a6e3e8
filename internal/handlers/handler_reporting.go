package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/corebank/ledger_backend/internal/core/ports/services"
	"github.com/corebank/ledger_backend/internal/dto"
)

type reportingHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerReportingRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &reportingHandler{ledgerService: ledgerService}
	rg.GET("/reports/daily", h.dailyReport)
}

// dailyReport godoc
// @Summary Daily credit/debit totals
// @Description Aggregates every transaction of one calendar day into credit and debit totals
// @Tags reports
// @Produce  json
// @Param   date query string false "Day to report on (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DailyReportResponse
// @Failure 400 {object} map[string]string "Malformed date"
// @Router /reports/daily [get]
func (h *reportingHandler) dailyReport(c *gin.Context) {
	date, err := parseDateParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.ledgerService.GetDailyReport(c.Request.Context(), date)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyReportResponse(report))
}
