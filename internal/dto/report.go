package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger_backend/internal/core/domain"
)

// DailyReportResponse is the aggregate view over one calendar-day window.
type DailyReportResponse struct {
	TotalCredits     decimal.Decimal `json:"totalCredits"`
	TotalDebits      decimal.Decimal `json:"totalDebits"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int             `json:"transactionCount"`
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
}

// ToDailyReportResponse converts a domain.DailyReport to its response DTO.
func ToDailyReportResponse(r *domain.DailyReport) DailyReportResponse {
	return DailyReportResponse{
		TotalCredits:     r.TotalCredits,
		TotalDebits:      r.TotalDebits,
		Net:              r.Net,
		TransactionCount: r.TransactionCount,
		From:             r.From,
		To:               r.To,
	}
}
