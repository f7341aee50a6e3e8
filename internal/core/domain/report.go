package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyReport aggregates the ledger entries of one calendar-day window
// [From, To) into credit and debit totals.
type DailyReport struct {
	TotalCredits     decimal.Decimal `json:"totalCredits"`
	TotalDebits      decimal.Decimal `json:"totalDebits"`
	Net              decimal.Decimal `json:"net"` // credits - debits
	TransactionCount int             `json:"transactionCount"`
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
}
