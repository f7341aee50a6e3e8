package accounting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger_backend/internal/core/domain"
)

// DayWindow returns the [start-of-day, start-of-next-day) window containing t,
// in UTC. Every daily aggregate and the daily debit limit share this boundary.
func DayWindow(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	from := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}

// BuildDailyReport folds a transaction window into credit and debit totals.
// Each entry is classified by its type; entries that are neither credit nor
// debit do not exist in this ledger, but the fold ignores them rather than
// failing so a report never breaks on future types.
func BuildDailyReport(txns []domain.Transaction, from, to time.Time) domain.DailyReport {
	totalCredits := decimal.Zero
	totalDebits := decimal.Zero
	for _, t := range txns {
		switch {
		case t.TransactionType.IsCredit():
			totalCredits = totalCredits.Add(t.Amount)
		case t.TransactionType.IsDebit():
			totalDebits = totalDebits.Add(t.Amount)
		}
	}
	return domain.DailyReport{
		TotalCredits:     totalCredits,
		TotalDebits:      totalDebits,
		Net:              totalCredits.Sub(totalDebits),
		TransactionCount: len(txns),
		From:             from,
		To:               to,
	}
}

// SumLimitedDebits totals the entries that consume the daily debit allowance.
func SumLimitedDebits(txns []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		if t.TransactionType.CountsTowardDailyDebitLimit() {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}
