package accounting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/corebank/ledger_backend/internal/core/domain"
	"github.com/corebank/ledger_backend/internal/utils/accounting"
)

func TestDayWindow(t *testing.T) {
	at := time.Date(2024, 3, 15, 17, 42, 9, 123, time.UTC)
	from, to := accounting.DayWindow(at)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), to)
}

func TestDayWindow_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 02:00 on the 16th at UTC+5 is still the 15th in UTC.
	at := time.Date(2024, 3, 16, 2, 0, 0, 0, loc)

	from, to := accounting.DayWindow(at)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), to)
}

func txn(txnType domain.TransactionType, amount string) domain.Transaction {
	return domain.Transaction{
		Amount:          decimal.RequireFromString(amount),
		TransactionType: txnType,
		Status:          domain.StatusCompleted,
	}
}

func TestBuildDailyReport(t *testing.T) {
	from, to := accounting.DayWindow(time.Now())
	txns := []domain.Transaction{
		txn(domain.Deposit, "100.00"),
		txn(domain.Interest, "2.50"),
		txn(domain.TransferIn, "40.00"),
		txn(domain.Withdraw, "30.00"),
		txn(domain.TransferOut, "40.00"),
		txn(domain.ReversalDeposit, "10.00"),
	}

	report := accounting.BuildDailyReport(txns, from, to)

	assert.True(t, report.TotalCredits.Equal(decimal.RequireFromString("142.50")), "credits: %s", report.TotalCredits)
	assert.True(t, report.TotalDebits.Equal(decimal.RequireFromString("80.00")), "debits: %s", report.TotalDebits)
	assert.True(t, report.Net.Equal(decimal.RequireFromString("62.50")), "net: %s", report.Net)
	assert.Equal(t, 6, report.TransactionCount)
	assert.Equal(t, from, report.From)
	assert.Equal(t, to, report.To)
}

func TestBuildDailyReport_Empty(t *testing.T) {
	from, to := accounting.DayWindow(time.Now())
	report := accounting.BuildDailyReport(nil, from, to)

	assert.True(t, report.TotalCredits.IsZero())
	assert.True(t, report.TotalDebits.IsZero())
	assert.True(t, report.Net.IsZero())
	assert.Equal(t, 0, report.TransactionCount)
}

func TestSumLimitedDebits(t *testing.T) {
	txns := []domain.Transaction{
		txn(domain.Withdraw, "10.00"),
		txn(domain.TransferOut, "20.00"),
		txn(domain.ExternalTransferOut, "30.00"),
		txn(domain.Deposit, "999.00"),
		txn(domain.ReversalDeposit, "5.00"),
	}
	sum := accounting.SumLimitedDebits(txns)
	assert.True(t, sum.Equal(decimal.RequireFromString("60.00")), "sum: %s", sum)
}
