package models

import (
	"github.com/shopspring/decimal"
)

// Account is the persisted shape of a bank account row.
type Account struct {
	AccountNumber   string          `db:"account_number"`
	CustomerID      string          `db:"customer_id"`
	Balance         decimal.Decimal `db:"balance"`
	AccountType     string          `db:"account_type"`
	Status          string          `db:"status"`
	Currency        string          `db:"currency"`
	InterestRate    decimal.Decimal `db:"interest_rate"`
	DailyDebitLimit decimal.Decimal `db:"daily_debit_limit"`
	Version         int64           `db:"version"`
	AuditFields
}
