package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persisted shape of one immutable ledger entry.
// IdempotencyKey maps to a nullable column; empty string means no key.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	AccountNumber   string          `db:"account_number"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType string          `db:"transaction_type"`
	Timestamp       time.Time       `db:"timestamp"`
	PreviousBalance decimal.Decimal `db:"previous_balance"`
	NewBalance      decimal.Decimal `db:"new_balance"`
	PerformedBy     string          `db:"performed_by"`
	Source          string          `db:"source"`
	Status          string          `db:"status"`
	IdempotencyKey  string          `db:"idempotency_key"`
}
