package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger_backend/internal/core/domain"
)

// MovementRequest is the shared input of the single-account money operations
// (deposit, withdraw, external transfer). PerformedBy and Source are filled in
// by the handler, not bound from the body.
type MovementRequest struct {
	AccountNumber  string          `json:"-"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	IdempotencyKey string          `json:"idempotencyKey"` // Empty means no deduplication
	Source         string          `json:"source"`
	PerformedBy    string          `json:"-"`
}

// TransferRequest moves funds between two accounts of this ledger.
type TransferRequest struct {
	FromAccount    string          `json:"fromAccount" binding:"required"`
	ToAccount      string          `json:"toAccount" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	IdempotencyKey string          `json:"idempotencyKey"`
	Source         string          `json:"source"`
	PerformedBy    string          `json:"-"`
}

// InterestRequest triggers an interest accrual run for one account.
type InterestRequest struct {
	AccountNumber  string `json:"-"`
	IdempotencyKey string `json:"idempotencyKey"`
	Source         string `json:"source"`
	PerformedBy    string `json:"-"`
}

// ReversalRequest asks for the inverse of a previously completed transaction.
type ReversalRequest struct {
	TransactionID  string `json:"-"`
	IdempotencyKey string `json:"idempotencyKey"` // Defaults to a value derived from the transaction id
	Source         string `json:"source"`
	PerformedBy    string `json:"-"`
}

// TransactionResponse mirrors domain.Transaction for API consumers.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	AccountNumber   string                   `json:"accountNumber"`
	Amount          decimal.Decimal          `json:"amount"`
	TransactionType domain.TransactionType   `json:"transactionType"`
	Timestamp       time.Time                `json:"timestamp"`
	PreviousBalance decimal.Decimal          `json:"previousBalance"`
	NewBalance      decimal.Decimal          `json:"newBalance"`
	PerformedBy     string                   `json:"performedBy"`
	Source          string                   `json:"source"`
	Status          domain.TransactionStatus `json:"status"`
	IdempotencyKey  string                   `json:"idempotencyKey,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountNumber:   txn.AccountNumber,
		Amount:          txn.Amount,
		TransactionType: txn.TransactionType,
		Timestamp:       txn.Timestamp,
		PreviousBalance: txn.PreviousBalance,
		NewBalance:      txn.NewBalance,
		PerformedBy:     txn.PerformedBy,
		Source:          txn.Source,
		Status:          txn.Status,
		IdempotencyKey:  txn.IdempotencyKey,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(t)
	}
	return res
}
