package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the balance effect a ledger entry records.
type TransactionType string

const (
	Deposit             TransactionType = "DEPOSIT"
	Withdraw            TransactionType = "WITHDRAW"
	TransferIn          TransactionType = "TRANSFER_IN"
	TransferOut         TransactionType = "TRANSFER_OUT"
	ExternalTransferOut TransactionType = "EXTERNAL_TRANSFER_OUT"
	Interest            TransactionType = "INTEREST"

	ReversalDeposit             TransactionType = "REVERSAL_DEPOSIT"
	ReversalWithdraw            TransactionType = "REVERSAL_WITHDRAW"
	ReversalExternalTransferOut TransactionType = "REVERSAL_EXTERNAL_TRANSFER_OUT"
	ReversalInterest            TransactionType = "REVERSAL_INTEREST"
)

// TransactionStatus is the settlement state of a ledger entry.
// This core only ever produces COMPLETED entries.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "COMPLETED"
)

// Transaction is one immutable, append-only ledger entry. Reversals are new
// entries; existing entries are never updated or deleted.
type Transaction struct {
	TransactionID   string            `json:"transactionID"` // Primary key (UUID)
	AccountNumber   string            `json:"accountNumber"` // FK -> accounts.account_number
	Amount          decimal.Decimal   `json:"amount"`        // Always positive
	TransactionType TransactionType   `json:"transactionType"`
	Timestamp       time.Time         `json:"timestamp"`
	PreviousBalance decimal.Decimal   `json:"previousBalance"`
	NewBalance      decimal.Decimal   `json:"newBalance"`
	PerformedBy     string            `json:"performedBy"` // Acting principal, passed explicitly by the caller
	Source          string            `json:"source"`      // Originating channel/system identifier
	Status          TransactionStatus `json:"status"`
	IdempotencyKey  string            `json:"idempotencyKey,omitempty"` // Unique when present; empty means none
}

// IsCredit reports whether the entry increases the account balance.
func (t TransactionType) IsCredit() bool {
	switch t {
	case Deposit, TransferIn, Interest, ReversalWithdraw, ReversalExternalTransferOut:
		return true
	}
	return false
}

// IsDebit reports whether the entry decreases the account balance.
func (t TransactionType) IsDebit() bool {
	switch t {
	case Withdraw, TransferOut, ExternalTransferOut, ReversalDeposit, ReversalInterest:
		return true
	}
	return false
}

// CountsTowardDailyDebitLimit reports whether the entry consumes the
// account's daily debit allowance. Reversal debits do not.
func (t TransactionType) CountsTowardDailyDebitLimit() bool {
	switch t {
	case Withdraw, TransferOut, ExternalTransferOut:
		return true
	}
	return false
}

// ReversalType returns the entry type a reversal of t must be recorded as.
// The second result is false for types with no defined inverse.
func (t TransactionType) ReversalType() (TransactionType, bool) {
	switch t {
	case Deposit:
		return ReversalDeposit, true
	case Withdraw:
		return ReversalWithdraw, true
	case ExternalTransferOut:
		return ReversalExternalTransferOut, true
	case Interest:
		return ReversalInterest, true
	default:
		return "", false
	}
}

// ReversalDelta returns the signed balance effect of reversing an entry of
// type t with the given amount. Reversing a credit subtracts, reversing a
// debit adds. The second result is false for irreversible types.
func (t TransactionType) ReversalDelta(amount decimal.Decimal) (decimal.Decimal, bool) {
	switch t {
	case Deposit, Interest:
		return amount.Neg(), true
	case Withdraw, ExternalTransferOut:
		return amount, true
	default:
		return decimal.Zero, false
	}
}
