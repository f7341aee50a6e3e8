package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger_backend/internal/apperrors"
)

// AccountType classifies the product the account belongs to.
// Fixed at creation, never updated afterwards.
type AccountType string

const (
	Savings  AccountType = "SAVINGS"
	Checking AccountType = "CHECKING"
	Business AccountType = "BUSINESS"
)

// AccountStatus is the lifecycle state of an account. Only ACTIVE accounts
// accept balance mutations. Accounts are never deleted; closing is a status change.
type AccountStatus string

const (
	StatusActive AccountStatus = "ACTIVE"
	StatusFrozen AccountStatus = "FROZEN"
	StatusClosed AccountStatus = "CLOSED"
)

// Account is the current-balance projection of the ledger for one account number.
type Account struct {
	AccountNumber   string          `json:"accountNumber"` // Unique, immutable after creation
	CustomerID      string          `json:"customerID"`    // FK -> customers.customer_id
	Balance         decimal.Decimal `json:"balance"`       // Never negative after a committed mutation
	AccountType     AccountType     `json:"accountType"`
	Status          AccountStatus   `json:"status"`
	Currency        string          `json:"currency"`        // 3-letter code, fixed at creation
	InterestRate    decimal.Decimal `json:"interestRate"`    // >= 0
	DailyDebitLimit decimal.Decimal `json:"dailyDebitLimit"` // <= 0 means unlimited
	Version         int64           `json:"version"`         // Optimistic concurrency token, bumped on each write
	AuditFields
}

// ParseAccountType normalizes a caller-supplied type token. An empty token
// defaults to SAVINGS. The Spanish aliases are part of the inherited contract.
func ParseAccountType(token string) (AccountType, error) {
	if strings.TrimSpace(token) == "" {
		return Savings, nil
	}
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "SAVINGS", "AHORROS":
		return Savings, nil
	case "CHECKING", "CORRIENTE":
		return Checking, nil
	case "BUSINESS", "EMPRESARIAL":
		return Business, nil
	default:
		return "", fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, token)
	}
}

// ParseAccountStatus normalizes a caller-supplied status token. There is no
// default; a missing token is a validation error.
func ParseAccountStatus(token string) (AccountStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "ACTIVE", "ACTIVA":
		return StatusActive, nil
	case "FROZEN", "CONGELADA":
		return StatusFrozen, nil
	case "CLOSED", "CERRADA":
		return StatusClosed, nil
	default:
		return "", fmt.Errorf("%w: unknown account status %q", apperrors.ErrValidation, token)
	}
}

// NormalizeCurrency upper-cases and validates a 3-letter currency code.
// An empty token falls back to the supplied default.
func NormalizeCurrency(token string, defaultCurrency string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return defaultCurrency, nil
	}
	code := strings.ToUpper(strings.TrimSpace(token))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code must be 3 characters, got %q", apperrors.ErrValidation, token)
	}
	return code, nil
}
