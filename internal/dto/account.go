package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new account.
// Balance is deliberately absent: initial funding must go through a deposit.
type CreateAccountRequest struct {
	CustomerID   string           `json:"customerID" binding:"required"`
	AccountType  string           `json:"accountType" binding:"omitempty,accounttype"` // Optional, defaults to SAVINGS
	Currency     string           `json:"currency"`     // Optional, defaults to the configured currency
	InterestRate *decimal.Decimal `json:"interestRate"` // Optional, defaults to 0
}

// AccountResponse mirrors domain.Account for API consumers.
type AccountResponse struct {
	AccountNumber   string             `json:"accountNumber"`
	CustomerID      string             `json:"customerID"`
	Balance         decimal.Decimal    `json:"balance"`
	AccountType     domain.AccountType `json:"accountType"`
	Status          domain.AccountStatus `json:"status"`
	Currency        string             `json:"currency"`
	InterestRate    decimal.Decimal    `json:"interestRate"`
	DailyDebitLimit decimal.Decimal    `json:"dailyDebitLimit"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber:   acc.AccountNumber,
		CustomerID:      acc.CustomerID,
		Balance:         acc.Balance,
		AccountType:     acc.AccountType,
		Status:          acc.Status,
		Currency:        acc.Currency,
		InterestRate:    acc.InterestRate,
		DailyDebitLimit: acc.DailyDebitLimit,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// BalanceResponse is returned by the balance query endpoint.
type BalanceResponse struct {
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
}

// ChangeStatusRequest carries the requested status token.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,accountstatus"`
}
