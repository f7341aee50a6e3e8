package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger_backend/internal/core/domain"
	"github.com/corebank/ledger_backend/internal/dto"
)

// LedgerSvcFacade is the operation surface of the ledger core. Mutating
// operations take the acting principal explicitly via the request DTOs.
type LedgerSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, performedBy string) (*domain.Account, error)

	Deposit(ctx context.Context, req dto.MovementRequest) error
	Withdraw(ctx context.Context, req dto.MovementRequest) error
	Transfer(ctx context.Context, req dto.TransferRequest) error
	ExternalTransfer(ctx context.Context, req dto.MovementRequest) error
	ApplyInterest(ctx context.Context, req dto.InterestRequest) error
	ReverseTransaction(ctx context.Context, req dto.ReversalRequest) error
	ChangeStatus(ctx context.Context, accountNumber string, status string) error

	GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error)
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error)
	GetDailyReport(ctx context.Context, date *time.Time) (*domain.DailyReport, error)
	ListTransactions(ctx context.Context, date *time.Time) ([]domain.Transaction, error)
	ListAccountTransactions(ctx context.Context, accountNumber string, date *time.Time) ([]domain.Transaction, error)
}
