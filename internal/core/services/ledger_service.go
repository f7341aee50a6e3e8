package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank/ledger_backend/internal/apperrors"
	"github.com/corebank/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebank/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/corebank/ledger_backend/internal/core/ports/services"
	"github.com/corebank/ledger_backend/internal/dto"
	"github.com/corebank/ledger_backend/internal/middleware"
	"github.com/corebank/ledger_backend/internal/utils"
	"github.com/corebank/ledger_backend/internal/utils/accounting"
)

var (
	ErrAccountNotActive    = errors.New("account is not active")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrDailyLimitExceeded  = errors.New("daily debit limit exceeded")
	ErrCurrencyMismatch    = errors.New("accounts must have the same currency")
	ErrNegativeBalance     = errors.New("balance cannot go negative")
	ErrSameAccount         = errors.New("source and destination accounts must differ")
	ErrNotReversible       = errors.New("only completed transactions can be reversed")
	ErrReversalUnsupported = errors.New("transaction type does not support automatic reversal")
)

// maxAccountNumberAttempts bounds generation retries when a fresh account
// number collides with an existing one.
const maxAccountNumberAttempts = 5

// LedgerConfig carries the creation-time defaults of the ledger core.
type LedgerConfig struct {
	DefaultCurrency        string
	DefaultDailyDebitLimit decimal.Decimal
	AccountNumberDigits    int
}

// ledgerService is the account mutation core: it validates, locks, mutates
// balances, appends ledger entries and computes reports.
type ledgerService struct {
	store        portsrepo.LedgerStore
	accountRepo  portsrepo.AccountRepository
	txnRepo      portsrepo.TransactionRepository
	customerRepo portsrepo.CustomerRepository
	cfg          LedgerConfig
}

// NewLedgerService creates the ledger core service.
func NewLedgerService(
	store portsrepo.LedgerStore,
	accountRepo portsrepo.AccountRepository,
	txnRepo portsrepo.TransactionRepository,
	customerRepo portsrepo.CustomerRepository,
	cfg LedgerConfig,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		store:        store,
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		customerRepo: customerRepo,
		cfg:          cfg,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	return nil
}

func ensureActive(acc *domain.Account) error {
	if acc.Status != domain.StatusActive {
		return fmt.Errorf("%w: account %s has status %s", ErrAccountNotActive, acc.AccountNumber, acc.Status)
	}
	return nil
}

// alreadyProcessed is the advisory idempotency fast path. The unique
// constraint checked on append remains the authoritative guard.
func (s *ledgerService) alreadyProcessed(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	_, err := s.txnRepo.FindTransactionByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	return true, nil
}

// checkDailyDebitLimit verifies that the account's limit-consuming debits for
// the current calendar day plus amount stay within its daily debit limit.
// A limit of zero or below means unlimited. Must run while the account lock
// is held.
func (s *ledgerService) checkDailyDebitLimit(ctx context.Context, tx portsrepo.LedgerTx, acc *domain.Account, amount decimal.Decimal) error {
	if acc.DailyDebitLimit.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	from, to := accounting.DayWindow(time.Now())
	debitedToday, err := tx.SumDebitsInWindow(ctx, acc.AccountNumber, from, to)
	if err != nil {
		return fmt.Errorf("failed to sum daily debits for account %s: %w", acc.AccountNumber, err)
	}
	if debitedToday.Add(amount).GreaterThan(acc.DailyDebitLimit) {
		return fmt.Errorf("%w: %s debited today, limit is %s", ErrDailyLimitExceeded, debitedToday.String(), acc.DailyDebitLimit.String())
	}
	return nil
}

func (s *ledgerService) newEntry(acc *domain.Account, entryType domain.TransactionType, amount, previous, next decimal.Decimal, key, performedBy, source string, ts time.Time) domain.Transaction {
	if performedBy == "" {
		performedBy = middleware.AnonymousPrincipal
	}
	return domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountNumber:   acc.AccountNumber,
		Amount:          amount,
		TransactionType: entryType,
		Timestamp:       ts,
		PreviousBalance: previous,
		NewBalance:      next,
		PerformedBy:     performedBy,
		Source:          source,
		Status:          domain.StatusCompleted,
		IdempotencyKey:  key,
	}
}

// CreateAccount opens a new account for an existing customer. The balance
// always starts at zero; initial funding must go through a deposit.
func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, performedBy string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rate := decimal.Zero
	if req.InterestRate != nil {
		rate = *req.InterestRate
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate cannot be negative", apperrors.ErrValidation)
	}

	accountType, err := domain.ParseAccountType(req.AccountType)
	if err != nil {
		return nil, err
	}
	currency, err := domain.NormalizeCurrency(req.Currency, s.cfg.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, req.CustomerID)
		}
		return nil, fmt.Errorf("failed to look up customer %s: %w", req.CustomerID, err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		CustomerID:      req.CustomerID,
		Balance:         decimal.Zero,
		AccountType:     accountType,
		Status:          domain.StatusActive,
		Currency:        currency,
		InterestRate:    rate,
		DailyDebitLimit: s.cfg.DefaultDailyDebitLimit,
		Version:         1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     performedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: performedBy,
		},
	}

	// The generator is not unique by construction; the store's unique
	// constraint on account_number is, so collisions surface as ErrDuplicate
	// and we retry with a fresh number.
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		number, err := utils.GenerateAccountNumber(s.cfg.AccountNumberDigits)
		if err != nil {
			return nil, fmt.Errorf("failed to generate account number: %w", err)
		}
		account.AccountNumber = number

		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			logger.Info("Account created", slog.String("account_number", number), slog.String("customer_id", req.CustomerID))
			return &account, nil
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Account number collision, regenerating", slog.String("account_number", number))
			continue
		}
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return nil, fmt.Errorf("%w: could not generate a unique account number after %d attempts", apperrors.ErrInternal, maxAccountNumberAttempts)
}

// Deposit credits an active account and appends a DEPOSIT entry.
func (s *ledgerService) Deposit(ctx context.Context, req dto.MovementRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return err
	}
	if done, err := s.alreadyProcessed(ctx, req.IdempotencyKey); err != nil {
		return err
	} else if done {
		logger.Info("Deposit already processed, skipping", slog.String("idempotency_key", req.IdempotencyKey))
		return nil
	}

	err := s.store.WithAccountLock(ctx, []string{req.AccountNumber}, func(tx portsrepo.LedgerTx) error {
		acc, err := tx.AccountForUpdate(ctx, req.AccountNumber)
		if err != nil {
			return err
		}
		if err := ensureActive(acc); err != nil {
			return err
		}

		previous := acc.Balance
		next := previous.Add(req.Amount)
		if next.IsNegative() {
			return fmt.Errorf("%w: deposit on account %s", ErrNegativeBalance, acc.AccountNumber)
		}

		now := time.Now().UTC()
		acc.Balance = next
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = req.PerformedBy
		if err := tx.UpdateAccount(ctx, *acc); err != nil {
			return err
		}
		return tx.AppendTransaction(ctx, s.newEntry(acc, domain.Deposit, req.Amount, previous, next, req.IdempotencyKey, req.PerformedBy, req.Source, now))
	})
	return s.swallowDuplicate(ctx, err, req.IdempotencyKey)
}

// Withdraw debits an active account, enforcing funds and the daily debit cap.
func (s *ledgerService) Withdraw(ctx context.Context, req dto.MovementRequest) error {
	return s.debit(ctx, req, domain.Withdraw)
}

// ExternalTransfer debits an active account for funds leaving the ledger.
// There is no destination record inside this system.
func (s *ledgerService) ExternalTransfer(ctx context.Context, req dto.MovementRequest) error {
	return s.debit(ctx, req, domain.ExternalTransferOut)
}

// debit is the shared template of Withdraw and ExternalTransfer.
func (s *ledgerService) debit(ctx context.Context, req dto.MovementRequest, entryType domain.TransactionType) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return err
	}
	if done, err := s.alreadyProcessed(ctx, req.IdempotencyKey); err != nil {
		return err
	} else if done {
		logger.Info("Debit already processed, skipping", slog.String("idempotency_key", req.IdempotencyKey), slog.String("type", string(entryType)))
		return nil
	}

	err := s.store.WithAccountLock(ctx, []string{req.AccountNumber}, func(tx portsrepo.LedgerTx) error {
		acc, err := tx.AccountForUpdate(ctx, req.AccountNumber)
		if err != nil {
			return err
		}
		if err := ensureActive(acc); err != nil {
			return err
		}
		if err := s.checkDailyDebitLimit(ctx, tx, acc, req.Amount); err != nil {
			return err
		}

		previous := acc.Balance
		if previous.LessThan(req.Amount) {
			return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, previous.String(), req.Amount.String())
		}
		next := previous.Sub(req.Amount)
		// Unreachable given the funds check above; kept as the final guard on
		// the non-negative balance invariant.
		if next.IsNegative() {
			return fmt.Errorf("%w: debit on account %s", ErrNegativeBalance, acc.AccountNumber)
		}

		now := time.Now().UTC()
		acc.Balance = next
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = req.PerformedBy
		if err := tx.UpdateAccount(ctx, *acc); err != nil {
			return err
		}
		return tx.AppendTransaction(ctx, s.newEntry(acc, entryType, req.Amount, previous, next, req.IdempotencyKey, req.PerformedBy, req.Source, now))
	})
	return s.swallowDuplicate(ctx, err, req.IdempotencyKey)
}

// Transfer moves funds between two accounts of this ledger. Both legs commit
// as one atomic unit; the two account locks are always taken in ascending
// account-number order so opposite-direction transfers cannot deadlock.
func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return err
	}
	if req.FromAccount == req.ToAccount {
		return fmt.Errorf("%w: account %s", ErrSameAccount, req.FromAccount)
	}

	outKey, inKey := "", ""
	if req.IdempotencyKey != "" {
		outKey = req.IdempotencyKey + "-OUT"
		inKey = req.IdempotencyKey + "-IN"
	}
	if done, err := s.alreadyProcessed(ctx, outKey); err != nil {
		return err
	} else if done {
		logger.Info("Transfer already processed, skipping", slog.String("idempotency_key", req.IdempotencyKey))
		return nil
	}

	err := s.store.WithAccountLock(ctx, []string{req.FromAccount, req.ToAccount}, func(tx portsrepo.LedgerTx) error {
		source, err := tx.AccountForUpdate(ctx, req.FromAccount)
		if err != nil {
			return err
		}
		destination, err := tx.AccountForUpdate(ctx, req.ToAccount)
		if err != nil {
			return err
		}

		if err := ensureActive(source); err != nil {
			return err
		}
		if err := ensureActive(destination); err != nil {
			return err
		}
		if source.Currency != destination.Currency {
			return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, source.Currency, destination.Currency)
		}
		if err := s.checkDailyDebitLimit(ctx, tx, source, req.Amount); err != nil {
			return err
		}

		sourcePrevious := source.Balance
		if sourcePrevious.LessThan(req.Amount) {
			return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, sourcePrevious.String(), req.Amount.String())
		}
		sourceNext := sourcePrevious.Sub(req.Amount)
		if sourceNext.IsNegative() {
			return fmt.Errorf("%w: transfer out of account %s", ErrNegativeBalance, source.AccountNumber)
		}
		destinationPrevious := destination.Balance
		destinationNext := destinationPrevious.Add(req.Amount)

		now := time.Now().UTC()
		source.Balance = sourceNext
		source.LastUpdatedAt = now
		source.LastUpdatedBy = req.PerformedBy
		destination.Balance = destinationNext
		destination.LastUpdatedAt = now
		destination.LastUpdatedBy = req.PerformedBy

		if err := tx.UpdateAccount(ctx, *source); err != nil {
			return err
		}
		if err := tx.UpdateAccount(ctx, *destination); err != nil {
			return err
		}
		if err := tx.AppendTransaction(ctx, s.newEntry(source, domain.TransferOut, req.Amount, sourcePrevious, sourceNext, outKey, req.PerformedBy, req.Source, now)); err != nil {
			return err
		}
		return tx.AppendTransaction(ctx, s.newEntry(destination, domain.TransferIn, req.Amount, destinationPrevious, destinationNext, inKey, req.PerformedBy, req.Source, now))
	})
	return s.swallowDuplicate(ctx, err, req.IdempotencyKey)
}

// ApplyInterest accrues balance * rate onto an active account. A rate or
// balance of zero or below is a deliberate silent no-op: nothing is written.
func (s *ledgerService) ApplyInterest(ctx context.Context, req dto.InterestRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if done, err := s.alreadyProcessed(ctx, req.IdempotencyKey); err != nil {
		return err
	} else if done {
		logger.Info("Interest accrual already processed, skipping", slog.String("idempotency_key", req.IdempotencyKey))
		return nil
	}

	err := s.store.WithAccountLock(ctx, []string{req.AccountNumber}, func(tx portsrepo.LedgerTx) error {
		acc, err := tx.AccountForUpdate(ctx, req.AccountNumber)
		if err != nil {
			return err
		}
		if err := ensureActive(acc); err != nil {
			return err
		}
		if acc.InterestRate.LessThanOrEqual(decimal.Zero) || acc.Balance.LessThanOrEqual(decimal.Zero) {
			logger.Debug("Skipping interest accrual", slog.String("account_number", acc.AccountNumber))
			return nil
		}

		interest := acc.Balance.Mul(acc.InterestRate)
		previous := acc.Balance
		next := previous.Add(interest)
		if next.IsNegative() {
			return fmt.Errorf("%w: interest on account %s", ErrNegativeBalance, acc.AccountNumber)
		}

		now := time.Now().UTC()
		acc.Balance = next
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = req.PerformedBy
		if err := tx.UpdateAccount(ctx, *acc); err != nil {
			return err
		}
		return tx.AppendTransaction(ctx, s.newEntry(acc, domain.Interest, interest, previous, next, req.IdempotencyKey, req.PerformedBy, req.Source, now))
	})
	return s.swallowDuplicate(ctx, err, req.IdempotencyKey)
}

// ReverseTransaction appends the inverse of a previously completed entry.
// The original record is never mutated. Repeated reversal requests for the
// same transaction are idempotent through the derived default key.
func (s *ledgerService) ReverseTransaction(ctx context.Context, req dto.ReversalRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.txnRepo.FindTransactionByID(ctx, req.TransactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, req.TransactionID)
		}
		return fmt.Errorf("failed to load transaction %s: %w", req.TransactionID, err)
	}
	if original.Status != domain.StatusCompleted {
		return fmt.Errorf("%w: transaction %s has status %s", ErrNotReversible, original.TransactionID, original.Status)
	}

	key := req.IdempotencyKey
	if key == "" {
		key = "REVERSE-" + original.TransactionID
	}
	if done, err := s.alreadyProcessed(ctx, key); err != nil {
		return err
	} else if done {
		logger.Info("Reversal already processed, skipping", slog.String("idempotency_key", key))
		return nil
	}

	reversalType, ok := original.TransactionType.ReversalType()
	if !ok {
		return fmt.Errorf("%w: %s", ErrReversalUnsupported, original.TransactionType)
	}

	err = s.store.WithAccountLock(ctx, []string{original.AccountNumber}, func(tx portsrepo.LedgerTx) error {
		acc, err := tx.AccountForUpdate(ctx, original.AccountNumber)
		if err != nil {
			return err
		}

		delta, _ := original.TransactionType.ReversalDelta(original.Amount)
		previous := acc.Balance
		next := previous.Add(delta)
		if next.IsNegative() {
			return fmt.Errorf("%w: reversing %s of %s on account %s", ErrNegativeBalance, original.TransactionType, original.Amount.String(), acc.AccountNumber)
		}

		now := time.Now().UTC()
		acc.Balance = next
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = req.PerformedBy
		if err := tx.UpdateAccount(ctx, *acc); err != nil {
			return err
		}
		return tx.AppendTransaction(ctx, s.newEntry(acc, reversalType, original.Amount, previous, next, key, req.PerformedBy, req.Source, now))
	})
	return s.swallowDuplicate(ctx, err, key)
}

// ChangeStatus overwrites the account status. Any status is reachable from
// any status; this mirrors the inherited contract.
func (s *ledgerService) ChangeStatus(ctx context.Context, accountNumber string, status string) error {
	newStatus, err := domain.ParseAccountStatus(status)
	if err != nil {
		return err
	}

	return s.store.WithAccountLock(ctx, []string{accountNumber}, func(tx portsrepo.LedgerTx) error {
		acc, err := tx.AccountForUpdate(ctx, accountNumber)
		if err != nil {
			return err
		}
		acc.Status = newStatus
		acc.LastUpdatedAt = time.Now().UTC()
		return tx.UpdateAccount(ctx, *acc)
	})
}

// GetAccount is a lock-free read of one account.
func (s *ledgerService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByNumber(ctx, accountNumber)
}

// GetTransaction is a lock-free read of one ledger entry.
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// GetBalance is a lock-free read of one account's balance.
func (s *ledgerService) GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	acc, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	return acc.Balance, nil
}

// GetDailyReport folds the calendar-day window containing date (default:
// today) into credit/debit totals. Lock-free snapshot read.
func (s *ledgerService) GetDailyReport(ctx context.Context, date *time.Time) (*domain.DailyReport, error) {
	from, to := s.window(date)
	txns, err := s.txnRepo.ListTransactionsInWindow(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for report: %w", err)
	}
	report := accounting.BuildDailyReport(txns, from, to)
	return &report, nil
}

// ListTransactions returns every ledger entry of the calendar-day window
// containing date (default: today).
func (s *ledgerService) ListTransactions(ctx context.Context, date *time.Time) ([]domain.Transaction, error) {
	from, to := s.window(date)
	return s.txnRepo.ListTransactionsInWindow(ctx, from, to)
}

// ListAccountTransactions is the per-account variant of ListTransactions.
func (s *ledgerService) ListAccountTransactions(ctx context.Context, accountNumber string, date *time.Time) ([]domain.Transaction, error) {
	if _, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber); err != nil {
		return nil, err
	}
	from, to := s.window(date)
	return s.txnRepo.ListAccountTransactionsInWindow(ctx, accountNumber, from, to)
}

func (s *ledgerService) window(date *time.Time) (time.Time, time.Time) {
	d := time.Now()
	if date != nil {
		d = *date
	}
	return accounting.DayWindow(d)
}

// swallowDuplicate maps the store's unique-key rejection to the success
// no-op outcome: a concurrent duplicate that lost the durable race has
// already been applied exactly once by the winner.
func (s *ledgerService) swallowDuplicate(ctx context.Context, err error, key string) error {
	if err != nil && key != "" && errors.Is(err, apperrors.ErrDuplicate) {
		middleware.GetLoggerFromCtx(ctx).Info("Duplicate submission detected by store, treating as replay", slog.String("idempotency_key", key))
		return nil
	}
	return err
}
