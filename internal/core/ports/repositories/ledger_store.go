package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger_backend/internal/core/domain"
)

// LedgerTx is the view of the store available while account locks are held.
// Every call belongs to the single atomic unit opened by WithAccountLock:
// either all writes commit together or none do.
type LedgerTx interface {
	// AccountForUpdate returns the locked account row, or apperrors.ErrNotFound.
	AccountForUpdate(ctx context.Context, accountNumber string) (*domain.Account, error)

	// UpdateAccount persists balance and status of a locked account and
	// bumps its version token.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// AppendTransaction appends one immutable ledger entry. A second entry
	// with the same idempotency key is rejected with apperrors.ErrDuplicate;
	// this rejection is the authoritative duplicate check.
	AppendTransaction(ctx context.Context, txn domain.Transaction) error

	// SumDebitsInWindow totals the account's limit-consuming debits
	// (WITHDRAW, TRANSFER_OUT, EXTERNAL_TRANSFER_OUT) with timestamp in [from, to).
	SumDebitsInWindow(ctx context.Context, accountNumber string, from, to time.Time) (decimal.Decimal, error)
}

// LedgerStore runs one ledger operation as an atomic unit under exclusive
// per-account locks.
type LedgerStore interface {
	// WithAccountLock acquires exclusive locks on the given accounts -- always
	// in ascending account-number order regardless of the order passed in, so
	// that concurrent two-account operations cannot deadlock -- then runs fn.
	// A nil return from fn commits the unit; any error rolls it back. Locks
	// are released on every exit path.
	WithAccountLock(ctx context.Context, accountNumbers []string, fn func(tx LedgerTx) error) error
}
