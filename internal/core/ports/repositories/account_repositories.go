package repositories

import (
	"context"

	"github.com/corebank/ledger_backend/internal/core/domain"
)

// AccountRepository provides lock-free access to account records.
type AccountRepository interface {
	// SaveAccount inserts a new account. A reused account number is rejected
	// with apperrors.ErrDuplicate by the store's unique constraint.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByNumber returns the account or apperrors.ErrNotFound.
	// The read takes no lock and observes a consistent snapshot.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
}
