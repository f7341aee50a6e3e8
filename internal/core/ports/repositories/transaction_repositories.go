package repositories

import (
	"context"
	"time"

	"github.com/corebank/ledger_backend/internal/core/domain"
)

// TransactionRepository provides lock-free reads over the append-only
// transaction log. All lookups return apperrors.ErrNotFound when no row matches.
type TransactionRepository interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByIdempotencyKey is the advisory fast-path duplicate
	// check. The authoritative check is the unique constraint enforced on
	// append (see LedgerTx.AppendTransaction).
	FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error)

	// ListTransactionsInWindow returns every entry with timestamp in [from, to),
	// ordered by timestamp ascending.
	ListTransactionsInWindow(ctx context.Context, from, to time.Time) ([]domain.Transaction, error)

	// ListAccountTransactionsInWindow is the per-account variant of
	// ListTransactionsInWindow.
	ListAccountTransactionsInWindow(ctx context.Context, accountNumber string, from, to time.Time) ([]domain.Transaction, error)
}
