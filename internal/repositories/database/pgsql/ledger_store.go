package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/corebank/ledger_backend/internal/apperrors"
	"github.com/corebank/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebank/ledger_backend/internal/core/ports/repositories"
	"github.com/corebank/ledger_backend/internal/middleware"
)

// PgxLedgerStore runs ledger mutations inside one database transaction with
// SELECT ... FOR UPDATE row locks on the touched accounts.
type PgxLedgerStore struct {
	BaseRepository
}

func newPgxLedgerStore(pool *pgxpool.Pool) portsrepo.LedgerStore {
	return &PgxLedgerStore{BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerStore = (*PgxLedgerStore)(nil)

// WithAccountLock begins a transaction, locks the account rows one by one in
// ascending account-number order and runs fn. Locking in a fixed global order
// keeps concurrent two-account transfers deadlock-free.
func (s *PgxLedgerStore) WithAccountLock(ctx context.Context, accountNumbers []string, fn func(tx portsrepo.LedgerTx) error) error {
	ordered := make([]string, len(accountNumbers))
	copy(ordered, accountNumbers)
	sort.Strings(ordered)

	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := s.Rollback(ctx, tx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to rollback ledger transaction", slog.Any("error", rbErr))
		}
	}()

	// One row at a time, never ANY($1): the lock acquisition order must be
	// exactly the sorted order.
	lockQuery := `SELECT account_number FROM accounts WHERE account_number = $1 FOR UPDATE;`
	for _, number := range ordered {
		var locked string
		if err := tx.QueryRow(ctx, lockQuery, number).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, number)
			}
			return fmt.Errorf("failed to lock account %s: %w", number, err)
		}
	}

	if err := fn(&pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

// pgxLedgerTx is the portsrepo.LedgerTx view bound to one open transaction.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) AccountForUpdate(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_number = $1
		FOR UPDATE;
	`
	m, err := scanAccount(t.tx.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read locked account %s: %w", accountNumber, err)
	}

	d := toDomainAccount(m)
	return &d, nil
}

func (t *pgxLedgerTx) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET balance = $2, status = $3, version = version + 1, last_updated_at = $4, last_updated_by = $5
		WHERE account_number = $1;
	`
	cmdTag, err := t.tx.Exec(ctx, query,
		account.AccountNumber,
		account.Balance,
		string(account.Status),
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountNumber)
	}
	return nil
}

func (t *pgxLedgerTx) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	var key sql.NullString
	if txn.IdempotencyKey != "" {
		key = sql.NullString{String: txn.IdempotencyKey, Valid: true}
	}

	_, err := t.tx.Exec(ctx, query,
		txn.TransactionID,
		txn.AccountNumber,
		txn.Amount,
		string(txn.TransactionType),
		txn.Timestamp,
		txn.PreviousBalance,
		txn.NewBalance,
		txn.PerformedBy,
		txn.Source,
		string(txn.Status),
		key,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: idempotency key already recorded", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to append transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (t *pgxLedgerTx) SumDebitsInWindow(ctx context.Context, accountNumber string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_number = $1
		  AND transaction_type = ANY($2)
		  AND timestamp >= $3 AND timestamp < $4;
	`
	limited := []string{
		string(domain.Withdraw),
		string(domain.TransferOut),
		string(domain.ExternalTransferOut),
	}

	var total decimal.Decimal
	if err := t.tx.QueryRow(ctx, query, accountNumber, limited, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum debits for account %s: %w", accountNumber, err)
	}
	return total, nil
}
