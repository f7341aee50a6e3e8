package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corebank/ledger_backend/internal/apperrors"
	"github.com/corebank/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebank/ledger_backend/internal/core/ports/repositories"
	"github.com/corebank/ledger_backend/internal/models"
)

const transactionColumns = `transaction_id, account_number, amount, transaction_type, timestamp, previous_balance, new_balance, performed_by, source, status, idempotency_key`

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountNumber:   m.AccountNumber,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		Timestamp:       m.Timestamp,
		PreviousBalance: m.PreviousBalance,
		NewBalance:      m.NewBalance,
		PerformedBy:     m.PerformedBy,
		Source:          m.Source,
		Status:          domain.TransactionStatus(m.Status),
		IdempotencyKey:  m.IdempotencyKey,
	}
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	var key sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.AccountNumber,
		&m.Amount,
		&m.TransactionType,
		&m.Timestamp,
		&m.PreviousBalance,
		&m.NewBalance,
		&m.PerformedBy,
		&m.Source,
		&m.Status,
		&key,
	)
	if key.Valid {
		m.IdempotencyKey = key.String
	}
	return m, err
}

// FindTransactionByID retrieves one ledger entry by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	m, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := toDomainTransaction(m)
	return &d, nil
}

// FindTransactionByIdempotencyKey retrieves the entry recorded under key, if
// any. This is the advisory pre-check; the table's unique constraint on
// idempotency_key remains the authoritative guard on insert.
func (r *PgxTransactionRepository) FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE idempotency_key = $1;
	`
	m, err := scanTransaction(r.pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by idempotency key: %w", err)
	}

	d := toDomainTransaction(m)
	return &d, nil
}

// ListTransactionsInWindow retrieves every entry with timestamp in [from, to),
// oldest first.
func (r *PgxTransactionRepository) ListTransactionsInWindow(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE timestamp >= $1 AND timestamp < $2
		ORDER BY timestamp, transaction_id;
	`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions in window: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListAccountTransactionsInWindow is the per-account variant of
// ListTransactionsInWindow.
func (r *PgxTransactionRepository) ListAccountTransactionsInWindow(ctx context.Context, accountNumber string, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_number = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY timestamp, transaction_id;
	`
	rows, err := r.pool.Query(ctx, query, accountNumber, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountNumber, err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}
