package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corebank/ledger_backend/internal/apperrors"
	"github.com/corebank/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebank/ledger_backend/internal/core/ports/repositories"
	"github.com/corebank/ledger_backend/internal/models"
)

const accountColumns = `account_number, customer_id, balance, account_type, status, currency, interest_rate, daily_debit_limit, version, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

// Helper to convert domain.Account to models.Account for DB storage
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountNumber:   d.AccountNumber,
		CustomerID:      d.CustomerID,
		Balance:         d.Balance,
		AccountType:     string(d.AccountType),
		Status:          string(d.Status),
		Currency:        d.Currency,
		InterestRate:    d.InterestRate,
		DailyDebitLimit: d.DailyDebitLimit,
		Version:         d.Version,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountNumber:   m.AccountNumber,
		CustomerID:      m.CustomerID,
		Balance:         m.Balance,
		AccountType:     domain.AccountType(m.AccountType),
		Status:          domain.AccountStatus(m.Status),
		Currency:        m.Currency,
		InterestRate:    m.InterestRate,
		DailyDebitLimit: m.DailyDebitLimit,
		Version:         m.Version,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountNumber,
		&m.CustomerID,
		&m.Balance,
		&m.AccountType,
		&m.Status,
		&m.Currency,
		&m.InterestRate,
		&m.DailyDebitLimit,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account. A reused account number surfaces as
// apperrors.ErrDuplicate so the caller can regenerate and retry.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountNumber,
		m.CustomerID,
		m.Balance,
		m.AccountType,
		m.Status,
		m.Currency,
		m.InterestRate,
		m.DailyDebitLimit,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, m.AccountNumber)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountNumber, err)
	}
	return nil
}

// FindAccountByNumber retrieves an account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_number = $1;
	`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}

	d := toDomainAccount(m)
	return &d, nil
}
