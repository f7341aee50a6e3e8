package repositories

import (
	"context"

	"github.com/corebank/ledger_backend/internal/core/domain"
)

// CustomerRepository stores directory records. The ledger core only reads it.
type CustomerRepository interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)
}
