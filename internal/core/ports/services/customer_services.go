package services

import (
	"context"

	"github.com/corebank/ledger_backend/internal/core/domain"
	"github.com/corebank/ledger_backend/internal/dto"
)

// CustomerSvcFacade is the customer directory surface.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, performedBy string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error)
}
