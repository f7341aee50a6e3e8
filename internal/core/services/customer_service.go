package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/corebank/ledger_backend/internal/apperrors"
	"github.com/corebank/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebank/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/corebank/ledger_backend/internal/core/ports/services"
	"github.com/corebank/ledger_backend/internal/dto"
	"github.com/corebank/ledger_backend/internal/middleware"
)

type customerService struct {
	customerRepo portsrepo.CustomerRepository
}

// NewCustomerService creates the customer registry service.
func NewCustomerService(customerRepo portsrepo.CustomerRepository) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer registers a new customer. Email is stored lowercased and is
// unique across the registry.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, performedBy string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       name,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     performedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: performedBy,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, customer.Email)
		}
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	return s.customerRepo.ListCustomers(ctx, limit, offset)
}
