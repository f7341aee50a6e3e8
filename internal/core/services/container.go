package services

import (
	portsrepo "github.com/corebank/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/corebank/ledger_backend/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies
type Container struct {
	Ledger   portssvc.LedgerSvcFacade
	Customer portssvc.CustomerSvcFacade
}

// NewContainer creates a new service container with properly initialized dependencies
func NewContainer(repos *portsrepo.RepositoryProvider, cfg LedgerConfig) *Container {
	return &Container{
		Ledger: NewLedgerService(
			repos.Ledger,
			repos.AccountRepo,
			repos.TransactionRepo,
			repos.CustomerRepo,
			cfg,
		),
		Customer: NewCustomerService(repos.CustomerRepo),
	}
}
