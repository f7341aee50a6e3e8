package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank/ledger_backend/internal/apperrors"
	"github.com/corebank/ledger_backend/internal/core/domain"
	portsrepo "github.com/corebank/ledger_backend/internal/core/ports/repositories"
	"github.com/corebank/ledger_backend/internal/utils/accounting"
)

// memStore is an in-memory implementation of the repository ports with the
// same locking and idempotency contract as the SQL store: per-account mutexes
// acquired in ascending order, staged writes applied only on a nil return
// from fn, and a unique-key rejection on append.
type memStore struct {
	mu        sync.Mutex
	locks     map[string]*sync.Mutex
	accounts  map[string]domain.Account
	txns      []domain.Transaction
	txnByID   map[string]domain.Transaction
	txnByKey  map[string]domain.Transaction
	customers map[string]domain.Customer
}

func newMemStore() *memStore {
	return &memStore{
		locks:     make(map[string]*sync.Mutex),
		accounts:  make(map[string]domain.Account),
		txnByID:   make(map[string]domain.Transaction),
		txnByKey:  make(map[string]domain.Transaction),
		customers: make(map[string]domain.Customer),
	}
}

var (
	_ portsrepo.LedgerStore           = (*memStore)(nil)
	_ portsrepo.AccountRepository     = (*memStore)(nil)
	_ portsrepo.TransactionRepository = (*memStore)(nil)
	_ portsrepo.CustomerRepository    = (*memStore)(nil)
)

func (s *memStore) lockFor(accountNumber string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[accountNumber]
	if !ok {
		l = &sync.Mutex{}
		s.locks[accountNumber] = l
	}
	return l
}

func (s *memStore) WithAccountLock(ctx context.Context, accountNumbers []string, fn func(tx portsrepo.LedgerTx) error) error {
	seen := make(map[string]bool)
	ordered := make([]string, 0, len(accountNumbers))
	for _, n := range accountNumbers {
		if !seen[n] {
			seen[n] = true
			ordered = append(ordered, n)
		}
	}
	sort.Strings(ordered)

	for _, n := range ordered {
		s.lockFor(n).Lock()
	}
	defer func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			s.locks[ordered[i]].Unlock()
		}
	}()

	tx := &memTx{store: s, staged: make(map[string]domain.Account)}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for n, acc := range tx.staged {
		s.accounts[n] = acc
	}
	for _, t := range tx.appended {
		s.txns = append(s.txns, t)
		s.txnByID[t.TransactionID] = t
		if t.IdempotencyKey != "" {
			s.txnByKey[t.IdempotencyKey] = t
		}
	}
	return nil
}

// memTx stages writes until the enclosing WithAccountLock commits.
type memTx struct {
	store    *memStore
	staged   map[string]domain.Account
	appended []domain.Transaction
}

func (t *memTx) AccountForUpdate(ctx context.Context, accountNumber string) (*domain.Account, error) {
	if acc, ok := t.staged[accountNumber]; ok {
		return &acc, nil
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	acc, ok := t.store.accounts[accountNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (t *memTx) UpdateAccount(ctx context.Context, account domain.Account) error {
	account.Version++
	t.staged[account.AccountNumber] = account
	return nil
}

func (t *memTx) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	if txn.IdempotencyKey != "" {
		t.store.mu.Lock()
		_, exists := t.store.txnByKey[txn.IdempotencyKey]
		t.store.mu.Unlock()
		if !exists {
			for _, staged := range t.appended {
				if staged.IdempotencyKey == txn.IdempotencyKey {
					exists = true
					break
				}
			}
		}
		if exists {
			return fmt.Errorf("%w: idempotency key already recorded", apperrors.ErrDuplicate)
		}
	}
	t.appended = append(t.appended, txn)
	return nil
}

func (t *memTx) SumDebitsInWindow(ctx context.Context, accountNumber string, from, to time.Time) (decimal.Decimal, error) {
	var candidates []domain.Transaction
	t.store.mu.Lock()
	for _, txn := range t.store.txns {
		if txn.AccountNumber == accountNumber && inWindow(txn.Timestamp, from, to) {
			candidates = append(candidates, txn)
		}
	}
	t.store.mu.Unlock()
	for _, txn := range t.appended {
		if txn.AccountNumber == accountNumber && inWindow(txn.Timestamp, from, to) {
			candidates = append(candidates, txn)
		}
	}
	return accounting.SumLimitedDebits(candidates), nil
}

func inWindow(ts, from, to time.Time) bool {
	return !ts.Before(from) && ts.Before(to)
}

// --- AccountRepository ---

func (s *memStore) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.AccountNumber]; exists {
		return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, account.AccountNumber)
	}
	s.accounts[account.AccountNumber] = account
	return nil
}

func (s *memStore) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[accountNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

// --- TransactionRepository ---

func (s *memStore) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.txnByID[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (s *memStore) FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.txnByKey[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (s *memStore) ListTransactionsInWindow(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []domain.Transaction{}
	for _, txn := range s.txns {
		if inWindow(txn.Timestamp, from, to) {
			res = append(res, txn)
		}
	}
	return res, nil
}

func (s *memStore) ListAccountTransactionsInWindow(ctx context.Context, accountNumber string, from, to time.Time) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []domain.Transaction{}
	for _, txn := range s.txns {
		if txn.AccountNumber == accountNumber && inWindow(txn.Timestamp, from, to) {
			res = append(res, txn)
		}
	}
	return res, nil
}

// --- CustomerRepository ---

func (s *memStore) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customers[customer.CustomerID]; exists {
		return fmt.Errorf("%w: customer %s already exists", apperrors.ErrDuplicate, customer.CustomerID)
	}
	for _, existing := range s.customers {
		if existing.Email == customer.Email {
			return fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, customer.Email)
		}
	}
	s.customers[customer.CustomerID] = customer
	return nil
}

func (s *memStore) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[customerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *memStore) ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.customers))
	for id := range s.customers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	res := []domain.Customer{}
	for i := offset; i < len(ids) && len(res) < limit; i++ {
		res = append(res, s.customers[ids[i]])
	}
	return res, nil
}

// --- seeding helpers ---

func (s *memStore) seedAccount(acc domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[acc.AccountNumber] = acc
}

func (s *memStore) seedTransaction(txn domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns = append(s.txns, txn)
	s.txnByID[txn.TransactionID] = txn
	if txn.IdempotencyKey != "" {
		s.txnByKey[txn.IdempotencyKey] = txn
	}
}

func (s *memStore) seedCustomer(c domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.CustomerID] = c
}

func (s *memStore) accountBalance(accountNumber string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[accountNumber].Balance
}

func (s *memStore) transactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txns)
}
