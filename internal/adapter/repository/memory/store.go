// Package memory provides an in-memory implementation of the repository
// interfaces, used by tests and local development. It keeps code paths easy
// to follow while allowing a real database to be plugged in later.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/usecase"
)

// Store implements the account, operation, and category repositories plus
// the transaction manager, guarded by a single RWMutex. Transactions are
// no-ops: the mutex already serializes writers.
type Store struct {
	mu         sync.RWMutex
	accounts   map[string]*domain.Account
	operations map[string]*domain.Operation
	categories map[string]*domain.Category
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		accounts:   make(map[string]*domain.Account),
		operations: make(map[string]*domain.Operation),
		categories: make(map[string]*domain.Category),
	}
}

// Reset drops all data. Test helper.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = map[string]*domain.Account{}
	s.operations = map[string]*domain.Operation{}
	s.categories = map[string]*domain.Category{}
}

type memTx struct{}

func (memTx) Commit(context.Context) error   { return nil }
func (memTx) Rollback(context.Context) error { return nil }

// Begin implements usecase.TransactionManager.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	return memTx{}, nil
}

// --- AccountRepository ---

func (s *Store) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *account
	s.accounts[account.ID] = &copied
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.accounts[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (s *Store) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return s.GetByID(ctx, id)
}

func (s *Store) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if a, ok := s.accounts[id]; ok {
			copied := *a
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (s *Store) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Balance = balance
	a.UpdatedAt = updatedAt
	return nil
}

func (s *Store) UpdateMeta(ctx context.Context, id string, name string, hidden bool, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Name = name
	a.Hidden = hidden
	a.UpdatedAt = updatedAt
	return nil
}

func (s *Store) UpdateDisplayOrder(ctx context.Context, id string, order int, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.DisplayOrder = order
	a.UpdatedAt = updatedAt
	return nil
}

func (s *Store) List(ctx context.Context) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		copied := *a
		accounts = append(accounts, &copied)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].DisplayOrder != accounts[j].DisplayOrder {
			return accounts[i].DisplayOrder < accounts[j].DisplayOrder
		}
		return accounts[i].ID < accounts[j].ID
	})
	return accounts, nil
}

func (s *Store) ListByCurrency(ctx context.Context, currency string) ([]*domain.Account, error) {
	all, _ := s.List(ctx)
	var accounts []*domain.Account
	for _, a := range all {
		if a.Currency == currency {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

func (s *Store) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(s.accounts, id)
	return nil
}

// --- OperationRepository ---

// Operations returns a facade exposing the operation repository methods
// under names that do not collide with the account repository.
func (s *Store) Operations() *OperationStore {
	return &OperationStore{s: s}
}

// Categories returns the category repository facade.
func (s *Store) Categories() *CategoryStore {
	return &CategoryStore{s: s}
}

// OperationStore implements usecase.OperationRepository on the shared Store.
type OperationStore struct {
	s *Store
}

func touches(op *domain.Operation, accountID string) bool {
	return op.AccountID == accountID || (op.Kind == domain.KindTransfer && op.ToAccountID == accountID)
}

func (o *OperationStore) Create(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	copied := *op
	o.s.operations[op.ID] = &copied
	return nil
}

func (o *OperationStore) GetByID(ctx context.Context, id string) (*domain.Operation, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	if op, ok := o.s.operations[id]; ok {
		copied := *op
		return &copied, nil
	}
	return nil, domain.ErrOperationNotFound
}

func (o *OperationStore) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Operation, error) {
	return o.GetByID(ctx, id)
}

func (o *OperationStore) Update(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if _, ok := o.s.operations[op.ID]; !ok {
		return domain.ErrOperationNotFound
	}
	copied := *op
	o.s.operations[op.ID] = &copied
	return nil
}

func (o *OperationStore) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if _, ok := o.s.operations[id]; !ok {
		return domain.ErrOperationNotFound
	}
	delete(o.s.operations, id)
	return nil
}

func (o *OperationStore) list(accountID string, filter func(*domain.Operation) bool) []*domain.Operation {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	var ops []*domain.Operation
	for _, op := range o.s.operations {
		if touches(op, accountID) && (filter == nil || filter(op)) {
			copied := *op
			ops = append(ops, &copied)
		}
	}
	sort.Slice(ops, func(i, j int) bool {
		if !ops[i].Date.Equal(ops[j].Date) {
			return ops[i].Date.Before(ops[j].Date)
		}
		return ops[i].ID < ops[j].ID
	})
	return ops
}

func (o *OperationStore) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Operation, error) {
	ops := o.list(accountID, nil)
	// newest first
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	if offset >= len(ops) {
		return nil, nil
	}
	end := offset + limit
	if end > len(ops) {
		end = len(ops)
	}
	return ops[offset:end], nil
}

func (o *OperationStore) ListByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]*domain.Operation, error) {
	return o.list(accountID, func(op *domain.Operation) bool {
		return !op.Date.Before(from) && op.Date.Before(to)
	}), nil
}

func (o *OperationStore) ListByAccountSince(ctx context.Context, accountID string, from time.Time) ([]*domain.Operation, error) {
	return o.list(accountID, func(op *domain.Operation) bool {
		return !op.Date.Before(from)
	}), nil
}

func (o *OperationStore) ListAllByAccount(ctx context.Context, accountID string) ([]*domain.Operation, error) {
	return o.list(accountID, nil), nil
}

func (o *OperationStore) ListAllByAccountForUpdate(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Operation, error) {
	return o.ListAllByAccount(ctx, accountID)
}

func (o *OperationStore) CountByAccount(ctx context.Context, accountID string) (int, error) {
	return len(o.list(accountID, nil)), nil
}

func (o *OperationStore) ReassignAccount(ctx context.Context, tx usecase.Transaction, fromID, toID string) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	for _, op := range o.s.operations {
		if op.AccountID == fromID {
			op.AccountID = toID
		}
		if op.Kind == domain.KindTransfer && op.ToAccountID == fromID {
			op.ToAccountID = toID
		}
	}
	return nil
}

func (o *OperationStore) GetAdjustmentOn(ctx context.Context, tx usecase.Transaction, accountID string, day time.Time) (*domain.Operation, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()
	for _, op := range o.s.operations {
		if op.Kind == domain.KindAdjustment && op.AccountID == accountID && op.SameDay(day) {
			copied := *op
			return &copied, nil
		}
	}
	return nil, domain.ErrOperationNotFound
}

// CategoryStore implements usecase.CategoryRepository on the shared Store.
type CategoryStore struct {
	s *Store
}

func (c *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	copied := *category
	c.s.categories[category.ID] = &copied
	return nil
}

func (c *CategoryStore) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	if cat, ok := c.s.categories[id]; ok {
		copied := *cat
		return &copied, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (c *CategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	categories := make([]*domain.Category, 0, len(c.s.categories))
	for _, cat := range c.s.categories {
		copied := *cat
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (c *CategoryStore) ListEntries(ctx context.Context, categoryType domain.CategoryType, includeShadow bool) ([]*domain.Category, error) {
	all, _ := c.List(ctx)
	var entries []*domain.Category
	for _, cat := range all {
		if cat.Kind != domain.CategoryEntry || cat.Type != categoryType {
			continue
		}
		if cat.Shadow && !includeShadow {
			continue
		}
		entries = append(entries, cat)
	}
	return entries, nil
}

func (c *CategoryStore) GetShadow(ctx context.Context) (*domain.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	for _, cat := range c.s.categories {
		if cat.Shadow {
			copied := *cat
			return &copied, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}
