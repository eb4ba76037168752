package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/usecase"
)

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	BeginFunc    func(ctx context.Context) (usecase.Transaction, error)
	Transactions []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockIDGenerator returns sequential IDs unless overridden.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu      sync.Mutex
	counter int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + string(rune('0'+m.counter%10)) + string(rune('a'+m.counter/10))
}

// MockReloadNotifier records reload signals.
type MockReloadNotifier struct {
	mu      sync.Mutex
	Reloads []string
}

func NewMockReloadNotifier() *MockReloadNotifier {
	return &MockReloadNotifier{}
}

func (m *MockReloadNotifier) NotifyReload(ctx context.Context, accountID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reloads = append(m.Reloads, accountID)
}

func (m *MockReloadNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Reloads)
}

// MockAccountRepository is an in-memory AccountRepository with overridable
// behavior per method.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

// Seed inserts an account directly.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdateMeta(ctx context.Context, id string, name string, hidden bool, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Name = name
		acc.Hidden = hidden
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) UpdateDisplayOrder(ctx context.Context, id string, order int, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.DisplayOrder = order
		acc.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		copied := *acc
		accounts = append(accounts, &copied)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].DisplayOrder < accounts[j].DisplayOrder })
	return accounts, nil
}

func (m *MockAccountRepository) ListByCurrency(ctx context.Context, currency string) ([]*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if acc.Currency == currency {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

// MockOperationRepository is an in-memory OperationRepository.
type MockOperationRepository struct {
	mu  sync.RWMutex
	ops map[string]*domain.Operation

	CreateFunc                    func(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error
	UpdateFunc                    func(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error
	DeleteFunc                    func(ctx context.Context, tx usecase.Transaction, id string) error
	ListAllByAccountForUpdateFunc func(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Operation, error)
}

func NewMockOperationRepository() *MockOperationRepository {
	return &MockOperationRepository{ops: make(map[string]*domain.Operation)}
}

func (m *MockOperationRepository) Seed(op *domain.Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops[op.ID] = op
}

func (m *MockOperationRepository) Create(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, op)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *op
	m.ops[op.ID] = &copied
	return nil
}

func (m *MockOperationRepository) GetByID(ctx context.Context, id string) (*domain.Operation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if op, ok := m.ops[id]; ok {
		copied := *op
		return &copied, nil
	}
	return nil, domain.ErrOperationNotFound
}

func (m *MockOperationRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Operation, error) {
	return m.GetByID(ctx, id)
}

func (m *MockOperationRepository) Update(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, op)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ops[op.ID]; !ok {
		return domain.ErrOperationNotFound
	}
	copied := *op
	m.ops[op.ID] = &copied
	return nil
}

func (m *MockOperationRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ops[id]; !ok {
		return domain.ErrOperationNotFound
	}
	delete(m.ops, id)
	return nil
}

func (m *MockOperationRepository) touches(op *domain.Operation, accountID string) bool {
	return op.AccountID == accountID || (op.Kind == domain.KindTransfer && op.ToAccountID == accountID)
}

func (m *MockOperationRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Operation, error) {
	all, _ := m.ListAllByAccount(ctx, accountID)
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockOperationRepository) ListByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]*domain.Operation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ops []*domain.Operation
	for _, op := range m.ops {
		if m.touches(op, accountID) && !op.Date.Before(from) && op.Date.Before(to) {
			copied := *op
			ops = append(ops, &copied)
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Date.Before(ops[j].Date) })
	return ops, nil
}

func (m *MockOperationRepository) ListByAccountSince(ctx context.Context, accountID string, from time.Time) ([]*domain.Operation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ops []*domain.Operation
	for _, op := range m.ops {
		if m.touches(op, accountID) && !op.Date.Before(from) {
			copied := *op
			ops = append(ops, &copied)
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Date.Before(ops[j].Date) })
	return ops, nil
}

func (m *MockOperationRepository) ListAllByAccount(ctx context.Context, accountID string) ([]*domain.Operation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ops []*domain.Operation
	for _, op := range m.ops {
		if m.touches(op, accountID) {
			copied := *op
			ops = append(ops, &copied)
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Date.Before(ops[j].Date) })
	return ops, nil
}

func (m *MockOperationRepository) ListAllByAccountForUpdate(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Operation, error) {
	if m.ListAllByAccountForUpdateFunc != nil {
		return m.ListAllByAccountForUpdateFunc(ctx, tx, accountID)
	}
	return m.ListAllByAccount(ctx, accountID)
}

func (m *MockOperationRepository) CountByAccount(ctx context.Context, accountID string) (int, error) {
	ops, _ := m.ListAllByAccount(ctx, accountID)
	return len(ops), nil
}

func (m *MockOperationRepository) ReassignAccount(ctx context.Context, tx usecase.Transaction, fromID, toID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range m.ops {
		if op.AccountID == fromID {
			op.AccountID = toID
		}
		if op.Kind == domain.KindTransfer && op.ToAccountID == fromID {
			op.ToAccountID = toID
		}
	}
	return nil
}

func (m *MockOperationRepository) GetAdjustmentOn(ctx context.Context, tx usecase.Transaction, accountID string, day time.Time) (*domain.Operation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, op := range m.ops {
		if op.Kind == domain.KindAdjustment && op.AccountID == accountID && op.SameDay(day) {
			copied := *op
			return &copied, nil
		}
	}
	return nil, domain.ErrOperationNotFound
}

// MockCategoryRepository is an in-memory CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{categories: make(map[string]*domain.Category)}
}

func (m *MockCategoryRepository) Seed(category *domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	categories := make([]*domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		copied := *c
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *MockCategoryRepository) ListEntries(ctx context.Context, categoryType domain.CategoryType, includeShadow bool) ([]*domain.Category, error) {
	all, _ := m.List(ctx)
	var entries []*domain.Category
	for _, c := range all {
		if c.Kind != domain.CategoryEntry || c.Type != categoryType {
			continue
		}
		if c.Shadow && !includeShadow {
			continue
		}
		entries = append(entries, c)
	}
	return entries, nil
}

func (m *MockCategoryRepository) GetShadow(ctx context.Context) (*domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if c.Shadow {
			copied := *c
			return &copied, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// MockHistoryCache is an in-memory HistoryCache.
type MockHistoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	Hits    int
	Deletes int
}

func NewMockHistoryCache() *MockHistoryCache {
	return &MockHistoryCache{entries: make(map[string][]byte)}
}

func (m *MockHistoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.entries[key]; ok {
		m.Hits++
		return v, nil
	}
	return nil, nil
}

func (m *MockHistoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockHistoryCache) DeleteByAccount(ctx context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	for key := range m.entries {
		if len(key) > len("history:") && key[:len("history:")] == "history:" {
			delete(m.entries, key)
		}
	}
	return nil
}
