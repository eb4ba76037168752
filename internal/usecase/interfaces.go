package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateMeta(ctx context.Context, id string, name string, hidden bool, updatedAt time.Time) error
	UpdateDisplayOrder(ctx context.Context, id string, order int, updatedAt time.Time) error
	List(ctx context.Context) ([]*domain.Account, error)
	ListByCurrency(ctx context.Context, currency string) ([]*domain.Account, error)
	Delete(ctx context.Context, tx Transaction, id string) error
}

// OperationRepository defines data access for operations.
type OperationRepository interface {
	Create(ctx context.Context, tx Transaction, op *domain.Operation) error
	GetByID(ctx context.Context, id string) (*domain.Operation, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Operation, error)
	Update(ctx context.Context, tx Transaction, op *domain.Operation) error
	Delete(ctx context.Context, tx Transaction, id string) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Operation, error)
	// ListByAccountBetween returns operations touching the account (as source
	// or destination) with from <= Date < to, ordered by date ascending.
	ListByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]*domain.Operation, error)
	ListByAccountSince(ctx context.Context, accountID string, from time.Time) ([]*domain.Operation, error)
	ListAllByAccount(ctx context.Context, accountID string) ([]*domain.Operation, error)
	// ListAllByAccountForUpdate is ListAllByAccount inside a transaction,
	// locking the rows so the listing stays exact until commit.
	ListAllByAccountForUpdate(ctx context.Context, tx Transaction, accountID string) ([]*domain.Operation, error)
	CountByAccount(ctx context.Context, accountID string) (int, error)
	// ReassignAccount re-homes every operation referencing fromID (as source
	// or destination) onto toID.
	ReassignAccount(ctx context.Context, tx Transaction, fromID, toID string) error
	// GetAdjustmentOn returns the adjustment operation for the account dated
	// on the given calendar day, or domain.ErrOperationNotFound.
	GetAdjustmentOn(ctx context.Context, tx Transaction, accountID string, day time.Time) (*domain.Operation, error)
}

// CategoryRepository defines data access for the category tree.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	// ListEntries lists entry categories of the given type, excluding shadow
	// categories unless includeShadow is set.
	ListEntries(ctx context.Context, categoryType domain.CategoryType, includeShadow bool) ([]*domain.Category, error)
	GetShadow(ctx context.Context) (*domain.Category, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// RetryStrategy reruns a transactional closure after a retryable failure,
// such as a lost lock race. Each attempt starts from a fresh transaction.
type RetryStrategy interface {
	Retry(ctx context.Context, fn func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ReloadNotifier receives the fire-and-forget "reload all" signal emitted
// after balance-affecting commits.
type ReloadNotifier interface {
	NotifyReload(ctx context.Context, accountID string)
}

// HistoryCache caches built balance-history series keyed by account and month.
type HistoryCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByAccount(ctx context.Context, accountID string) error
}
