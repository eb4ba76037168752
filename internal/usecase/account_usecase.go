package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
)

// AccountUseCase handles the account lifecycle: creation, display metadata,
// reordering, and deletion with operation re-homing.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	opRepo      OperationRepository
	idGen       IDGenerator
	notifier    ReloadNotifier
	retry       RetryStrategy
	now         func() time.Time
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	opRepo OperationRepository,
	idGen IDGenerator,
	notifier ReloadNotifier,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		opRepo:      opRepo,
		idGen:       idGen,
		notifier:    notifier,
		retry:       singleAttempt{},
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetRetrier installs a retry strategy for transactional mutations.
func (uc *AccountUseCase) SetRetrier(r RetryStrategy) {
	if r != nil {
		uc.retry = r
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name           string
	Currency       string
	InitialBalance decimal.Decimal
	DisplayOrder   int
}

// CreateAccount creates a new account seeded with the initial balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	now := uc.now()

	account := &domain.Account{
		ID:           uc.idGen.Generate(),
		Name:         input.Name,
		Currency:     input.Currency,
		Balance:      input.InitialBalance,
		Seed:         input.InitialBalance,
		DisplayOrder: input.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists all accounts in display order.
func (uc *AccountUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx)
}

// RenameAccount updates display metadata without touching the ledger.
func (uc *AccountUseCase) RenameAccount(ctx context.Context, id, name string, hidden bool) error {
	if err := domain.ValidateAccountName(name); err != nil {
		return err
	}

	if _, err := uc.accountRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return uc.accountRepo.UpdateMeta(ctx, id, name, hidden, uc.now())
}

// ReorderAccounts remaps display order to the given ID sequence. A pure
// display remap: balances are never touched.
func (uc *AccountUseCase) ReorderAccounts(ctx context.Context, orderedIDs []string) error {
	now := uc.now()

	for order, id := range orderedIDs {
		if err := uc.accountRepo.UpdateDisplayOrder(ctx, id, order, now); err != nil {
			return err
		}
	}

	return nil
}

// SameCurrencyCandidates returns the accounts that could absorb the given
// account's operations on deletion: same currency, different ID.
func (uc *AccountUseCase) SameCurrencyCandidates(ctx context.Context, id string) ([]*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	all, err := uc.accountRepo.ListByCurrency(ctx, account.Currency)
	if err != nil {
		return nil, err
	}

	candidates := make([]*domain.Account, 0, len(all))
	for _, a := range all {
		if a.ID != id {
			candidates = append(candidates, a)
		}
	}

	return candidates, nil
}

// DeleteAccount deletes an account. An account without operations is deleted
// directly. Otherwise transferToID must name another account of the same
// currency; every operation is re-homed onto it and its balance recomputed
// as its own balance plus the re-homed operations' signed effects, all in
// one transaction. Without a same-currency candidate the deletion is refused
// with ErrNoSameCurrencyAccount so the caller can prompt account creation.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id, transferToID string) error {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := uc.opRepo.CountByAccount(ctx, id)
	if err != nil {
		return err
	}

	now := uc.now()

	if count == 0 {
		err := runInTx(ctx, uc.retry, uc.txManager, func(tx Transaction) error {
			// Recheck under lock: an operation may have landed since the count.
			ops, err := uc.opRepo.ListAllByAccountForUpdate(ctx, tx, id)
			if err != nil {
				return err
			}
			if len(ops) > 0 {
				return domain.ErrAccountHasOperations
			}

			return uc.accountRepo.Delete(ctx, tx, id)
		})
		if err != nil {
			return err
		}

		uc.notifier.NotifyReload(ctx, id)

		return nil
	}

	if transferToID == "" || transferToID == id {
		candidates, err := uc.SameCurrencyCandidates(ctx, id)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			return domain.ErrNoSameCurrencyAccount
		}
		return domain.ErrAccountHasOperations
	}

	dest, err := uc.accountRepo.GetByID(ctx, transferToID)
	if err != nil {
		return err
	}
	if dest.Currency != account.Currency {
		return domain.ErrNoSameCurrencyAccount
	}

	err = runInTx(ctx, uc.retry, uc.txManager, func(tx Transaction) error {
		// Lock both rows; the source keeps other writers out until it is gone.
		locked, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, sortedPair(id, transferToID))
		if err != nil {
			return err
		}
		if len(locked) != 2 {
			return domain.ErrAccountNotFound
		}

		var destBalance decimal.Decimal
		for _, a := range locked {
			if a.ID == transferToID {
				destBalance = a.Balance
			}
		}

		// Listed under lock, so an operation committed after the earlier count
		// is still folded into the recompute below.
		ops, err := uc.opRepo.ListAllByAccountForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := uc.opRepo.ReassignAccount(ctx, tx, id, transferToID); err != nil {
			return err
		}

		// The re-homed operations carry the same signed effect on their new
		// home as they had on the old one.
		for _, op := range ops {
			destBalance = destBalance.Add(op.Effect(id))
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, transferToID, destBalance, now); err != nil {
			return err
		}

		return uc.accountRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	uc.notifier.NotifyReload(ctx, transferToID)

	return nil
}

func sortedPair(a, b string) []string {
	if a < b {
		return []string{a, b}
	}
	return []string{b, a}
}
