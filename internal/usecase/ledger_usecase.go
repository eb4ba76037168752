package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/currency"
	"github.com/moneta-app/moneta/internal/domain"
)

// LedgerUseCase owns the invariant "account balance = seed + sum of signed
// operation effects". Every balance-affecting mutation reverses old effects
// and applies new ones inside a single transaction, locking account rows in
// sorted-ID order.
type LedgerUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	opRepo       OperationRepository
	categoryRepo CategoryRepository
	idGen        IDGenerator
	notifier     ReloadNotifier
	retry        RetryStrategy
	now          func() time.Time
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	opRepo OperationRepository,
	categoryRepo CategoryRepository,
	idGen IDGenerator,
	notifier ReloadNotifier,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		opRepo:       opRepo,
		categoryRepo: categoryRepo,
		idGen:        idGen,
		notifier:     notifier,
		retry:        singleAttempt{},
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// SetRetrier installs a retry strategy for transactional mutations. Lock
// races rerun the whole transaction from a clean slate.
func (uc *LedgerUseCase) SetRetrier(r RetryStrategy) {
	if r != nil {
		uc.retry = r
	}
}

// CreateOperationInput represents input for creating an operation.
type CreateOperationInput struct {
	Kind        domain.OperationKind
	Amount      decimal.Decimal
	AccountID   string
	ToAccountID string
	CategoryID  string
	Rate        decimal.Decimal
	ToAmount    decimal.Decimal
	Date        time.Time
	Description string
}

// CreateOperation validates and persists an operation, applying its signed
// balance delta to the touched account(s) in the same transaction.
func (uc *LedgerUseCase) CreateOperation(ctx context.Context, input CreateOperationInput) (*domain.Operation, error) {
	if input.Kind == domain.KindAdjustment {
		// Adjustments are engine-generated via SetAccountBalance only.
		return nil, domain.ErrShadowImmutable
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.Kind != domain.KindTransfer {
		if err := uc.requireSelectableCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	date := input.Date
	if date.IsZero() {
		date = now
	}

	op := &domain.Operation{
		ID:          uc.idGen.Generate(),
		Kind:        input.Kind,
		Amount:      input.Amount,
		AccountID:   input.AccountID,
		ToAccountID: input.ToAccountID,
		CategoryID:  input.CategoryID,
		Rate:        input.Rate,
		ToAmount:    input.ToAmount,
		Date:        date,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := op.Validate(); err != nil {
		return nil, err
	}

	err := runInTx(ctx, uc.retry, uc.txManager, func(tx Transaction) error {
		accounts, err := uc.lockAccounts(ctx, tx, op)
		if err != nil {
			return err
		}

		if op.Kind == domain.KindTransfer {
			if err := uc.resolveTransferLeg(op, accounts[op.AccountID], accounts[op.ToAccountID]); err != nil {
				return err
			}
		}

		if err := uc.opRepo.Create(ctx, tx, op); err != nil {
			return err
		}

		return uc.applyEffects(ctx, tx, accounts, op, decimal.NewFromInt(1), now)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyTouched(ctx, op)

	return op, nil
}

// UpdateOperationInput carries the fields being changed; nil means unchanged.
type UpdateOperationInput struct {
	Amount      *decimal.Decimal
	CategoryID  *string
	Rate        *decimal.Decimal
	ToAmount    *decimal.Decimal
	Date        *time.Time
	Description *string
}

func (in *UpdateOperationInput) balanceAffecting() bool {
	return in.Amount != nil || in.Rate != nil || in.ToAmount != nil || in.Date != nil
}

// UpdateOperation edits an operation. Balance-affecting changes reverse the
// old effect and apply the new one atomically; description and category
// changes update in place without touching the ledger.
func (uc *LedgerUseCase) UpdateOperation(ctx context.Context, id string, input UpdateOperationInput) (*domain.Operation, error) {
	now := uc.now()

	var op *domain.Operation
	err := runInTx(ctx, uc.retry, uc.txManager, func(tx Transaction) error {
		var err error
		op, err = uc.opRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if op.IsAdjustment() && (input.balanceAffecting() || input.CategoryID != nil) {
			return domain.ErrShadowImmutable
		}

		if !input.balanceAffecting() {
			if input.Description != nil {
				op.Description = *input.Description
			}
			if input.CategoryID != nil {
				if op.Kind == domain.KindTransfer {
					return domain.ErrMissingCategory
				}
				if err := uc.requireSelectableCategory(ctx, *input.CategoryID); err != nil {
					return err
				}
				op.CategoryID = *input.CategoryID
			}

			op.UpdatedAt = now
			return uc.opRepo.Update(ctx, tx, op)
		}

		accounts, err := uc.lockAccounts(ctx, tx, op)
		if err != nil {
			return err
		}

		// Reverse the old effect before mutating the operation.
		if err := uc.applyEffects(ctx, tx, accounts, op, decimal.NewFromInt(-1), now); err != nil {
			return err
		}

		if input.Amount != nil {
			if err := domain.ValidateAmount(*input.Amount); err != nil {
				return err
			}
			op.Amount = *input.Amount
		}
		if input.Rate != nil {
			op.Rate = *input.Rate
		}
		if input.ToAmount != nil {
			op.ToAmount = *input.ToAmount
		}
		if input.Date != nil {
			op.Date = *input.Date
		}
		if input.Description != nil {
			op.Description = *input.Description
		}
		if input.CategoryID != nil {
			if err := uc.requireSelectableCategory(ctx, *input.CategoryID); err != nil {
				return err
			}
			op.CategoryID = *input.CategoryID
		}

		if err := op.Validate(); err != nil {
			return err
		}

		if op.Kind == domain.KindTransfer {
			if err := uc.resolveTransferLeg(op, accounts[op.AccountID], accounts[op.ToAccountID]); err != nil {
				return err
			}
		}

		op.UpdatedAt = now
		if err := uc.opRepo.Update(ctx, tx, op); err != nil {
			return err
		}

		return uc.applyEffects(ctx, tx, accounts, op, decimal.NewFromInt(1), now)
	})
	if err != nil {
		return nil, err
	}

	if input.balanceAffecting() {
		uc.notifyTouched(ctx, op)
	}

	return op, nil
}

// DeleteOperation reverses the operation's signed effect on its account(s)
// atomically with row deletion. Adjustments created on a prior calendar day
// are refused so historical balance corrections cannot be silently erased.
func (uc *LedgerUseCase) DeleteOperation(ctx context.Context, id string) error {
	now := uc.now()

	var op *domain.Operation
	err := runInTx(ctx, uc.retry, uc.txManager, func(tx Transaction) error {
		var err error
		op, err = uc.opRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if op.IsAdjustment() && !op.SameDay(now) {
			return domain.ErrAdjustmentLocked
		}

		accounts, err := uc.lockAccounts(ctx, tx, op)
		if err != nil {
			return err
		}

		if err := uc.applyEffects(ctx, tx, accounts, op, decimal.NewFromInt(-1), now); err != nil {
			return err
		}

		return uc.opRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	uc.notifyTouched(ctx, op)

	return nil
}

// SplitOperation deducts splitAmount from the operation and inserts a sibling
// of the same kind, account, and date under the new category. The split only
// reclassifies category attribution; the net balance effect is zero.
func (uc *LedgerUseCase) SplitOperation(ctx context.Context, id string, splitAmount decimal.Decimal, newCategoryID string) (*domain.Operation, error) {
	now := uc.now()

	var sibling *domain.Operation
	err := runInTx(ctx, uc.retry, uc.txManager, func(tx Transaction) error {
		op, err := uc.opRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if op.IsAdjustment() {
			return domain.ErrShadowImmutable
		}
		if op.Kind == domain.KindTransfer {
			return fmt.Errorf("%w: transfers carry no category", domain.ErrInvalidSplit)
		}

		if splitAmount.LessThanOrEqual(decimal.Zero) || splitAmount.GreaterThanOrEqual(op.Amount) {
			return domain.ErrInvalidSplit
		}

		if err := uc.requireSelectableCategory(ctx, newCategoryID); err != nil {
			return err
		}

		op.Amount = op.Amount.Sub(splitAmount)
		op.UpdatedAt = now
		if err := uc.opRepo.Update(ctx, tx, op); err != nil {
			return err
		}

		sibling = &domain.Operation{
			ID:          uc.idGen.Generate(),
			Kind:        op.Kind,
			Amount:      splitAmount,
			AccountID:   op.AccountID,
			CategoryID:  newCategoryID,
			Date:        op.Date,
			Description: op.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		return uc.opRepo.Create(ctx, tx, sibling)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.NotifyReload(ctx, sibling.AccountID)

	return sibling, nil
}

// SetAccountBalance records a manual balance edit by creating or refreshing
// a same-day adjustment operation carrying the correction delta, then sets
// the stored balance to the target.
func (uc *LedgerUseCase) SetAccountBalance(ctx context.Context, accountID string, target decimal.Decimal) error {
	now := uc.now()

	var noop bool
	err := runInTx(ctx, uc.retry, uc.txManager, func(tx Transaction) error {
		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
		if err != nil {
			return err
		}

		delta := target.Sub(account.Balance)
		if delta.IsZero() {
			noop = true
			return nil
		}
		noop = false

		existing, err := uc.opRepo.GetAdjustmentOn(ctx, tx, accountID, now)
		switch {
		case err == nil:
			// Fold today's corrections into one adjustment row.
			existing.Amount = existing.Amount.Add(delta)
			existing.UpdatedAt = now
			if existing.Amount.IsZero() {
				err = uc.opRepo.Delete(ctx, tx, existing.ID)
			} else {
				err = uc.opRepo.Update(ctx, tx, existing)
			}
			if err != nil {
				return err
			}

		case errors.Is(err, domain.ErrOperationNotFound):
			shadow, serr := uc.categoryRepo.GetShadow(ctx)
			if serr != nil {
				return serr
			}

			adj := &domain.Operation{
				ID:         uc.idGen.Generate(),
				Kind:       domain.KindAdjustment,
				Amount:     delta,
				AccountID:  accountID,
				CategoryID: shadow.ID,
				Date:       now,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := uc.opRepo.Create(ctx, tx, adj); err != nil {
				return err
			}

		default:
			return err
		}

		return uc.accountRepo.UpdateBalance(ctx, tx, accountID, target, now)
	})
	if err != nil {
		return err
	}

	if !noop {
		uc.notifier.NotifyReload(ctx, accountID)
	}

	return nil
}

// VerifyAccount recomputes the account balance from the full operation log
// and compares it against the stored value. A mismatch is a defect.
func (uc *LedgerUseCase) VerifyAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	ops, err := uc.opRepo.ListAllByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	computed := account.Seed
	for _, op := range ops {
		computed = computed.Add(op.Effect(accountID))
	}

	diff := account.Balance.Sub(computed)
	if !diff.IsZero() {
		return diff, fmt.Errorf("%w: account %s stored=%s computed=%s",
			domain.ErrInconsistentLedger, accountID, account.Balance, computed)
	}

	return decimal.Zero, nil
}

// GetOperation retrieves an operation by ID.
func (uc *LedgerUseCase) GetOperation(ctx context.Context, id string) (*domain.Operation, error) {
	return uc.opRepo.GetByID(ctx, id)
}

// ListOperationsInput represents input for listing operations. A non-zero
// From/To pair narrows the listing to a date window instead of paginating.
type ListOperationsInput struct {
	AccountID string
	Limit     int
	Offset    int
	From      time.Time
	To        time.Time
}

// ListOperations lists an account's operations, newest first. With a date
// window set it returns every operation inside [From, To), oldest first.
func (uc *LedgerUseCase) ListOperations(ctx context.Context, input ListOperationsInput) ([]*domain.Operation, error) {
	if !input.From.IsZero() && !input.To.IsZero() {
		return uc.opRepo.ListByAccountBetween(ctx, input.AccountID, input.From, input.To)
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.opRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// notifyTouched publishes a reload for every account the operation affects.
// Transfers touch two accounts, and dependent views of both must refresh.
func (uc *LedgerUseCase) notifyTouched(ctx context.Context, op *domain.Operation) {
	uc.notifier.NotifyReload(ctx, op.AccountID)
	if op.Kind == domain.KindTransfer && op.ToAccountID != op.AccountID {
		uc.notifier.NotifyReload(ctx, op.ToAccountID)
	}
}

// lockAccounts locks the operation's account rows in sorted-ID order
// (deadlock prevention) and returns them keyed by ID.
func (uc *LedgerUseCase) lockAccounts(ctx context.Context, tx Transaction, op *domain.Operation) (map[string]*domain.Account, error) {
	ids := []string{op.AccountID}
	if op.Kind == domain.KindTransfer {
		ids = append(ids, op.ToAccountID)
	}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	m := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.ID] = a
	}

	return m, nil
}

// resolveTransferLeg normalizes the transfer triple against the locked
// accounts: same-currency transfers mirror the amount, cross-currency
// transfers must reconcile within the destination's minor unit.
func (uc *LedgerUseCase) resolveTransferLeg(op *domain.Operation, from, to *domain.Account) error {
	if from.Currency == to.Currency {
		op.ToAmount = op.Amount
		op.Rate = decimal.Zero
		return nil
	}

	if op.Rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: cross-currency transfer requires an exchange rate", domain.ErrInvalidAmount)
	}

	leg := currency.Leg{Amount: op.Amount, Rate: op.Rate, ToAmount: op.ToAmount}
	if op.ToAmount.IsZero() {
		derived, err := currency.DeriveThird(leg, currency.FieldRate, from.Currency, to.Currency)
		if err != nil {
			return err
		}
		op.ToAmount = derived.ToAmount
		return nil
	}

	if !currency.Reconciles(leg, to.Currency) {
		return fmt.Errorf("%w: %s × %s != %s", domain.ErrRateMismatch, op.Amount, op.Rate, op.ToAmount)
	}

	return nil
}

// applyEffects applies sign × effect of the operation to every touched
// account and persists the new balances.
func (uc *LedgerUseCase) applyEffects(ctx context.Context, tx Transaction, accounts map[string]*domain.Account, op *domain.Operation, sign decimal.Decimal, now time.Time) error {
	for id, account := range accounts {
		effect := op.Effect(id)
		if effect.IsZero() {
			continue
		}

		account.Balance = account.Balance.Add(effect.Mul(sign))
		if err := uc.accountRepo.UpdateBalance(ctx, tx, id, account.Balance, now); err != nil {
			return err
		}
	}

	return nil
}

func (uc *LedgerUseCase) requireSelectableCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return domain.ErrMissingCategory
	}

	category, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if !category.Selectable() {
		return fmt.Errorf("%w: %s is not selectable", domain.ErrMissingCategory, categoryID)
	}

	return nil
}
