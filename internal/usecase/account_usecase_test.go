package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/usecase"
	"github.com/moneta-app/moneta/internal/usecase/mocks"
)

type accountFixture struct {
	accounts *mocks.MockAccountRepository
	ops      *mocks.MockOperationRepository
	notifier *mocks.MockReloadNotifier
	uc       *usecase.AccountUseCase
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		accounts: mocks.NewMockAccountRepository(),
		ops:      mocks.NewMockOperationRepository(),
		notifier: mocks.NewMockReloadNotifier(),
	}

	f.uc = usecase.NewAccountUseCase(mocks.NewMockTransactionManager(), f.accounts, f.ops, mocks.NewMockIDGenerator(), f.notifier)
	f.uc.SetClock(func() time.Time { return testNow })

	return f
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	f := newAccountFixture()

	account, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Name:           "Wallet",
		Currency:       "USD",
		InitialBalance: dec("42.50"),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.True(t, account.Balance.Equal(dec("42.50")))
	assert.True(t, account.Seed.Equal(dec("42.50")), "seed mirrors the initial balance")

	stored, err := f.accounts.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wallet", stored.Name)
}

func TestAccountUseCase_CreateAccount_RejectsBlankName(t *testing.T) {
	f := newAccountFixture()

	for _, name := range []string{"", "   "} {
		_, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
			Name:     name,
			Currency: "USD",
		})
		require.ErrorIs(t, err, domain.ErrInvalidAccountName, "name %q", name)
	}
}

func TestAccountUseCase_RenameAccount(t *testing.T) {
	f := newAccountFixture()
	f.accounts.Seed(&domain.Account{ID: "a1", Name: "Old", Currency: "USD", Balance: dec("100")})

	require.NoError(t, f.uc.RenameAccount(context.Background(), "a1", "New", true))

	account, err := f.accounts.GetByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "New", account.Name)
	assert.True(t, account.Hidden)
	assert.True(t, account.Balance.Equal(dec("100")))

	err = f.uc.RenameAccount(context.Background(), "missing", "New", false)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountUseCase_ReorderAccounts(t *testing.T) {
	f := newAccountFixture()
	f.accounts.Seed(&domain.Account{ID: "a1", Name: "One", Currency: "USD", Balance: dec("10"), DisplayOrder: 0})
	f.accounts.Seed(&domain.Account{ID: "a2", Name: "Two", Currency: "USD", Balance: dec("20"), DisplayOrder: 1})
	f.accounts.Seed(&domain.Account{ID: "a3", Name: "Three", Currency: "EUR", Balance: dec("30"), DisplayOrder: 2})

	require.NoError(t, f.uc.ReorderAccounts(context.Background(), []string{"a3", "a1", "a2"}))

	accounts, err := f.uc.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "a3", accounts[0].ID)
	assert.Equal(t, "a1", accounts[1].ID)
	assert.Equal(t, "a2", accounts[2].ID)

	for _, a := range accounts {
		switch a.ID {
		case "a1":
			assert.True(t, a.Balance.Equal(dec("10")))
		case "a2":
			assert.True(t, a.Balance.Equal(dec("20")))
		case "a3":
			assert.True(t, a.Balance.Equal(dec("30")))
		}
	}
}

func TestAccountUseCase_SameCurrencyCandidates(t *testing.T) {
	f := newAccountFixture()
	f.accounts.Seed(&domain.Account{ID: "a1", Name: "One", Currency: "USD"})
	f.accounts.Seed(&domain.Account{ID: "a2", Name: "Two", Currency: "USD"})
	f.accounts.Seed(&domain.Account{ID: "a3", Name: "Three", Currency: "EUR"})

	candidates, err := f.uc.SameCurrencyCandidates(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "a2", candidates[0].ID, "excludes the account itself and other currencies")

	candidates, err = f.uc.SameCurrencyCandidates(context.Background(), "a3")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestAccountUseCase_DeleteAccount_EmptyAccountDeletedDirectly(t *testing.T) {
	f := newAccountFixture()
	f.accounts.Seed(&domain.Account{ID: "a1", Name: "One", Currency: "USD"})

	require.NoError(t, f.uc.DeleteAccount(context.Background(), "a1", ""))

	_, err := f.accounts.GetByID(context.Background(), "a1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Equal(t, 1, f.notifier.Count())
}

func TestAccountUseCase_DeleteAccount_RequiresDestinationWhenOperationsExist(t *testing.T) {
	f := newAccountFixture()
	f.accounts.Seed(&domain.Account{ID: "a1", Name: "One", Currency: "USD", Balance: dec("75")})
	f.accounts.Seed(&domain.Account{ID: "a2", Name: "Two", Currency: "USD", Balance: dec("50")})
	f.ops.Seed(&domain.Operation{ID: "op1", Kind: domain.KindExpense, Amount: dec("25"), AccountID: "a1", CategoryID: "c1", Date: testNow})

	err := f.uc.DeleteAccount(context.Background(), "a1", "")
	require.ErrorIs(t, err, domain.ErrAccountHasOperations, "candidate exists, caller must choose one")

	_, err = f.accounts.GetByID(context.Background(), "a1")
	require.NoError(t, err, "refusal leaves the account in place")
}

func TestAccountUseCase_DeleteAccount_NoCandidate(t *testing.T) {
	f := newAccountFixture()
	f.accounts.Seed(&domain.Account{ID: "a1", Name: "One", Currency: "USD", Balance: dec("75")})
	f.accounts.Seed(&domain.Account{ID: "a3", Name: "Three", Currency: "EUR", Balance: dec("10")})
	f.ops.Seed(&domain.Operation{ID: "op1", Kind: domain.KindExpense, Amount: dec("25"), AccountID: "a1", CategoryID: "c1", Date: testNow})

	err := f.uc.DeleteAccount(context.Background(), "a1", "")
	require.ErrorIs(t, err, domain.ErrNoSameCurrencyAccount)
}

func TestAccountUseCase_DeleteAccount_CurrencyMismatch(t *testing.T) {
	f := newAccountFixture()
	f.accounts.Seed(&domain.Account{ID: "a1", Name: "One", Currency: "USD", Balance: dec("75")})
	f.accounts.Seed(&domain.Account{ID: "a3", Name: "Three", Currency: "EUR", Balance: dec("10")})
	f.ops.Seed(&domain.Operation{ID: "op1", Kind: domain.KindExpense, Amount: dec("25"), AccountID: "a1", CategoryID: "c1", Date: testNow})

	err := f.uc.DeleteAccount(context.Background(), "a1", "a3")
	require.ErrorIs(t, err, domain.ErrNoSameCurrencyAccount)
}

func TestAccountUseCase_DeleteAccount_RehomesOperations(t *testing.T) {
	f := newAccountFixture()
	f.accounts.Seed(&domain.Account{ID: "a1", Name: "One", Currency: "USD", Balance: dec("75"), Seed: dec("100")})
	f.accounts.Seed(&domain.Account{ID: "a2", Name: "Two", Currency: "USD", Balance: dec("50"), Seed: dec("50")})
	f.ops.Seed(&domain.Operation{ID: "op1", Kind: domain.KindExpense, Amount: dec("25"), AccountID: "a1", CategoryID: "c1", Date: testNow})
	f.ops.Seed(&domain.Operation{ID: "op2", Kind: domain.KindIncome, Amount: dec("10"), AccountID: "a1", CategoryID: "c2", Date: testNow})

	require.NoError(t, f.uc.DeleteAccount(context.Background(), "a1", "a2"))

	_, err := f.accounts.GetByID(context.Background(), "a1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	dest, err := f.accounts.GetByID(context.Background(), "a2")
	require.NoError(t, err)
	assert.True(t, dest.Balance.Equal(dec("35")), "50 - 25 + 10")

	ops, err := f.ops.ListAllByAccount(context.Background(), "a2")
	require.NoError(t, err)
	assert.Len(t, ops, 2, "all operations re-homed onto the destination")
	assert.Equal(t, []string{"a2"}, f.notifier.Reloads)
}

func TestAccountUseCase_DeleteAccount_RehomesTransferLeg(t *testing.T) {
	f := newAccountFixture()
	f.accounts.Seed(&domain.Account{ID: "a1", Name: "One", Currency: "USD", Balance: dec("70"), Seed: dec("100")})
	f.accounts.Seed(&domain.Account{ID: "a2", Name: "Two", Currency: "USD", Balance: dec("80"), Seed: dec("50")})
	f.ops.Seed(&domain.Operation{
		ID: "t1", Kind: domain.KindTransfer,
		Amount: dec("30"), ToAmount: dec("30"),
		AccountID: "a1", ToAccountID: "a2", Date: testNow,
	})

	require.NoError(t, f.uc.DeleteAccount(context.Background(), "a1", "a2"))

	dest, err := f.accounts.GetByID(context.Background(), "a2")
	require.NoError(t, err)
	// The transfer becomes a self-transfer: 80 - 30 (outgoing leg lands here too).
	assert.True(t, dest.Balance.Equal(dec("50")))

	op, err := f.ops.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "a2", op.AccountID)
	assert.Equal(t, "a2", op.ToAccountID)
}

func TestAccountUseCase_DeleteAccount_CountsOperationCommittedBeforeLock(t *testing.T) {
	f := newAccountFixture()
	f.accounts.Seed(&domain.Account{ID: "a1", Name: "One", Currency: "USD", Balance: dec("75"), Seed: dec("100")})
	f.accounts.Seed(&domain.Account{ID: "a2", Name: "Two", Currency: "USD", Balance: dec("50"), Seed: dec("50")})
	f.ops.Seed(&domain.Operation{ID: "op1", Kind: domain.KindExpense, Amount: dec("25"), AccountID: "a1", CategoryID: "c1", Date: testNow})

	// An operation committed after the delete decision but before the rows
	// are locked must still reach the destination balance recompute.
	f.accounts.GetByIDsForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
		f.accounts.GetByIDsForUpdateFunc = nil
		f.ops.Seed(&domain.Operation{ID: "late", Kind: domain.KindExpense, Amount: dec("5"), AccountID: "a1", CategoryID: "c1", Date: testNow})
		return f.accounts.GetByIDsForUpdate(ctx, tx, ids)
	}

	require.NoError(t, f.uc.DeleteAccount(context.Background(), "a1", "a2"))

	dest, err := f.accounts.GetByID(context.Background(), "a2")
	require.NoError(t, err)
	assert.True(t, dest.Balance.Equal(dec("20")), "50 - 25 - 5, the late operation included")

	ops, err := f.ops.ListAllByAccount(context.Background(), "a2")
	require.NoError(t, err)
	assert.Len(t, ops, 2)
}
