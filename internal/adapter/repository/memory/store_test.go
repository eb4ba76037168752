package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/adapter/repository/memory"
	"github.com/moneta-app/moneta/internal/adapter/repository/postgres"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/notify"
	"github.com/moneta-app/moneta/internal/usecase"
)

// The flow tests wire the real use cases against the in-memory store, ULID
// generator, and reload bus, covering a whole user session end to end.

type app struct {
	store     *memory.Store
	bus       *notify.Bus
	ledgerUC  *usecase.LedgerUseCase
	accountUC *usecase.AccountUseCase
	historyUC *usecase.HistoryUseCase
}

func newApp() *app {
	store := memory.New()
	bus := notify.NewBus(zerolog.Nop(), 16)
	idGen := postgres.NewULIDGenerator()

	return &app{
		store:     store,
		bus:       bus,
		ledgerUC:  usecase.NewLedgerUseCase(store, store, store.Operations(), store.Categories(), idGen, bus),
		accountUC: usecase.NewAccountUseCase(store, store, store.Operations(), idGen, bus),
		historyUC: usecase.NewHistoryUseCase(store, store.Operations(), nil, zerolog.Nop()),
	}
}

func (a *app) seedCategories(t *testing.T) (food, salary string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, a.store.Categories().Create(ctx, &domain.Category{
		ID: "cat-food", Name: "Food", Kind: domain.CategoryEntry, Type: domain.CategoryExpense,
	}))
	require.NoError(t, a.store.Categories().Create(ctx, &domain.Category{
		ID: "cat-salary", Name: "Salary", Kind: domain.CategoryEntry, Type: domain.CategoryIncome,
	}))
	require.NoError(t, a.store.Categories().Create(ctx, &domain.Category{
		ID: "cat-shadow", Name: "Balance corrections", Kind: domain.CategoryEntry, Type: domain.CategoryExpense, Shadow: true,
	}))
	return "cat-food", "cat-salary"
}

func (a *app) verify(t *testing.T, accountID string) {
	t.Helper()
	drift, err := a.ledgerUC.VerifyAccount(context.Background(), accountID)
	require.NoError(t, err, "ledger must stay consistent")
	require.True(t, drift.IsZero())
}

func TestLedgerFlow(t *testing.T) {
	a := newApp()
	ctx := context.Background()
	food, salary := a.seedCategories(t)

	sub := a.bus.Subscribe()
	defer sub.Cancel()

	wallet, err := a.accountUC.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Wallet", Currency: "USD", InitialBalance: decimal.RequireFromString("500"),
	})
	require.NoError(t, err)

	euro, err := a.accountUC.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Euro", Currency: "EUR", InitialBalance: decimal.RequireFromString("100"),
	})
	require.NoError(t, err)

	// Spend, earn, move money abroad.
	groceries, err := a.ledgerUC.CreateOperation(ctx, usecase.CreateOperationInput{
		Kind: domain.KindExpense, Amount: decimal.RequireFromString("80"),
		AccountID: wallet.ID, CategoryID: food,
	})
	require.NoError(t, err)

	_, err = a.ledgerUC.CreateOperation(ctx, usecase.CreateOperationInput{
		Kind: domain.KindIncome, Amount: decimal.RequireFromString("200"),
		AccountID: wallet.ID, CategoryID: salary,
	})
	require.NoError(t, err)

	transfer, err := a.ledgerUC.CreateOperation(ctx, usecase.CreateOperationInput{
		Kind: domain.KindTransfer, Amount: decimal.RequireFromString("100"),
		AccountID: wallet.ID, ToAccountID: euro.ID, Rate: decimal.RequireFromString("0.92"),
	})
	require.NoError(t, err)
	assert.True(t, transfer.ToAmount.Equal(decimal.RequireFromString("92.00")))

	current, err := a.accountUC.GetAccount(ctx, wallet.ID)
	require.NoError(t, err)
	assert.True(t, current.Balance.Equal(decimal.RequireFromString("520"))) // 500 - 80 + 200 - 100

	current, err = a.accountUC.GetAccount(ctx, euro.ID)
	require.NoError(t, err)
	assert.True(t, current.Balance.Equal(decimal.RequireFromString("192")))

	a.verify(t, wallet.ID)
	a.verify(t, euro.ID)

	// Split the grocery run into two categories; balances must not move.
	_, err = a.ledgerUC.SplitOperation(ctx, groceries.ID, decimal.RequireFromString("30"), salary)
	require.NoError(t, err)

	current, err = a.accountUC.GetAccount(ctx, wallet.ID)
	require.NoError(t, err)
	assert.True(t, current.Balance.Equal(decimal.RequireFromString("520")))
	a.verify(t, wallet.ID)

	// Manual balance correction creates a shadow adjustment and stays
	// verifiable.
	require.NoError(t, a.ledgerUC.SetAccountBalance(ctx, wallet.ID, decimal.RequireFromString("515")))
	a.verify(t, wallet.ID)

	ops, err := a.store.Operations().ListAllByAccount(ctx, wallet.ID)
	require.NoError(t, err)

	var adjustments int
	for _, op := range ops {
		if op.Kind == domain.KindAdjustment {
			adjustments++
			assert.Equal(t, "cat-shadow", op.CategoryID)
			assert.True(t, op.Amount.Equal(decimal.RequireFromString("-5")))
		}
	}
	assert.Equal(t, 1, adjustments)

	// Every committed mutation published a reload.
	reloads := 0
	for {
		select {
		case <-sub.C:
			reloads++
			continue
		default:
		}
		break
	}
	assert.Equal(t, 6, reloads) // 3 creates (the transfer notifies both legs), 1 split, 1 balance set
}

func TestLedgerFlow_DeleteAccountRehomes(t *testing.T) {
	a := newApp()
	ctx := context.Background()
	food, _ := a.seedCategories(t)

	checking, err := a.accountUC.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Checking", Currency: "USD", InitialBalance: decimal.RequireFromString("300"),
	})
	require.NoError(t, err)

	savings, err := a.accountUC.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Savings", Currency: "USD", InitialBalance: decimal.RequireFromString("1000"),
	})
	require.NoError(t, err)

	_, err = a.ledgerUC.CreateOperation(ctx, usecase.CreateOperationInput{
		Kind: domain.KindExpense, Amount: decimal.RequireFromString("40"),
		AccountID: checking.ID, CategoryID: food,
	})
	require.NoError(t, err)

	// Deleting without a destination is refused while candidates exist.
	err = a.accountUC.DeleteAccount(ctx, checking.ID, "")
	require.ErrorIs(t, err, domain.ErrAccountHasOperations)

	candidates, err := a.accountUC.SameCurrencyCandidates(ctx, checking.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, savings.ID, candidates[0].ID)

	require.NoError(t, a.accountUC.DeleteAccount(ctx, checking.ID, savings.ID))

	_, err = a.accountUC.GetAccount(ctx, checking.ID)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	dest, err := a.accountUC.GetAccount(ctx, savings.ID)
	require.NoError(t, err)
	assert.True(t, dest.Balance.Equal(decimal.RequireFromString("960"))) // 1000 - 40

	count, err := a.store.Operations().CountByAccount(ctx, savings.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLedgerFlow_History(t *testing.T) {
	a := newApp()
	ctx := context.Background()
	food, _ := a.seedCategories(t)

	wallet, err := a.accountUC.CreateAccount(ctx, usecase.CreateAccountInput{
		Name: "Wallet", Currency: "USD", InitialBalance: decimal.RequireFromString("100"),
	})
	require.NoError(t, err)

	_, err = a.ledgerUC.CreateOperation(ctx, usecase.CreateOperationInput{
		Kind: domain.KindExpense, Amount: decimal.RequireFromString("20"),
		AccountID: wallet.ID, CategoryID: food,
		Date: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = a.ledgerUC.CreateOperation(ctx, usecase.CreateOperationInput{
		Kind: domain.KindExpense, Amount: decimal.RequireFromString("30"),
		AccountID: wallet.ID, CategoryID: food,
		Date: time.Date(2024, time.March, 28, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	history, err := a.historyUC.BuildHistory(ctx, usecase.BuildHistoryInput{
		AccountID: wallet.ID,
		Year:      2024,
		Month:     time.March,
	})
	require.NoError(t, err)

	require.Len(t, history.Actual, 2, "one point per day with activity")
	assert.Equal(t, 1, history.Actual[0].Day)
	assert.True(t, history.Actual[0].Balance.Equal(decimal.RequireFromString("80")))
	assert.Equal(t, 28, history.Actual[1].Day)
	assert.True(t, history.Actual[1].Balance.Equal(decimal.RequireFromString("50")))
}
