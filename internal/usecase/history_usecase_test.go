package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/usecase"
	"github.com/moneta-app/moneta/internal/usecase/mocks"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 10, 0, 0, 0, time.UTC)
}

func expense(id string, amount string, date time.Time) *domain.Operation {
	return &domain.Operation{ID: id, Kind: domain.KindExpense, Amount: dec(amount), AccountID: "a1", CategoryID: "c1", Date: date}
}

func income(id string, amount string, date time.Time) *domain.Operation {
	return &domain.Operation{ID: id, Kind: domain.KindIncome, Amount: dec(amount), AccountID: "a1", CategoryID: "c2", Date: date}
}

type historyFixture struct {
	accounts *mocks.MockAccountRepository
	ops      *mocks.MockOperationRepository
	cache    *mocks.MockHistoryCache
	uc       *usecase.HistoryUseCase
}

func newHistoryFixture(balance string, cache *mocks.MockHistoryCache) *historyFixture {
	f := &historyFixture{
		accounts: mocks.NewMockAccountRepository(),
		ops:      mocks.NewMockOperationRepository(),
		cache:    cache,
	}
	f.accounts.Seed(&domain.Account{ID: "a1", Name: "Wallet", Currency: "USD", Balance: dec(balance), Seed: dec("100")})

	var c usecase.HistoryCache
	if cache != nil {
		c = cache
	}
	f.uc = usecase.NewHistoryUseCase(f.accounts, f.ops, c, zerolog.Nop())

	return f
}

func assertPoint(t *testing.T, p usecase.HistoryPoint, day int, balance string) {
	t.Helper()
	assert.Equal(t, day, p.Day)
	assert.True(t, p.Balance.Equal(dec(balance)), "day %d: got %s want %s", day, p.Balance, balance)
}

func TestHistoryUseCase_SparseActualSeries(t *testing.T) {
	f := newHistoryFixture("50", nil)
	f.ops.Seed(expense("op1", "20", day(2024, time.March, 1)))
	f.ops.Seed(expense("op2", "30", day(2024, time.March, 28)))

	history, err := f.uc.BuildHistory(context.Background(), usecase.BuildHistoryInput{
		AccountID: "a1",
		Year:      2024,
		Month:     time.March,
	})

	require.NoError(t, err)
	assert.Equal(t, 2024, history.Year)
	assert.Equal(t, time.March, history.Month)
	require.Len(t, history.Labels, 31)
	assert.Equal(t, 1, history.Labels[0])
	assert.Equal(t, 31, history.Labels[30])

	// Exactly one point per day with activity; day 1 carries an operation so
	// no anchor is added either.
	require.Len(t, history.Actual, 2)
	assertPoint(t, history.Actual[0], 1, "80")
	assertPoint(t, history.Actual[1], 28, "50")

	assert.Nil(t, history.Forecast, "closed months carry no forecast")
}

func TestHistoryUseCase_EmptyMonthAnchorsOnly(t *testing.T) {
	f := newHistoryFixture("100", nil)

	history, err := f.uc.BuildHistory(context.Background(), usecase.BuildHistoryInput{
		AccountID: "a1",
		Year:      2024,
		Month:     time.April,
	})

	require.NoError(t, err)
	require.Len(t, history.Actual, 2)
	assertPoint(t, history.Actual[0], 1, "100")
	assertPoint(t, history.Actual[1], 30, "100")
	assert.Empty(t, history.PrevMonth, "overlay has no anchors, so an empty month stays empty")
}

func TestHistoryUseCase_StartBalanceRewindsLaterMonths(t *testing.T) {
	// Stored balance reflects February and March activity; rebuilding February
	// must subtract both months' net effect to find February's start.
	f := newHistoryFixture("40", nil) // 100 - 20 (Feb) - 40 (Mar)
	f.ops.Seed(expense("feb", "20", day(2024, time.February, 10)))
	f.ops.Seed(expense("mar", "40", day(2024, time.March, 5)))

	history, err := f.uc.BuildHistory(context.Background(), usecase.BuildHistoryInput{
		AccountID: "a1",
		Year:      2024,
		Month:     time.February,
	})

	require.NoError(t, err)
	require.Len(t, history.Actual, 2)
	assertPoint(t, history.Actual[0], 1, "100") // anchor: no operation on day 1
	assertPoint(t, history.Actual[1], 10, "80")
}

func TestHistoryUseCase_PrevMonthOverlay(t *testing.T) {
	f := newHistoryFixture("30", nil) // 100 - 50 (Feb) - 20 (Mar)
	f.ops.Seed(expense("feb1", "50", day(2024, time.February, 5)))
	f.ops.Seed(expense("mar1", "20", day(2024, time.March, 12)))

	history, err := f.uc.BuildHistory(context.Background(), usecase.BuildHistoryInput{
		AccountID: "a1",
		Year:      2024,
		Month:     time.March,
	})

	require.NoError(t, err)
	require.Len(t, history.PrevMonth, 1, "only days with activity, no anchors")
	assertPoint(t, history.PrevMonth[0], 5, "50") // February started at 100
}

func TestHistoryUseCase_BurndownLine(t *testing.T) {
	f := newHistoryFixture("100", nil)

	history, err := f.uc.BuildHistory(context.Background(), usecase.BuildHistoryInput{
		AccountID: "a1",
		Year:      2024,
		Month:     time.March,
	})
	require.NoError(t, err)

	require.Len(t, history.Burndown, 2)
	assertPoint(t, history.Burndown[0], 1, "100")
	assertPoint(t, history.Burndown[1], 31, "100") // default target holds the start

	target := dec("20")
	history, err = f.uc.BuildHistory(context.Background(), usecase.BuildHistoryInput{
		AccountID:        "a1",
		Year:             2024,
		Month:            time.March,
		TargetEndBalance: &target,
	})
	require.NoError(t, err)

	require.Len(t, history.Burndown, 2)
	assertPoint(t, history.Burndown[0], 1, "100")
	assertPoint(t, history.Burndown[1], 31, "20")
}

func TestHistoryUseCase_ForecastProjectsOutflowRate(t *testing.T) {
	f := newHistoryFixture("85", nil) // 100 - 30 + 15
	f.ops.Seed(expense("op1", "30", day(2024, time.March, 10)))
	f.ops.Seed(income("op2", "15", day(2024, time.March, 12)))

	history, err := f.uc.BuildHistory(context.Background(), usecase.BuildHistoryInput{
		AccountID:      "a1",
		Year:           2024,
		Month:          time.March,
		IsCurrentMonth: true,
		AsOf:           day(2024, time.March, 15),
	})

	require.NoError(t, err)
	require.Len(t, history.Forecast, 2)
	assertPoint(t, history.Forecast[0], 15, "85")
	// Outflows only: 30 spent over 15 days is 2/day, 16 days remain.
	assertPoint(t, history.Forecast[1], 31, "53")
}

func TestHistoryUseCase_ClosedMonthIsCached(t *testing.T) {
	cache := mocks.NewMockHistoryCache()
	f := newHistoryFixture("50", cache)
	f.ops.Seed(expense("op1", "50", day(2024, time.March, 10)))

	input := usecase.BuildHistoryInput{AccountID: "a1", Year: 2024, Month: time.March}

	first, err := f.uc.BuildHistory(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 0, cache.Hits)

	second, err := f.uc.BuildHistory(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Hits, "second build of a closed month is served from cache")

	require.Len(t, second.Actual, len(first.Actual))
	for i := range first.Actual {
		assert.Equal(t, first.Actual[i].Day, second.Actual[i].Day)
		assert.True(t, first.Actual[i].Balance.Equal(second.Actual[i].Balance))
	}
}

func TestHistoryUseCase_CurrentMonthBypassesCache(t *testing.T) {
	cache := mocks.NewMockHistoryCache()
	f := newHistoryFixture("100", cache)

	input := usecase.BuildHistoryInput{
		AccountID:      "a1",
		Year:           2024,
		Month:          time.March,
		IsCurrentMonth: true,
		AsOf:           day(2024, time.March, 15),
	}

	_, err := f.uc.BuildHistory(context.Background(), input)
	require.NoError(t, err)
	_, err = f.uc.BuildHistory(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 0, cache.Hits)
}

func TestHistoryUseCase_HandleReloadInvalidatesCache(t *testing.T) {
	cache := mocks.NewMockHistoryCache()
	f := newHistoryFixture("100", cache)

	f.uc.HandleReload(context.Background(), "a1")
	assert.Equal(t, 1, cache.Deletes)

	// A nil cache is tolerated.
	bare := newHistoryFixture("100", nil)
	bare.uc.HandleReload(context.Background(), "a1")
}
