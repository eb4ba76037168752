package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
)

// HistoryPoint is one day of a reconstructed balance series.
type HistoryPoint struct {
	Day     int             `json:"day"`
	Balance decimal.Decimal `json:"balance"`
}

// History is the derived month view: a sparse actual running-balance series,
// a two-point burndown pace line, the previous month overlaid on the same
// day offsets, and (for the current month only) a forward spending forecast.
// Never persisted; reproducible byte-for-byte from the operation set.
type History struct {
	Year      int            `json:"year"`
	Month     time.Month     `json:"month"`
	Labels    []int          `json:"labels"`
	Actual    []HistoryPoint `json:"actual"`
	Burndown  []HistoryPoint `json:"burndown"`
	PrevMonth []HistoryPoint `json:"prev_month"`
	Forecast  []HistoryPoint `json:"forecast,omitempty"`
}

// BuildHistoryInput represents input for building a month's history.
//
// IsCurrentMonth and AsOf are supplied by the caller rather than derived
// internally, so reconstruction is reproducible with fixed dates.
type BuildHistoryInput struct {
	AccountID      string
	Year           int
	Month          time.Month
	IsCurrentMonth bool
	AsOf           time.Time
	// TargetEndBalance is the burndown line's end-of-month target. Nil means
	// hold the starting balance, a flat pace line.
	TargetEndBalance *decimal.Decimal
}

// HistoryUseCase rebuilds day-by-day balance series from the operation log.
type HistoryUseCase struct {
	accountRepo AccountRepository
	opRepo      OperationRepository
	cache       HistoryCache
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewHistoryUseCase creates a new HistoryUseCase. cache may be nil.
func NewHistoryUseCase(accountRepo AccountRepository, opRepo OperationRepository, cache HistoryCache, logger zerolog.Logger) *HistoryUseCase {
	return &HistoryUseCase{
		accountRepo: accountRepo,
		opRepo:      opRepo,
		cache:       cache,
		cacheTTL:    time.Hour,
		logger:      logger,
	}
}

// SetCacheTTL overrides the default one-hour TTL for cached closed months.
func (uc *HistoryUseCase) SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		uc.cacheTTL = ttl
	}
}

// BuildHistory reconstructs the balance series for one account and month.
//
// The month's starting balance is derived by subtracting the net effect of
// every operation dated on or after the month start from the current stored
// balance; no separately persisted snapshot is involved.
func (uc *HistoryUseCase) BuildHistory(ctx context.Context, input BuildHistoryInput) (*History, error) {
	key := fmt.Sprintf("history:%s:%04d-%02d", input.AccountID, input.Year, input.Month)

	// Closed months are stable; the current month shifts with every day.
	cacheable := uc.cache != nil && !input.IsCurrentMonth
	if cacheable {
		if raw, err := uc.cache.Get(ctx, key); err == nil && len(raw) > 0 {
			var cached History
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(input.Year, input.Month, 1, 0, 0, 0, 0, time.UTC)
	nextStart := monthStart.AddDate(0, 1, 0)
	prevStart := monthStart.AddDate(0, -1, 0)
	daysInMonth := nextStart.AddDate(0, 0, -1).Day()

	// One scan covers the previous month, the requested month, and anything
	// after it (needed to rewind the stored balance for past months).
	ops, err := uc.opRepo.ListByAccountSince(ctx, input.AccountID, prevStart)
	if err != nil {
		return nil, err
	}

	startBalance := account.Balance
	prevNet := decimal.Zero
	for _, op := range ops {
		if !op.Date.Before(monthStart) {
			startBalance = startBalance.Sub(op.Effect(input.AccountID))
		} else {
			prevNet = prevNet.Add(op.Effect(input.AccountID))
		}
	}
	prevStartBalance := startBalance.Sub(prevNet)

	history := &History{
		Year:   input.Year,
		Month:  input.Month,
		Labels: make([]int, daysInMonth),
	}
	for i := range history.Labels {
		history.Labels[i] = i + 1
	}

	history.Actual = uc.replayMonth(ops, input.AccountID, monthStart, nextStart, daysInMonth, startBalance, true)
	history.PrevMonth = uc.replayMonth(ops, input.AccountID, prevStart, monthStart, 0, prevStartBalance, false)

	target := startBalance
	if input.TargetEndBalance != nil {
		target = *input.TargetEndBalance
	}
	history.Burndown = []HistoryPoint{
		{Day: 1, Balance: startBalance},
		{Day: daysInMonth, Balance: target},
	}

	if input.IsCurrentMonth {
		history.Forecast = uc.forecast(ops, input.AccountID, monthStart, input.AsOf, daysInMonth, startBalance)
	}

	if cacheable {
		if raw, err := json.Marshal(history); err == nil {
			if err := uc.cache.Set(ctx, key, raw, uc.cacheTTL); err != nil {
				uc.logger.Warn().Err(err).Str("key", key).Msg("history cache write failed")
			}
		}
	}

	return history, nil
}

// replayMonth folds operations within [from, to) into a sparse per-day
// series: one point per day that carries activity. With anchors set, a month
// whose first day has no operation gets a day-1 starting point, and a month
// with no operations at all gets both boundary days so the chart still draws
// a line; the previous-month overlay leaves them absent so the chart can
// skip days without data.
func (uc *HistoryUseCase) replayMonth(ops []*domain.Operation, accountID string, from, to time.Time, daysInMonth int, startBalance decimal.Decimal, anchors bool) []HistoryPoint {
	perDay := make(map[int]decimal.Decimal)
	for _, op := range ops {
		if op.Date.Before(from) || !op.Date.Before(to) {
			continue
		}
		day := op.Date.UTC().Day()
		perDay[day] = perDay[day].Add(op.Effect(accountID))
	}

	lastDay := to.AddDate(0, 0, -1).Day()
	if daysInMonth > 0 {
		lastDay = daysInMonth
	}

	var points []HistoryPoint
	running := startBalance

	if anchors {
		if _, ok := perDay[1]; !ok {
			points = append(points, HistoryPoint{Day: 1, Balance: startBalance})
		}
	}

	for day := 1; day <= lastDay; day++ {
		delta, ok := perDay[day]
		if !ok {
			continue
		}
		running = running.Add(delta)
		points = append(points, HistoryPoint{Day: day, Balance: running})
	}

	if anchors && len(perDay) == 0 {
		points = append(points, HistoryPoint{Day: lastDay, Balance: running})
	}

	return points
}

// forecast projects the end-of-month balance from the daily-average spending
// rate observed so far: outflows only, divided by elapsed days, extended
// over the remaining days.
func (uc *HistoryUseCase) forecast(ops []*domain.Operation, accountID string, monthStart, asOf time.Time, daysInMonth int, startBalance decimal.Decimal) []HistoryPoint {
	asOfDay := asOf.UTC().Day()
	if asOfDay < 1 {
		asOfDay = 1
	}

	balance := startBalance
	spent := decimal.Zero
	for _, op := range ops {
		if op.Date.Before(monthStart) || op.Date.UTC().Day() > asOfDay || !op.Date.Before(monthStart.AddDate(0, 1, 0)) {
			continue
		}
		effect := op.Effect(accountID)
		balance = balance.Add(effect)
		if effect.IsNegative() {
			spent = spent.Sub(effect)
		}
	}

	daysRemaining := daysInMonth - asOfDay
	dailyRate := spent.Div(decimal.NewFromInt(int64(asOfDay)))
	projected := balance.Sub(dailyRate.Mul(decimal.NewFromInt(int64(daysRemaining))))

	return []HistoryPoint{
		{Day: asOfDay, Balance: balance},
		{Day: daysInMonth, Balance: projected},
	}
}

// HandleReload drops cached series for the account after a ledger mutation.
func (uc *HistoryUseCase) HandleReload(ctx context.Context, accountID string) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.DeleteByAccount(ctx, accountID); err != nil {
		uc.logger.Warn().Err(err).Str("account_id", accountID).Msg("history cache invalidation failed")
	}
}
