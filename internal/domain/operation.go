package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationKind discriminates the operation variants.
type OperationKind string

const (
	KindExpense  OperationKind = "expense"
	KindIncome   OperationKind = "income"
	KindTransfer OperationKind = "transfer"
	// KindAdjustment marks a system-generated balance correction ("shadow"
	// operation). It carries a signed delta in Amount, may only be deleted on
	// its creation day, and is excluded from category pickers and summaries.
	KindAdjustment OperationKind = "adjustment"
)

// Operation is a single ledger entry affecting one or two accounts.
//
// Amount is always positive and denominated in the source account currency,
// except for adjustments, where it is the signed correction delta. For
// cross-currency transfers Rate and ToAmount are set; for same-currency
// transfers ToAmount equals Amount and Rate is zero.
type Operation struct {
	ID          string
	Kind        OperationKind
	Amount      decimal.Decimal
	AccountID   string
	ToAccountID string
	CategoryID  string
	Rate        decimal.Decimal
	ToAmount    decimal.Decimal
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAdjustment reports whether this is a shadow balance-correction operation.
func (o *Operation) IsAdjustment() bool {
	return o.Kind == KindAdjustment
}

// CrossCurrency reports whether the transfer moves between currencies.
// Only meaningful for transfers.
func (o *Operation) CrossCurrency() bool {
	return o.Kind == KindTransfer && !o.Rate.IsZero()
}

// Effect returns the signed balance delta this operation applies to the given
// account: negative for money leaving it, positive for money entering it.
// Accounts not referenced by the operation get a zero effect.
func (o *Operation) Effect(accountID string) decimal.Decimal {
	switch o.Kind {
	case KindExpense:
		if o.AccountID == accountID {
			return o.Amount.Neg()
		}
	case KindIncome:
		if o.AccountID == accountID {
			return o.Amount
		}
	case KindTransfer:
		// Both legs accumulate: re-homing can leave a transfer referencing
		// the same account as source and destination.
		effect := decimal.Zero
		if o.AccountID == accountID {
			effect = effect.Sub(o.Amount)
		}
		if o.ToAccountID == accountID {
			effect = effect.Add(o.ToAmount)
		}
		return effect
	case KindAdjustment:
		if o.AccountID == accountID {
			return o.Amount
		}
	}

	return decimal.Zero
}

// Validate checks the structural invariants of the operation.
func (o *Operation) Validate() error {
	switch o.Kind {
	case KindExpense, KindIncome:
		if o.Amount.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidAmount
		}
		if o.CategoryID == "" {
			return ErrMissingCategory
		}
	case KindTransfer:
		if o.Amount.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidAmount
		}
		if o.AccountID == o.ToAccountID {
			return ErrSameAccount
		}
	case KindAdjustment:
		if o.Amount.IsZero() {
			return ErrInvalidAmount
		}
	}

	return nil
}

// SameDay reports whether the operation is dated on the same calendar day as t,
// in UTC. Used by the prior-day adjustment deletion guard.
func (o *Operation) SameDay(t time.Time) bool {
	d, u := o.Date.UTC(), t.UTC()
	return d.Year() == u.Year() && d.Month() == u.Month() && d.Day() == u.Day()
}
