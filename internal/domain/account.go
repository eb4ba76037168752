package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a user account holding a balance in a single currency.
//
// Balance is always recomputable as Seed (the initial value at creation,
// fixed for the account's lifetime) plus the signed effects
// of every non-deleted operation referencing this account. It is mutated only
// through the ledger use cases, never written directly by callers.
type Account struct {
	ID           string
	Name         string
	Currency     string
	Balance      decimal.Decimal
	Seed         decimal.Decimal
	DisplayOrder int
	Hidden       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
