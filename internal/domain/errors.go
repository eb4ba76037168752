package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountHasOperations = errors.New("account still has operations")

	// Operation errors
	ErrOperationNotFound = errors.New("operation not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrSameAccount       = errors.New("cannot transfer to same account")
	ErrMissingCategory   = errors.New("category is required for this operation")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidSplit      = errors.New("split amount must be positive and below the original amount")

	// Preconditions — named, user-actionable conditions
	ErrNoSameCurrencyAccount = errors.New("no other account with the same currency exists")
	ErrAdjustmentLocked      = errors.New("adjustment operations can only be deleted on their creation day")
	ErrShadowImmutable       = errors.New("adjustment operations cannot be edited or split")

	// Consistency violations are defects: the mutation must abort, never partially apply.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: balance does not match operation log")
	ErrRateMismatch       = errors.New("destination amount does not reconcile with exchange rate")
)
