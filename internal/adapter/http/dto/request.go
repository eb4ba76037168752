package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	DisplayOrder   int             `json:"display_order"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		Currency:       r.Currency,
		InitialBalance: r.InitialBalance,
		DisplayOrder:   r.DisplayOrder,
	}
}

// UpdateAccountRequest renames or hides an account.
type UpdateAccountRequest struct {
	Name   string `json:"name"`
	Hidden bool   `json:"hidden"`
}

// ReorderAccountsRequest carries the full ordered ID list.
type ReorderAccountsRequest struct {
	AccountIDs []string `json:"account_ids"`
}

// DeleteAccountRequest optionally names the account inheriting operations.
type DeleteAccountRequest struct {
	TransferToID string `json:"transfer_to_id,omitempty"`
}

// SetBalanceRequest sets an account's balance to a target value.
type SetBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

// CreateOperationRequest represents a request to create an operation.
type CreateOperationRequest struct {
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   string          `json:"account_id"`
	ToAccountID string          `json:"to_account_id,omitempty"`
	CategoryID  string          `json:"category_id,omitempty"`
	Rate        decimal.Decimal `json:"rate,omitempty"`
	ToAmount    decimal.Decimal `json:"to_amount,omitempty"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateOperationRequest) ToUseCaseInput() usecase.CreateOperationInput {
	return usecase.CreateOperationInput{
		Kind:        domain.OperationKind(r.Kind),
		Amount:      r.Amount,
		AccountID:   r.AccountID,
		ToAccountID: r.ToAccountID,
		CategoryID:  r.CategoryID,
		Rate:        r.Rate,
		ToAmount:    r.ToAmount,
		Date:        r.Date,
		Description: r.Description,
	}
}

// UpdateOperationRequest carries the fields being changed; absent fields are
// left untouched.
type UpdateOperationRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Rate        *decimal.Decimal `json:"rate,omitempty"`
	ToAmount    *decimal.Decimal `json:"to_amount,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateOperationRequest) ToUseCaseInput() usecase.UpdateOperationInput {
	return usecase.UpdateOperationInput{
		Amount:      r.Amount,
		CategoryID:  r.CategoryID,
		Rate:        r.Rate,
		ToAmount:    r.ToAmount,
		Date:        r.Date,
		Description: r.Description,
	}
}

// SplitOperationRequest carves a portion of an operation into a sibling
// under a different category.
type SplitOperationRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	CategoryID string          `json:"category_id"`
}

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Type     string `json:"type"`
	ParentID string `json:"parent_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput() usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		Name:     r.Name,
		Kind:     domain.CategoryKind(r.Kind),
		Type:     domain.CategoryType(r.Type),
		ParentID: r.ParentID,
	}
}

// CalcRequest carries a calculator expression for amount input.
type CalcRequest struct {
	Expression string `json:"expression"`
}

// ConvertRequest re-derives one leg of a cross-currency triple after an edit.
type ConvertRequest struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Amount   decimal.Decimal `json:"amount"`
	Rate     decimal.Decimal `json:"rate"`
	ToAmount decimal.Decimal `json:"to_amount"`
	Edited   string          `json:"edited"` // amount, rate, to_amount
}
