package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/currency"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Currency     string          `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	Formatted    string          `json:"formatted"`
	DisplayOrder int             `json:"display_order"`
	Hidden       bool            `json:"hidden"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:           a.ID,
		Name:         a.Name,
		Currency:     a.Currency,
		Balance:      a.Balance,
		Formatted:    currency.Format(a.Currency, a.Balance),
		DisplayOrder: a.DisplayOrder,
		Hidden:       a.Hidden,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// OperationResponse represents an operation in API responses.
type OperationResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   string          `json:"account_id"`
	ToAccountID string          `json:"to_account_id,omitempty"`
	CategoryID  string          `json:"category_id,omitempty"`
	Rate        decimal.Decimal `json:"rate,omitempty"`
	ToAmount    decimal.Decimal `json:"to_amount,omitempty"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OperationFromDomain converts domain operation to response.
func OperationFromDomain(op *domain.Operation) *OperationResponse {
	return &OperationResponse{
		ID:          op.ID,
		Kind:        string(op.Kind),
		Amount:      op.Amount,
		AccountID:   op.AccountID,
		ToAccountID: op.ToAccountID,
		CategoryID:  op.CategoryID,
		Rate:        op.Rate,
		ToAmount:    op.ToAmount,
		Date:        op.Date,
		Description: op.Description,
		CreatedAt:   op.CreatedAt,
		UpdatedAt:   op.UpdatedAt,
	}
}

// OperationsFromDomain converts domain operations to responses.
func OperationsFromDomain(ops []*domain.Operation) []*OperationResponse {
	result := make([]*OperationResponse, len(ops))
	for i, op := range ops {
		result[i] = OperationFromDomain(op)
	}
	return result
}

// ListOperationsResponse wraps an operation listing.
type ListOperationsResponse struct {
	Operations []*OperationResponse `json:"operations"`
	Total      int64                `json:"total"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Type     string `json:"type"`
	ParentID string `json:"parent_id,omitempty"`
}

// CategoryFromDomain converts domain category to response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Kind:     string(c.Kind),
		Type:     string(c.Type),
		ParentID: c.ParentID,
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// HistoryResponse represents a reconstructed month in API responses. The
// usecase type already carries JSON tags; this wrapper exists so handlers
// return dto types uniformly.
type HistoryResponse struct {
	*usecase.History
}

// CalcResponse is the evaluated calculator expression.
type CalcResponse struct {
	Result decimal.Decimal `json:"result"`
}

// ConvertResponse is the re-derived cross-currency triple.
type ConvertResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Rate     decimal.Decimal `json:"rate"`
	ToAmount decimal.Decimal `json:"to_amount"`
}

// VerifyResponse reports a ledger consistency check. Drift is stored minus
// recomputed balance, zero when consistent.
type VerifyResponse struct {
	AccountID  string          `json:"account_id"`
	Consistent bool            `json:"consistent"`
	Drift      decimal.Decimal `json:"drift"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
