package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/adapter/http/dto"
	"github.com/moneta-app/moneta/internal/adapter/http/handler"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/usecase"
)

type stubAccountService struct {
	createFunc     func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFunc        func(ctx context.Context, id string) (*domain.Account, error)
	listFunc       func(ctx context.Context) ([]*domain.Account, error)
	renameFunc     func(ctx context.Context, id, name string, hidden bool) error
	reorderFunc    func(ctx context.Context, orderedIDs []string) error
	candidatesFunc func(ctx context.Context, id string) ([]*domain.Account, error)
	deleteFunc     func(ctx context.Context, id, transferToID string) error
}

func (s *stubAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFunc(ctx, input)
}

func (s *stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFunc(ctx, id)
}

func (s *stubAccountService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.listFunc(ctx)
}

func (s *stubAccountService) RenameAccount(ctx context.Context, id, name string, hidden bool) error {
	return s.renameFunc(ctx, id, name, hidden)
}

func (s *stubAccountService) ReorderAccounts(ctx context.Context, orderedIDs []string) error {
	return s.reorderFunc(ctx, orderedIDs)
}

func (s *stubAccountService) SameCurrencyCandidates(ctx context.Context, id string) ([]*domain.Account, error) {
	return s.candidatesFunc(ctx, id)
}

func (s *stubAccountService) DeleteAccount(ctx context.Context, id, transferToID string) error {
	return s.deleteFunc(ctx, id, transferToID)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestAccountHandler_Create(t *testing.T) {
	svc := &stubAccountService{
		createFunc: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return &domain.Account{
				ID:       "a1",
				Name:     input.Name,
				Currency: input.Currency,
				Balance:  input.InitialBalance,
				Seed:     input.InitialBalance,
			}, nil
		},
	}
	h := handler.NewAccountHandler(svc)

	body := `{"name":"Wallet","currency":"USD","initial_balance":"42.50"}`
	r := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Create(w, r)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "a1", resp.ID)
	assert.Equal(t, "Wallet", resp.Name)
	assert.True(t, resp.Balance.Equal(decimal.RequireFromString("42.50")))
	assert.Equal(t, "$42.50", resp.Formatted)
}

func TestAccountHandler_Create_InvalidBody(t *testing.T) {
	h := handler.NewAccountHandler(&stubAccountService{})

	r := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Create(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	svc := &stubAccountService{
		getFunc: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}
	h := handler.NewAccountHandler(svc)

	r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/accounts/missing", nil), "id", "missing")
	w := httptest.NewRecorder()

	h.Get(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAccountHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		deleteErr  error
		wantStatus int
		wantDest   string
	}{
		{
			name:       "no body deletes directly",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "body names the destination",
			body:       `{"transfer_to_id":"a2"}`,
			wantStatus: http.StatusNoContent,
			wantDest:   "a2",
		},
		{
			name:       "operations present without destination",
			deleteErr:  domain.ErrAccountHasOperations,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "no same-currency candidate",
			deleteErr:  domain.ErrNoSameCurrencyAccount,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotDest string
			svc := &stubAccountService{
				deleteFunc: func(ctx context.Context, id, transferToID string) error {
					gotDest = transferToID
					return tt.deleteErr
				},
			}
			h := handler.NewAccountHandler(svc)

			var body *strings.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			} else {
				body = strings.NewReader("")
			}
			r := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/accounts/a1", body), "id", "a1")
			w := httptest.NewRecorder()

			h.Delete(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantDest, gotDest)
		})
	}
}

func TestAccountHandler_Reorder(t *testing.T) {
	var got []string
	svc := &stubAccountService{
		reorderFunc: func(ctx context.Context, orderedIDs []string) error {
			got = orderedIDs
			return nil
		},
	}
	h := handler.NewAccountHandler(svc)

	r := httptest.NewRequest(http.MethodPut, "/api/v1/accounts/reorder", strings.NewReader(`{"account_ids":["a2","a1"]}`))
	w := httptest.NewRecorder()

	h.Reorder(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"a2", "a1"}, got)
}
