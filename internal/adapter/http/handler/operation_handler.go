package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/adapter/http/dto"
	"github.com/moneta-app/moneta/internal/domain"
	"github.com/moneta-app/moneta/internal/infrastructure/metrics"
	"github.com/moneta-app/moneta/internal/usecase"
)

// LedgerService defines the behavior needed by OperationHandler.
type LedgerService interface {
	CreateOperation(ctx context.Context, input usecase.CreateOperationInput) (*domain.Operation, error)
	GetOperation(ctx context.Context, id string) (*domain.Operation, error)
	ListOperations(ctx context.Context, input usecase.ListOperationsInput) ([]*domain.Operation, error)
	UpdateOperation(ctx context.Context, id string, input usecase.UpdateOperationInput) (*domain.Operation, error)
	DeleteOperation(ctx context.Context, id string) error
	SplitOperation(ctx context.Context, id string, splitAmount decimal.Decimal, newCategoryID string) (*domain.Operation, error)
	SetAccountBalance(ctx context.Context, accountID string, target decimal.Decimal) error
	VerifyAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// OperationHandler handles operation-related HTTP requests.
type OperationHandler struct {
	ledgerUC LedgerService
	metrics  *metrics.Metrics
}

// NewOperationHandler creates a new OperationHandler.
func NewOperationHandler(ledgerUC LedgerService, m *metrics.Metrics) *OperationHandler {
	return &OperationHandler{ledgerUC: ledgerUC, metrics: m}
}

func (h *OperationHandler) fail(w http.ResponseWriter, err error, message string) {
	status := mapDomainError(err)
	if h.metrics != nil {
		h.metrics.LedgerErrors.WithLabelValues(errClass(status)).Inc()
	}
	writeError(w, status, message, err.Error())
}

// Create creates a new operation.
func (h *OperationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	op, err := h.ledgerUC.CreateOperation(r.Context(), req.ToUseCaseInput())
	if err != nil {
		h.fail(w, err, "failed to create operation")
		return
	}

	if h.metrics != nil {
		h.metrics.OperationsCreated.WithLabelValues(string(op.Kind)).Inc()
	}
	writeJSON(w, http.StatusCreated, dto.OperationFromDomain(op))
}

// Get retrieves an operation by ID.
func (h *OperationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	op, err := h.ledgerUC.GetOperation(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get operation", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OperationFromDomain(op))
}

// ListByAccount lists an account's operations, newest first. A from/to pair
// of YYYY-MM-DD query parameters narrows the listing to that date window
// instead, with the to day included.
func (h *OperationHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	from := parseDateQuery(r, "from")
	to := parseDateQuery(r, "to")
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}

	ops, err := h.ledgerUC.ListOperations(r.Context(), usecase.ListOperationsInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
		From:      from,
		To:        to,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list operations", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListOperationsResponse{
		Operations: dto.OperationsFromDomain(ops),
		Total:      int64(len(ops)),
	})
}

// Update edits an operation.
func (h *OperationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	op, err := h.ledgerUC.UpdateOperation(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		h.fail(w, err, "failed to update operation")
		return
	}

	writeJSON(w, http.StatusOK, dto.OperationFromDomain(op))
}

// Delete removes an operation and reverses its balance effect.
func (h *OperationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ledgerUC.DeleteOperation(r.Context(), id); err != nil {
		h.fail(w, err, "failed to delete operation")
		return
	}

	if h.metrics != nil {
		h.metrics.OperationsDeleted.Inc()
	}
	w.WriteHeader(http.StatusNoContent)
}

// Split carves a portion of an operation into a sibling under a different
// category. Returns the new sibling.
func (h *OperationHandler) Split(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.SplitOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sibling, err := h.ledgerUC.SplitOperation(r.Context(), id, req.Amount, req.CategoryID)
	if err != nil {
		h.fail(w, err, "failed to split operation")
		return
	}

	if h.metrics != nil {
		h.metrics.OperationsSplit.Inc()
	}
	writeJSON(w, http.StatusCreated, dto.OperationFromDomain(sibling))
}

// SetBalance sets an account's balance to a target value via an adjustment.
func (h *OperationHandler) SetBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	var req dto.SetBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.ledgerUC.SetAccountBalance(r.Context(), accountID, req.Balance); err != nil {
		h.fail(w, err, "failed to set balance")
		return
	}

	if h.metrics != nil {
		h.metrics.BalanceSets.Inc()
	}
	w.WriteHeader(http.StatusNoContent)
}

// Verify replays the account's full operation log and checks it against the
// stored balance. An inconsistent ledger is reported in the response body,
// not as a transport error.
func (h *OperationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	drift, err := h.ledgerUC.VerifyAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, domain.ErrInconsistentLedger) {
			if h.metrics != nil {
				h.metrics.LedgerErrors.WithLabelValues("inconsistent").Inc()
			}
			writeJSON(w, http.StatusOK, dto.VerifyResponse{
				AccountID:  accountID,
				Consistent: false,
				Drift:      drift,
			})
			return
		}
		writeError(w, mapDomainError(err), "ledger verification failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.VerifyResponse{
		AccountID:  accountID,
		Consistent: true,
		Drift:      drift,
	})
}
