package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/moneta-app/moneta/internal/adapter/http/dto"
	"github.com/moneta-app/moneta/internal/infrastructure/metrics"
	"github.com/moneta-app/moneta/internal/usecase"
)

// HistoryService defines the behavior needed by HistoryHandler.
type HistoryService interface {
	BuildHistory(ctx context.Context, input usecase.BuildHistoryInput) (*usecase.History, error)
}

// HistoryHandler handles balance-history HTTP requests.
type HistoryHandler struct {
	historyUC HistoryService
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyUC HistoryService, m *metrics.Metrics) *HistoryHandler {
	return &HistoryHandler{
		historyUC: historyUC,
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Get rebuilds the balance series for one account and month. Year and month
// default to the current month; the forecast appears only when the requested
// month is the current one.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	now := h.now()
	year := parseIntQuery(r, "year", now.Year())
	month := parseIntQuery(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid month", "month must be 1..12")
		return
	}

	isCurrent := year == now.Year() && time.Month(month) == now.Month()

	start := time.Now()
	history, err := h.historyUC.BuildHistory(r.Context(), usecase.BuildHistoryInput{
		AccountID:      accountID,
		Year:           year,
		Month:          time.Month(month),
		IsCurrentMonth: isCurrent,
		AsOf:           now,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build history", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.HistoryBuilds.Inc()
		h.metrics.HistoryDuration.Observe(time.Since(start).Seconds())
	}

	writeJSON(w, http.StatusOK, dto.HistoryResponse{History: history})
}
