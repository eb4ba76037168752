package handler

import (
	"encoding/json"
	"net/http"

	"github.com/moneta-app/moneta/internal/adapter/http/dto"
	"github.com/moneta-app/moneta/internal/currency"
)

// ConvertHandler re-derives cross-currency transfer triples for clients
// editing one field at a time.
type ConvertHandler struct{}

// NewConvertHandler creates a new ConvertHandler.
func NewConvertHandler() *ConvertHandler {
	return &ConvertHandler{}
}

// Derive solves the (amount, rate, to_amount) triple after the named field
// was edited.
func (h *ConvertHandler) Derive(w http.ResponseWriter, r *http.Request) {
	var req dto.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var edited currency.Field
	switch req.Edited {
	case "amount":
		edited = currency.FieldAmount
	case "rate":
		edited = currency.FieldRate
	case "to_amount":
		edited = currency.FieldToAmount
	default:
		writeError(w, http.StatusBadRequest, "invalid edited field", "must be amount, rate, or to_amount")
		return
	}

	// A non-positive source amount cannot anchor a triple on any edit path.
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "invalid amount", "must be positive")
		return
	}

	leg, err := currency.DeriveThird(currency.Leg{
		Amount:   req.Amount,
		Rate:     req.Rate,
		ToAmount: req.ToAmount,
	}, edited, req.From, req.To)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to derive conversion", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConvertResponse{
		Amount:   leg.Amount,
		Rate:     leg.Rate,
		ToAmount: leg.ToAmount,
	})
}
