package handler

import (
	"encoding/json"
	"net/http"

	"github.com/moneta-app/moneta/internal/adapter/http/dto"
	"github.com/moneta-app/moneta/internal/calc"
)

// CalcHandler evaluates calculator expressions typed into amount fields.
type CalcHandler struct{}

// NewCalcHandler creates a new CalcHandler.
func NewCalcHandler() *CalcHandler {
	return &CalcHandler{}
}

// Evaluate computes the expression with standard operator precedence.
func (h *CalcHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := calc.Evaluate(req.Expression)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to evaluate expression", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CalcResponse{Result: result})
}
