package handler

import (
	"net/http"

	"github.com/billetera/billetera/internal/middleware"
	"github.com/billetera/billetera/internal/service"
)

// CreateIncome records a new income entry for the authenticated user.
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var in service.IncomeInput
	if !decodeBody(w, r, &in) {
		return
	}

	income, err := h.incomes.Create(r.Context(), middleware.GetUserID(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{
		Success: true,
		Message: "income created",
		Data:    income,
	})
}

// ListIncomes returns the authenticated user's recent incomes.
func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	incomes, err := h.incomes.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Data: incomes})
}

// DeleteIncome removes one of the authenticated user's income entries,
// identified by the income_id query parameter.
func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	incomeID := r.URL.Query().Get("income_id")
	if incomeID == "" {
		writeJSON(w, http.StatusBadRequest, response{
			Success: false,
			Message: "income_id is required",
		})
		return
	}

	if err := h.incomes.Delete(r.Context(), middleware.GetUserID(r.Context()), incomeID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Message: "income deleted"})
}
