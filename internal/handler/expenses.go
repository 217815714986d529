package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/billetera/billetera/internal/middleware"
	"github.com/billetera/billetera/internal/service"
)

// CreateExpense records a new expense for the authenticated user.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var in service.ExpenseInput
	if !decodeBody(w, r, &in) {
		return
	}

	expense, err := h.expenses.Create(r.Context(), middleware.GetUserID(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{
		Success: true,
		Message: "expense created",
		Data:    expense,
	})
}

// ListExpenses returns the authenticated user's recent expenses.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Data: expenses})
}

// DeleteExpense removes one of the authenticated user's expenses,
// identified by the expense_id query parameter.
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := r.URL.Query().Get("expense_id")
	if expenseID == "" {
		writeJSON(w, http.StatusBadRequest, response{
			Success: false,
			Message: "expense_id is required",
		})
		return
	}

	expense, err := h.expenses.Delete(r.Context(), middleware.GetUserID(r.Context()), expenseID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: "expense deleted",
		Data: map[string]string{
			"expense_id":   expense.ID,
			"expense_name": expense.Name,
		},
	})
}

// ExpensesByCard returns the total of the user's credit expenses on a card.
func (h *Handler) ExpensesByCard(w http.ResponseWriter, r *http.Request) {
	h.expensesByCard(w, r, false)
}

// ExpensesByCardDetails returns the total plus the individual rows.
func (h *Handler) ExpensesByCardDetails(w http.ResponseWriter, r *http.Request) {
	h.expensesByCard(w, r, true)
}

func (h *Handler) expensesByCard(w http.ResponseWriter, r *http.Request, detailed bool) {
	cardID := mux.Vars(r)["creditCardId"]

	result, err := h.expenses.ByCard(r.Context(), middleware.GetUserID(r.Context()), cardID, detailed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Data: result})
}

// Summary returns aggregated totals for the authenticated user's ledger.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary.ForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Data: summary})
}
