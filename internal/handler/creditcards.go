package handler

import (
	"net/http"

	"github.com/billetera/billetera/internal/middleware"
	"github.com/billetera/billetera/internal/service"
)

// CreateCreditCard records a new card for the authenticated user.
func (h *Handler) CreateCreditCard(w http.ResponseWriter, r *http.Request) {
	var in service.CreditCardInput
	if !decodeBody(w, r, &in) {
		return
	}

	card, err := h.cards.Create(r.Context(), middleware.GetUserID(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{
		Success: true,
		Message: "credit card created",
		Data:    card,
	})
}

// ListCreditCards returns the authenticated user's cards.
func (h *Handler) ListCreditCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Data: cards})
}

// DeleteCreditCard removes one of the authenticated user's cards,
// identified by the credit_card_id query parameter.
func (h *Handler) DeleteCreditCard(w http.ResponseWriter, r *http.Request) {
	cardID := r.URL.Query().Get("credit_card_id")
	if cardID == "" {
		writeJSON(w, http.StatusBadRequest, response{
			Success: false,
			Message: "credit_card_id is required",
		})
		return
	}

	if err := h.cards.Delete(r.Context(), middleware.GetUserID(r.Context()), cardID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Message: "credit card deleted"})
}
