// Package handler exposes the HTTP surface of the application. Every
// failure is converted here into exactly one structured JSON outcome; no
// request is retried and none is fatal to the process.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/billetera/billetera/internal/auth"
	"github.com/billetera/billetera/internal/middleware"
	"github.com/billetera/billetera/internal/service"
	"github.com/billetera/billetera/internal/storage"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	authenticator auth.Authenticator
	tokens        *auth.JWTManager
	expenses      *service.ExpenseService
	incomes       *service.IncomeService
	cards         *service.CreditCardService
	invitations   *service.InvitationService
	summary       *service.SummaryService
	store         storage.Store
}

// New creates a Handler with all of its collaborators.
func New(
	authenticator auth.Authenticator,
	tokens *auth.JWTManager,
	expenses *service.ExpenseService,
	incomes *service.IncomeService,
	cards *service.CreditCardService,
	invitations *service.InvitationService,
	summary *service.SummaryService,
	store storage.Store,
) *Handler {
	return &Handler{
		authenticator: authenticator,
		tokens:        tokens,
		expenses:      expenses,
		incomes:       incomes,
		cards:         cards,
		invitations:   invitations,
		summary:       summary,
		store:         store,
	}
}

// Router builds the full route table. Public routes: register, login and
// health. Everything under /api requires a valid Bearer token.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics, middleware.Logging)

	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequireAuth(h.tokens))

	api.HandleFunc("/expenses", h.CreateExpense).Methods(http.MethodPost)
	api.HandleFunc("/expenses", h.ListExpenses).Methods(http.MethodGet)
	api.HandleFunc("/expenses", h.DeleteExpense).Methods(http.MethodDelete)
	api.HandleFunc("/expenses/by-credit-card/{creditCardId}", h.ExpensesByCard).Methods(http.MethodGet)
	api.HandleFunc("/expenses/by-credit-card/{creditCardId}/details", h.ExpensesByCardDetails).Methods(http.MethodGet)

	api.HandleFunc("/credit-cards", h.CreateCreditCard).Methods(http.MethodPost)
	api.HandleFunc("/credit-cards", h.ListCreditCards).Methods(http.MethodGet)
	api.HandleFunc("/credit-cards", h.DeleteCreditCard).Methods(http.MethodDelete)

	api.HandleFunc("/incomes", h.CreateIncome).Methods(http.MethodPost)
	api.HandleFunc("/incomes", h.ListIncomes).Methods(http.MethodGet)
	api.HandleFunc("/incomes", h.DeleteIncome).Methods(http.MethodDelete)

	api.HandleFunc("/shared-expenses/invite", h.Invite).Methods(http.MethodPost)
	api.HandleFunc("/shared-expenses/invitations", h.ListInvitations).Methods(http.MethodGet)
	api.HandleFunc("/shared-expenses/invitations/{invitationId}", h.RespondInvitation).Methods(http.MethodPatch)

	api.HandleFunc("/summary", h.Summary).Methods(http.MethodGet)

	return r
}

// response is the envelope every endpoint answers with.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError classifies err into the error taxonomy and answers with the
// matching status. Unclassified errors become an opaque 500; their detail
// stays in the log.
func writeError(w http.ResponseWriter, err error) {
	var status int
	message := err.Error()

	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, auth.ErrWeakPassword):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrExpired):
		status = http.StatusGone
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailExists):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
		message = "internal server error"
		slog.Error("Request handling failed", "error", err)
	}

	writeJSON(w, status, response{Success: false, Message: message})
}

// decodeBody parses the request body into dst, rejecting unparseable JSON
// as a validation failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Success: false,
			Message: "invalid JSON body",
		})
		return false
	}
	return true
}

// Health verifies the process and its database are alive.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, response{
			Success: false,
			Message: "database unreachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: "ok"})
}
