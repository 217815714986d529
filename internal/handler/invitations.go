package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/billetera/billetera/internal/middleware"
	"github.com/billetera/billetera/internal/service"
)

// Invite creates a shared-expense invitation. The caller's verified email,
// resolved from the session token, becomes the sender address; the
// sender-side expense is recorded immediately.
func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	var req service.InviteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	callerEmail := middleware.GetEmail(r.Context())
	if callerEmail == "" {
		writeJSON(w, http.StatusForbidden, response{
			Success: false,
			Message: "caller identity has no email",
		})
		return
	}

	inv, err := h.invitations.Invite(r.Context(), middleware.GetUserID(r.Context()), callerEmail, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{
		Success: true,
		Message: "invitation sent",
		Data:    map[string]string{"invitation_id": inv.ID},
	})
}

// ListInvitations returns the caller's open invitations, resolved by the
// verified email on the session token.
func (h *Handler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	callerEmail := middleware.GetEmail(r.Context())
	if callerEmail == "" {
		writeJSON(w, http.StatusForbidden, response{
			Success: false,
			Message: "caller identity has no email",
		})
		return
	}

	invitations, err := h.invitations.ListPending(r.Context(), callerEmail)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Data: invitations})
}

type respondRequest struct {
	Action service.Action `json:"action"`
}

// RespondInvitation applies the caller's accept or decline to a pending
// invitation identified by the path.
func (h *Handler) RespondInvitation(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if !decodeBody(w, r, &req) {
		return
	}
	invitationID := mux.Vars(r)["invitationId"]

	ctx := r.Context()
	err := h.invitations.Respond(ctx, invitationID, middleware.GetUserID(ctx), middleware.GetEmail(ctx), req.Action)
	if err != nil {
		writeError(w, err)
		return
	}

	message := "invitation declined"
	if req.Action == service.ActionAccept {
		message = "shared expense accepted"
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: message})
}
