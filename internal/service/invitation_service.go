package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/billetera/billetera/internal/mail"
	"github.com/billetera/billetera/internal/models"
	"github.com/billetera/billetera/internal/storage"
)

// Action is what a recipient does with a pending invitation.
type Action string

// Recipient actions.
const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
)

// expenseNamespace seeds the deterministic ID of a recipient-side expense.
// Deriving the ID from the invitation ID makes a retried or concurrent
// accept hit the primary-key constraint instead of fanning out twice.
var expenseNamespace = uuid.MustParse("5f1c6c3e-9b1a-4a74-8e2a-6d1fbb0d43c7")

var invitationOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "billetera_invitation_outcomes_total",
		Help: "Invitation lifecycle events by outcome.",
	},
	[]string{"outcome"},
)

// InviteRequest is the caller-supplied data for a new invitation.
type InviteRequest struct {
	RecipientEmail string       `json:"recipient_email"`
	ExpenseData    ExpenseInput `json:"expense_data"`
}

// InvitationService runs the shared-expense invitation workflow: creation
// with immediate sender-side fan-out, pending listing, and the single
// pending -> terminal transition on accept/decline/expiry.
type InvitationService struct {
	store  storage.Store
	mailer mail.Sender

	// now is swappable in tests.
	now func() time.Time
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(store storage.Store, mailer mail.Sender) *InvitationService {
	return &InvitationService{store: store, mailer: mailer, now: time.Now}
}

// Invite creates an invitation from the authenticated sender to the
// recipient email. The sender's own Expense row is written immediately and
// stays in the sender's ledger whatever the recipient does later. The
// recipient does not have to be a registered user; the workflow is
// addressed by email until acceptance.
func (s *InvitationService) Invite(ctx context.Context, senderID, senderEmail string, req InviteRequest) (*models.SharedExpenseInvitation, error) {
	req.RecipientEmail = strings.ToLower(strings.TrimSpace(req.RecipientEmail))
	if req.RecipientEmail == "" {
		return nil, fmt.Errorf("%w: recipient email is required", ErrValidation)
	}
	if !strings.Contains(req.RecipientEmail, "@") {
		return nil, fmt.Errorf("%w: recipient email %q is not an email address", ErrValidation, req.RecipientEmail)
	}
	if err := req.ExpenseData.validate(); err != nil {
		return nil, err
	}

	// Sender-side fan-out happens first and unconditionally: the sender's
	// ledger reflects the expense whether or not the recipient responds.
	senderExpense := &models.Expense{
		UserID:        senderID,
		Name:          req.ExpenseData.Name,
		Amount:        req.ExpenseData.Amount,
		Category:      req.ExpenseData.Category,
		PaymentMethod: req.ExpenseData.PaymentMethod,
		Installments:  req.ExpenseData.Installments,
		CreditCardID:  req.ExpenseData.CreditCardID,
		IsShared:      true,
	}
	if err := s.store.CreateExpense(ctx, senderExpense); err != nil {
		slog.Error("Invite failed creating sender expense", "user_id", senderID, "error", err)
		return nil, err
	}

	now := s.now()
	inv := &models.SharedExpenseInvitation{
		SenderEmail:    strings.ToLower(senderEmail),
		RecipientEmail: req.RecipientEmail,
		ExpenseData: models.ExpenseSnapshot{
			Name:          req.ExpenseData.Name,
			Amount:        req.ExpenseData.Amount,
			Category:      req.ExpenseData.Category,
			PaymentMethod: req.ExpenseData.PaymentMethod,
		},
		Status:    models.InvitationPending,
		ExpiresAt: now.Add(models.InvitationTTL).Unix(),
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}
	if err := s.store.CreateInvitation(ctx, inv); err != nil {
		slog.Error("Invite failed creating invitation", "user_id", senderID, "error", err)
		return nil, err
	}

	s.mailer.SendInvitation(inv)
	invitationOutcomes.WithLabelValues("created").Inc()
	slog.Info("Invitation created",
		"invitation_id", inv.ID,
		"sender", inv.SenderEmail,
		"recipient", inv.RecipientEmail,
	)
	return inv, nil
}

// ListPending returns the recipient's open invitations, newest first.
// The result is a finite snapshot; invitations past their deadline never
// appear, regardless of their stored status.
func (s *InvitationService) ListPending(ctx context.Context, recipientEmail string) ([]*models.SharedExpenseInvitation, error) {
	now := s.now()
	invitations, err := s.store.ListPendingInvitations(ctx, strings.ToLower(recipientEmail), now)
	if err != nil {
		return nil, err
	}

	// The query already excludes past-expiry rows; the predicate is applied
	// again so every read path shares one definition of expired.
	open := invitations[:0]
	for _, inv := range invitations {
		if !inv.IsExpired(now) {
			open = append(open, inv)
		}
	}
	return open, nil
}

// Respond applies the recipient's accept or decline to a pending
// invitation. Terminal invitations are not found. An expired invitation
// fails with ErrExpired and its stored status is flipped to expired as a
// side effect of detection. Accepting fans out the recipient's independent
// Expense copy; declining writes nothing to the ledger.
func (s *InvitationService) Respond(ctx context.Context, invitationID, callerID, callerEmail string, action Action) error {
	if action != ActionAccept && action != ActionDecline {
		return fmt.Errorf("%w: invalid action %q, use %q or %q", ErrValidation, action, ActionAccept, ActionDecline)
	}

	inv, err := s.store.GetPendingInvitation(ctx, invitationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: invitation not found or already processed", ErrNotFound)
		}
		return err
	}

	if !strings.EqualFold(inv.RecipientEmail, callerEmail) {
		return fmt.Errorf("%w: invitation is addressed to someone else", ErrUnauthorized)
	}

	now := s.now()
	if inv.IsExpired(now) {
		if _, err := s.store.TransitionInvitation(ctx, invitationID, models.InvitationExpired, now); err != nil {
			slog.Error("Failed to persist expiry", "invitation_id", invitationID, "error", err)
		}
		invitationOutcomes.WithLabelValues("expired").Inc()
		return ErrExpired
	}

	if action == ActionDecline {
		ok, err := s.store.TransitionInvitation(ctx, invitationID, models.InvitationDeclined, now)
		if err != nil {
			return err
		}
		if !ok {
			// Another respond won the transition between our read and write.
			return fmt.Errorf("%w: invitation not found or already processed", ErrNotFound)
		}
		invitationOutcomes.WithLabelValues("declined").Inc()
		slog.Info("Invitation declined", "invitation_id", invitationID)
		return nil
	}

	// Accept: the conditional status update is the sole gate for the
	// fan-out write, so two simultaneous accepts cannot both get here with
	// a changed row.
	ok, err := s.store.TransitionInvitation(ctx, invitationID, models.InvitationAccepted, now)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: invitation not found or already processed", ErrNotFound)
	}

	recipientExpense := &models.Expense{
		ID:                uuid.NewSHA1(expenseNamespace, []byte(inv.ID)).String(),
		UserID:            callerID,
		Name:              inv.ExpenseData.Name,
		Amount:            inv.ExpenseData.Amount,
		Category:          inv.ExpenseData.Category,
		PaymentMethod:     inv.ExpenseData.PaymentMethod,
		IsShared:          true,
		SharedWithEmail:   inv.SenderEmail,
		OriginalCreatorID: inv.SenderEmail,
	}
	if err := s.store.CreateExpense(ctx, recipientExpense); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// A retry already created the copy; the accept stands.
			slog.Warn("Recipient expense already exists", "invitation_id", inv.ID)
		} else {
			slog.Error("Accept fan-out failed after status transition",
				"invitation_id", inv.ID, "error", err)
			return err
		}
	}

	invitationOutcomes.WithLabelValues("accepted").Inc()
	slog.Info("Invitation accepted",
		"invitation_id", inv.ID,
		"recipient_expense_id", recipientExpense.ID,
	)
	return nil
}
