package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/billetera/billetera/internal/mail"
	"github.com/billetera/billetera/internal/models"
	"github.com/billetera/billetera/internal/storage/sqlite"
)

func newInvitationFixture(t *testing.T) (*InvitationService, *ExpenseService, *sqlite.SQLiteStore) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewInvitationService(store, mail.NopSender{}), NewExpenseService(store), store
}

func pizzaRequest(recipient string) InviteRequest {
	return InviteRequest{
		RecipientEmail: recipient,
		ExpenseData: ExpenseInput{
			Name:          "Pizza",
			Amount:        "1000",
			Category:      models.CategoryDelivery,
			PaymentMethod: models.PaymentCash,
		},
	}
}

func TestInviteCreatesSenderExpenseImmediately(t *testing.T) {
	svc, expenses, _ := newInvitationFixture(t)
	ctx := context.Background()

	inv, err := svc.Invite(ctx, "user-a", "a@example.com", pizzaRequest("b@example.com"))
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	if inv.ID == "" {
		t.Fatal("expected invitation ID")
	}
	if inv.Status != models.InvitationPending {
		t.Errorf("status = %s, want pending", inv.Status)
	}

	// The sender's ledger reflects the expense before the recipient ever
	// responds.
	senderExpenses, err := expenses.List(ctx, "user-a")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(senderExpenses) != 1 {
		t.Fatalf("expected 1 sender expense, got %d", len(senderExpenses))
	}
	e := senderExpenses[0]
	if !e.IsShared {
		t.Error("sender expense should be marked shared")
	}
	if e.Name != "Pizza" || e.Amount != "1000" || e.Category != models.CategoryDelivery || e.PaymentMethod != models.PaymentCash {
		t.Errorf("sender expense fields mismatch: %+v", e)
	}
}

func TestInviteValidation(t *testing.T) {
	svc, _, _ := newInvitationFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  InviteRequest
	}{
		{"missing recipient", InviteRequest{ExpenseData: pizzaRequest("x@example.com").ExpenseData}},
		{"recipient not an address", func() InviteRequest {
			r := pizzaRequest("not-an-email")
			return r
		}()},
		{"bad category", func() InviteRequest {
			r := pizzaRequest("b@example.com")
			r.ExpenseData.Category = "Vacations"
			return r
		}()},
		{"bad payment method", func() InviteRequest {
			r := pizzaRequest("b@example.com")
			r.ExpenseData.PaymentMethod = "Barter"
			return r
		}()},
		{"negative amount", func() InviteRequest {
			r := pizzaRequest("b@example.com")
			r.ExpenseData.Amount = "-5"
			return r
		}()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Invite(ctx, "user-a", "a@example.com", tc.req)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestInviteToUnregisteredRecipientSucceeds(t *testing.T) {
	svc, _, _ := newInvitationFixture(t)

	// The workflow is email-addressed until acceptance; nobody checks the
	// recipient against the users table.
	_, err := svc.Invite(context.Background(), "user-a", "a@example.com", pizzaRequest("stranger@example.com"))
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
}

func TestAcceptFansOutRecipientExpense(t *testing.T) {
	svc, expenses, _ := newInvitationFixture(t)
	ctx := context.Background()

	inv, err := svc.Invite(ctx, "user-a", "a@example.com", pizzaRequest("b@example.com"))
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	if err := svc.Respond(ctx, inv.ID, "user-b", "b@example.com", ActionAccept); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	recipientExpenses, err := expenses.List(ctx, "user-b")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recipientExpenses) != 1 {
		t.Fatalf("expected exactly 1 recipient expense, got %d", len(recipientExpenses))
	}
	e := recipientExpenses[0]
	if e.Name != "Pizza" || e.Amount != "1000" || e.Category != models.CategoryDelivery || e.PaymentMethod != models.PaymentCash {
		t.Errorf("recipient expense fields mismatch: %+v", e)
	}
	if !e.IsShared {
		t.Error("recipient expense should be marked shared")
	}
	if e.SharedWithEmail != "a@example.com" {
		t.Errorf("shared_with_email = %s, want sender's email", e.SharedWithEmail)
	}
	if e.OriginalCreatorID != "a@example.com" {
		t.Errorf("original_creator_id = %s, want sender's email", e.OriginalCreatorID)
	}

	// The sender's copy and the recipient's copy are independent rows.
	senderExpenses, err := expenses.List(ctx, "user-a")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(senderExpenses) != 1 {
		t.Fatalf("expected 1 sender expense, got %d", len(senderExpenses))
	}
	if senderExpenses[0].ID == e.ID {
		t.Error("sender and recipient copies must have distinct IDs")
	}

	// The invitation reached accepted with the right timestamp pair.
	pending, err := svc.ListPending(ctx, "b@example.com")
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("accepted invitation should leave the pending list, got %d", len(pending))
	}
}

func TestDeclineCreatesNoExpense(t *testing.T) {
	svc, expenses, _ := newInvitationFixture(t)
	ctx := context.Background()

	inv, err := svc.Invite(ctx, "user-a", "a@example.com", pizzaRequest("b@example.com"))
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	if err := svc.Respond(ctx, inv.ID, "user-b", "b@example.com", ActionDecline); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	recipientExpenses, err := expenses.List(ctx, "user-b")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recipientExpenses) != 0 {
		t.Errorf("decline must not create expenses, got %d", len(recipientExpenses))
	}
}

func TestRespondOnTerminalInvitationIsNotFound(t *testing.T) {
	svc, expenses, _ := newInvitationFixture(t)
	ctx := context.Background()

	inv, err := svc.Invite(ctx, "user-a", "a@example.com", pizzaRequest("b@example.com"))
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	if err := svc.Respond(ctx, inv.ID, "user-b", "b@example.com", ActionAccept); err != nil {
		t.Fatalf("first Respond failed: %v", err)
	}

	for _, action := range []Action{ActionAccept, ActionDecline} {
		if err := svc.Respond(ctx, inv.ID, "user-b", "b@example.com", action); !errors.Is(err, ErrNotFound) {
			t.Errorf("Respond(%s) on terminal invitation: expected ErrNotFound, got %v", action, err)
		}
	}

	// No second fan-out happened.
	recipientExpenses, err := expenses.List(ctx, "user-b")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recipientExpenses) != 1 {
		t.Errorf("expected exactly 1 recipient expense after retries, got %d", len(recipientExpenses))
	}
}

func TestRespondByWrongRecipientIsUnauthorized(t *testing.T) {
	svc, expenses, _ := newInvitationFixture(t)
	ctx := context.Background()

	inv, err := svc.Invite(ctx, "user-a", "a@example.com", pizzaRequest("b@example.com"))
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	err = svc.Respond(ctx, inv.ID, "user-c", "c@example.com", ActionAccept)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// The invitation stays pending and nothing was fanned out.
	pending, err := svc.ListPending(ctx, "b@example.com")
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("expected invitation to remain pending, got %d", len(pending))
	}
	intruderExpenses, err := expenses.List(ctx, "user-c")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(intruderExpenses) != 0 {
		t.Errorf("unauthorized respond must not fan out, got %d", len(intruderExpenses))
	}
}

func TestRespondUnknownInvitation(t *testing.T) {
	svc, _, _ := newInvitationFixture(t)

	err := svc.Respond(context.Background(), "no-such-id", "user-b", "b@example.com", ActionAccept)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRespondInvalidAction(t *testing.T) {
	svc, _, _ := newInvitationFixture(t)

	err := svc.Respond(context.Background(), "any", "user-b", "b@example.com", "maybe")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestExpiredInvitationIsInert(t *testing.T) {
	svc, expenses, store := newInvitationFixture(t)
	ctx := context.Background()

	// Create at a fixed time, then move the clock one second past the
	// deadline. The stored status stays pending until someone acts.
	created := time.Now()
	svc.now = func() time.Time { return created }
	inv, err := svc.Invite(ctx, "user-a", "a@example.com", pizzaRequest("b@example.com"))
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	svc.now = func() time.Time { return created.Add(models.InvitationTTL + time.Second) }

	t.Run("listPending hides it without rewriting status", func(t *testing.T) {
		pending, err := svc.ListPending(ctx, "b@example.com")
		if err != nil {
			t.Fatalf("ListPending failed: %v", err)
		}
		if len(pending) != 0 {
			t.Fatalf("expected empty pending list, got %d", len(pending))
		}

		// Stored status still reads pending: the read path never mutates.
		stored, err := store.GetPendingInvitation(ctx, inv.ID)
		if err != nil {
			t.Fatalf("stored invitation should still be pending: %v", err)
		}
		if stored.Status != models.InvitationPending {
			t.Errorf("stored status = %s, want pending", stored.Status)
		}
	})

	t.Run("respond fails with Expired and flips stored status", func(t *testing.T) {
		err := svc.Respond(ctx, inv.ID, "user-b", "b@example.com", ActionAccept)
		if !errors.Is(err, ErrExpired) {
			t.Fatalf("expected ErrExpired, got %v", err)
		}

		// Detection rewrote the stored status, so the row is now terminal.
		if err := svc.Respond(ctx, inv.ID, "user-b", "b@example.com", ActionDecline); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after expiry transition, got %v", err)
		}

		// No recipient expense was created on the way.
		recipientExpenses, err := expenses.List(ctx, "user-b")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(recipientExpenses) != 0 {
			t.Errorf("expired accept must not fan out, got %d expenses", len(recipientExpenses))
		}
	})
}

func TestListPendingNewestFirst(t *testing.T) {
	svc, _, _ := newInvitationFixture(t)
	ctx := context.Background()

	base := time.Now()
	for i, name := range []string{"First", "Second", "Third"} {
		created := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return created }
		req := pizzaRequest("b@example.com")
		req.ExpenseData.Name = name
		if _, err := svc.Invite(ctx, "user-a", "a@example.com", req); err != nil {
			t.Fatalf("Invite failed: %v", err)
		}
	}

	svc.now = func() time.Time { return base.Add(time.Hour) }
	pending, err := svc.ListPending(ctx, "b@example.com")
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 invitations, got %d", len(pending))
	}
	if pending[0].ExpenseData.Name != "Third" || pending[2].ExpenseData.Name != "First" {
		t.Errorf("expected newest first, got %s .. %s", pending[0].ExpenseData.Name, pending[2].ExpenseData.Name)
	}
}

func TestListPendingMatchesExactRecipient(t *testing.T) {
	svc, _, _ := newInvitationFixture(t)
	ctx := context.Background()

	if _, err := svc.Invite(ctx, "user-a", "a@example.com", pizzaRequest("b@example.com")); err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	pending, err := svc.ListPending(ctx, "c@example.com")
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no invitations for other recipient, got %d", len(pending))
	}
}

func TestSnapshotIsIndependentOfSenderLedger(t *testing.T) {
	svc, expenses, _ := newInvitationFixture(t)
	ctx := context.Background()

	inv, err := svc.Invite(ctx, "user-a", "a@example.com", pizzaRequest("b@example.com"))
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	// Delete the sender's copy; the invitation snapshot must not care.
	senderExpenses, err := expenses.List(ctx, "user-a")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if _, err := expenses.Delete(ctx, "user-a", senderExpenses[0].ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if err := svc.Respond(ctx, inv.ID, "user-b", "b@example.com", ActionAccept); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	recipientExpenses, err := expenses.List(ctx, "user-b")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recipientExpenses) != 1 || recipientExpenses[0].Name != "Pizza" {
		t.Errorf("recipient copy should come from the snapshot, got %+v", recipientExpenses)
	}

	// And deleting the sender's copy earlier never touched the recipient's.
	if len(recipientExpenses) == 1 {
		senderAfter, err := expenses.List(ctx, "user-a")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(senderAfter) != 0 {
			t.Errorf("sender ledger should be empty after delete, got %d", len(senderAfter))
		}
	}
}
