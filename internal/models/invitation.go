package models

import "time"

// InvitationStatus is the lifecycle state of a shared-expense invitation.
type InvitationStatus string

// Invitation statuses. An invitation is created pending and transitions
// exactly once to one of the terminal states; no further transitions are
// permitted after that.
const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationExpired  InvitationStatus = "expired"
)

// InvitationTTL is how long an invitation stays open after creation.
const InvitationTTL = 7 * 24 * time.Hour

// ExpenseSnapshot is the expense data embedded in an invitation.
// It is a copy taken at invitation time, so later edits or deletion of the
// sender's own expense never change what the recipient was offered.
type ExpenseSnapshot struct {
	Name          string        `json:"expense_name"`
	Amount        string        `json:"expense_amount"`
	Category      Category      `json:"expense_category"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// SharedExpenseInvitation is a proposal from a sender to a recipient to
// mirror one expense into the recipient's ledger. It is addressed by email,
// not user ID: the recipient does not need to be registered when the
// invitation is created.
type SharedExpenseInvitation struct {
	// ID is the unique identifier for the invitation (UUID format).
	ID string `json:"invitation_id"`

	// SenderEmail and RecipientEmail address the two parties (lowercase).
	SenderEmail    string `json:"sender_email"`
	RecipientEmail string `json:"recipient_email"`

	// ExpenseData is the embedded snapshot of the shared expense.
	ExpenseData ExpenseSnapshot `json:"expense_data"`

	// Status is the stored lifecycle state. Callers must not read this as
	// the current state on its own: an abandoned pending invitation past
	// ExpiresAt is expired even if nothing has rewritten the stored value.
	// Use IsExpired alongside Status.
	Status InvitationStatus `json:"status"`

	// ExpiresAt is the Unix timestamp after which the invitation is inert.
	ExpiresAt int64 `json:"expires_at"`

	// AcceptedAt and DeclinedAt are Unix timestamps, zero when unset.
	// Exactly one is set once the invitation reaches accepted or declined.
	AcceptedAt int64 `json:"accepted_at,omitempty"`
	DeclinedAt int64 `json:"declined_at,omitempty"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// IsExpired reports whether the invitation deadline has passed at now.
// Every read and write path uses this predicate, so expiry is a derived
// view rather than something only the stored status can tell.
func (inv *SharedExpenseInvitation) IsExpired(now time.Time) bool {
	return now.Unix() >= inv.ExpiresAt
}

// Terminal reports whether the stored status permits no further transitions.
func (s InvitationStatus) Terminal() bool {
	return s == InvitationAccepted || s == InvitationDeclined || s == InvitationExpired
}
