// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/billetera/billetera/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")

// Store defines the interface for persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new user. Returns ErrDuplicate if the email
	// is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound if no
	// user matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns ErrNotFound if no user
	// matches.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateExpense persists a new expense. Returns ErrDuplicate if an
	// expense with the same ID already exists; the invitation accept flow
	// relies on this to stay idempotent.
	CreateExpense(ctx context.Context, e *models.Expense) error

	// ListExpenses returns the user's expenses, newest first, capped at
	// limit (no cap when limit <= 0).
	ListExpenses(ctx context.Context, userID string, limit int) ([]*models.Expense, error)

	// ListExpensesByCard returns the user's credit expenses charged to the
	// given card, newest first.
	ListExpensesByCard(ctx context.Context, userID, cardID string) ([]*models.Expense, error)

	// DeleteExpense removes the expense if it belongs to userID.
	// Returns ErrNotFound otherwise.
	DeleteExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error)

	// CreateIncome persists a new income entry.
	CreateIncome(ctx context.Context, in *models.Income) error

	// ListIncomes returns the user's incomes, newest first, capped at limit.
	ListIncomes(ctx context.Context, userID string, limit int) ([]*models.Income, error)

	// DeleteIncome removes the income if it belongs to userID.
	DeleteIncome(ctx context.Context, userID, incomeID string) error

	// CreateCreditCard persists a new card.
	CreateCreditCard(ctx context.Context, c *models.CreditCard) error

	// ListCreditCards returns the user's cards, newest first, capped at limit.
	ListCreditCards(ctx context.Context, userID string, limit int) ([]*models.CreditCard, error)

	// DeleteCreditCard removes the card if it belongs to userID.
	DeleteCreditCard(ctx context.Context, userID, cardID string) error

	// CreateInvitation persists a new invitation.
	CreateInvitation(ctx context.Context, inv *models.SharedExpenseInvitation) error

	// GetPendingInvitation retrieves an invitation by ID only if its stored
	// status is pending. Terminal invitations are ErrNotFound by design, so
	// a second respond can never observe one.
	GetPendingInvitation(ctx context.Context, id string) (*models.SharedExpenseInvitation, error)

	// ListPendingInvitations returns pending invitations addressed to the
	// recipient whose deadline is still ahead of now, newest first. Rows
	// whose stored status is pending but whose deadline has passed are
	// excluded without being rewritten.
	ListPendingInvitations(ctx context.Context, recipientEmail string, now time.Time) ([]*models.SharedExpenseInvitation, error)

	// TransitionInvitation atomically moves the invitation from pending to
	// the given terminal status, stamping accepted_at or declined_at as
	// appropriate. It reports false when no pending row matched, which is
	// the sole gate against concurrent double-transitions.
	TransitionInvitation(ctx context.Context, id string, to models.InvitationStatus, now time.Time) (bool, error)

	// MarkExpiredInvitations flips every pending invitation whose deadline
	// has passed to expired, returning how many rows changed. Used by the
	// background sweep; read paths never depend on it.
	MarkExpiredInvitations(ctx context.Context, now time.Time) (int64, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
