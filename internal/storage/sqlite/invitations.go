package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/billetera/billetera/internal/models"
	"github.com/billetera/billetera/internal/storage"
)

const invitationColumns = `invitation_id, sender_email, recipient_email, expense_name,
	expense_amount, expense_category, payment_method, status, expires_at,
	accepted_at, declined_at, created_at, updated_at`

// CreateInvitation inserts a new invitation in pending status.
func (s *SQLiteStore) CreateInvitation(ctx context.Context, inv *models.SharedExpenseInvitation) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.Status == "" {
		inv.Status = models.InvitationPending
	}
	now := time.Now().Unix()
	if inv.CreatedAt == 0 {
		inv.CreatedAt = now
	}
	if inv.UpdatedAt == 0 {
		inv.UpdatedAt = now
	}

	query := `
		INSERT INTO shared_expense_invitations (` + invitationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		inv.ID, inv.SenderEmail, inv.RecipientEmail, inv.ExpenseData.Name,
		inv.ExpenseData.Amount, inv.ExpenseData.Category, inv.ExpenseData.PaymentMethod, inv.Status, inv.ExpiresAt,
		inv.AcceptedAt, inv.DeclinedAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	return nil
}

// GetPendingInvitation retrieves an invitation by ID with stored status
// pending. An already-terminal invitation is reported as ErrNotFound; the
// respond flow relies on that so terminal invitations can never be acted
// on twice.
func (s *SQLiteStore) GetPendingInvitation(ctx context.Context, id string) (*models.SharedExpenseInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM shared_expense_invitations
		WHERE invitation_id = ? AND status = ?
	`

	inv, err := scanInvitation(s.db.QueryRowContext(ctx, query, id, models.InvitationPending))
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return inv, nil
}

// ListPendingInvitations returns pending invitations for the recipient
// whose deadline is still ahead of now, newest first. Past-expiry rows are
// filtered out without being rewritten; the background sweep converges
// their stored status separately.
func (s *SQLiteStore) ListPendingInvitations(ctx context.Context, recipientEmail string, now time.Time) ([]*models.SharedExpenseInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM shared_expense_invitations
		WHERE recipient_email = ? AND status = ? AND expires_at > ?
		ORDER BY created_at DESC, invitation_id
	`

	rows, err := s.db.QueryContext(ctx, query, recipientEmail, models.InvitationPending, now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*models.SharedExpenseInvitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invitations: %w", err)
	}

	return invitations, nil
}

// TransitionInvitation atomically moves the invitation from pending to the
// given terminal status. The conditional UPDATE is the only concurrency
// gate in the accept flow: of two simultaneous responds, exactly one can
// see a changed row.
func (s *SQLiteStore) TransitionInvitation(ctx context.Context, id string, to models.InvitationStatus, now time.Time) (bool, error) {
	if !to.Terminal() {
		return false, fmt.Errorf("invalid transition target %q", to)
	}

	var accepted, declined int64
	switch to {
	case models.InvitationAccepted:
		accepted = now.Unix()
	case models.InvitationDeclined:
		declined = now.Unix()
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE shared_expense_invitations
		SET status = ?, accepted_at = ?, declined_at = ?, updated_at = ?
		WHERE invitation_id = ? AND status = ?
	`, to, accepted, declined, now.Unix(), id, models.InvitationPending)
	if err != nil {
		return false, fmt.Errorf("failed to transition invitation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return n > 0, nil
}

// MarkExpiredInvitations flips every pending invitation past its deadline
// to expired, returning how many rows changed.
func (s *SQLiteStore) MarkExpiredInvitations(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE shared_expense_invitations
		SET status = ?, updated_at = ?
		WHERE status = ? AND expires_at <= ?
	`, models.InvitationExpired, now.Unix(), models.InvitationPending, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to mark expired invitations: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInvitation(row scanner) (*models.SharedExpenseInvitation, error) {
	inv := &models.SharedExpenseInvitation{}
	err := row.Scan(
		&inv.ID, &inv.SenderEmail, &inv.RecipientEmail, &inv.ExpenseData.Name,
		&inv.ExpenseData.Amount, &inv.ExpenseData.Category, &inv.ExpenseData.PaymentMethod, &inv.Status, &inv.ExpiresAt,
		&inv.AcceptedAt, &inv.DeclinedAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inv, nil
}
