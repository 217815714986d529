package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/billetera/billetera/internal/models"
	"github.com/billetera/billetera/internal/storage"
)

// CreateCreditCard inserts a new card. Running totals default to "0".
func (s *SQLiteStore) CreateCreditCard(ctx context.Context, c *models.CreditCard) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.ExpenseAmountCredit == "" {
		c.ExpenseAmountCredit = "0"
	}
	if c.PaymentAmount == "" {
		c.PaymentAmount = "0"
	}
	now := time.Now().Unix()
	if c.CreatedAt == 0 {
		c.CreatedAt = now
	}
	if c.UpdatedAt == 0 {
		c.UpdatedAt = now
	}

	query := `
		INSERT INTO credit_cards (credit_card_id, user_id, card_name, card_type,
			expense_amount_credit, payment_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Type,
		c.ExpenseAmountCredit, c.PaymentAmount, c.CreatedAt, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create credit card: %w", err)
	}

	return nil
}

// ListCreditCards returns the user's cards, newest first.
func (s *SQLiteStore) ListCreditCards(ctx context.Context, userID string, limit int) ([]*models.CreditCard, error) {
	query := `
		SELECT credit_card_id, user_id, card_name, card_type,
			expense_amount_credit, payment_amount, created_at, updated_at
		FROM credit_cards
		WHERE user_id = ?
		ORDER BY created_at DESC, credit_card_id
	`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.CreditCard
	for rows.Next() {
		c := &models.CreditCard{}
		err := rows.Scan(
			&c.ID, &c.UserID, &c.Name, &c.Type,
			&c.ExpenseAmountCredit, &c.PaymentAmount, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credit cards: %w", err)
	}

	return cards, nil
}

// DeleteCreditCard removes the card if it belongs to userID. Expenses
// referencing the card keep their credit_card_id; the reference is opaque,
// not a foreign key.
func (s *SQLiteStore) DeleteCreditCard(ctx context.Context, userID, cardID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM credit_cards WHERE credit_card_id = ? AND user_id = ?",
		cardID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete credit card: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}

	return nil
}
