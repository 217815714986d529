package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/billetera/billetera/internal/models"
	"github.com/billetera/billetera/internal/storage"
)

// CreateIncome inserts a new income entry.
func (s *SQLiteStore) CreateIncome(ctx context.Context, in *models.Income) error {
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if in.CreatedAt == 0 {
		in.CreatedAt = now
	}
	if in.UpdatedAt == 0 {
		in.UpdatedAt = now
	}

	query := `
		INSERT INTO incomes (income_id, user_id, income_amount, income_type, income_note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		in.ID, in.UserID, in.Amount, in.Type, in.Note, in.CreatedAt, in.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}

	return nil
}

// ListIncomes returns the user's incomes, newest first.
func (s *SQLiteStore) ListIncomes(ctx context.Context, userID string, limit int) ([]*models.Income, error) {
	query := `
		SELECT income_id, user_id, income_amount, income_type, income_note, created_at, updated_at
		FROM incomes
		WHERE user_id = ?
		ORDER BY created_at DESC, income_id
	`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	defer rows.Close()

	var incomes []*models.Income
	for rows.Next() {
		in := &models.Income{}
		if err := rows.Scan(&in.ID, &in.UserID, &in.Amount, &in.Type, &in.Note, &in.CreatedAt, &in.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incomes: %w", err)
	}

	return incomes, nil
}

// DeleteIncome removes the income if it belongs to userID.
func (s *SQLiteStore) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM incomes WHERE income_id = ? AND user_id = ?",
		incomeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}

	return nil
}
