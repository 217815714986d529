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

const expenseColumns = `expense_id, user_id, expense_name, expense_amount, expense_category,
	payment_method, installment_quantity, credit_card_id, is_shared, shared_with_email,
	original_creator_id, created_at, updated_at`

// CreateExpense inserts a new expense. IDs and timestamps are generated
// when unset; a caller-supplied ID is kept so the invitation accept flow
// can use a deterministic one.
func (s *SQLiteStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if e.CreatedAt == 0 {
		e.CreatedAt = now
	}
	if e.UpdatedAt == 0 {
		e.UpdatedAt = now
	}

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.Name, e.Amount, e.Category,
		e.PaymentMethod, e.Installments, e.CreditCardID, e.IsShared, e.SharedWithEmail,
		e.OriginalCreatorID, e.CreatedAt, e.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// ListExpenses returns the user's expenses, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, userID string, limit int) ([]*models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = ?
		ORDER BY created_at DESC, expense_id
	`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return s.queryExpenses(ctx, query, args...)
}

// ListExpensesByCard returns the user's credit expenses charged to cardID,
// newest first.
func (s *SQLiteStore) ListExpensesByCard(ctx context.Context, userID, cardID string) ([]*models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = ? AND credit_card_id = ? AND payment_method = ?
		ORDER BY created_at DESC, expense_id
	`
	return s.queryExpenses(ctx, query, userID, cardID, models.PaymentCredit)
}

// DeleteExpense removes the expense if it belongs to userID, returning the
// deleted row. The owner scoping means a user can never delete another
// user's copy of a shared expense.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE expense_id = ? AND user_id = ?
	`
	expenses, err := s.queryExpenses(ctx, query, expenseID, userID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, storage.ErrNotFound
	}

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE expense_id = ? AND user_id = ?",
		expenseID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, storage.ErrNotFound
	}

	return expenses[0], nil
}

func (s *SQLiteStore) queryExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

func scanExpense(rows *sql.Rows) (*models.Expense, error) {
	e := &models.Expense{}
	err := rows.Scan(
		&e.ID, &e.UserID, &e.Name, &e.Amount, &e.Category,
		&e.PaymentMethod, &e.Installments, &e.CreditCardID, &e.IsShared, &e.SharedWithEmail,
		&e.OriginalCreatorID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}
	return e, nil
}
