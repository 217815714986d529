package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/billetera/billetera/internal/models"
	"github.com/billetera/billetera/internal/money"
	"github.com/billetera/billetera/internal/storage"
)

// ExpenseInput is the caller-supplied data for a new expense.
type ExpenseInput struct {
	Name          string               `json:"expense_name"`
	Amount        string               `json:"expense_amount"`
	Category      models.Category      `json:"expense_category"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Installments  int                  `json:"installment_quantity,omitempty"`
	CreditCardID  string               `json:"credit_card_id,omitempty"`
}

// validate normalizes and checks the input. Installments are only
// accepted together with Credit; they have no meaning otherwise.
func (in *ExpenseInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Amount = strings.TrimSpace(in.Amount)

	if in.Name == "" {
		return fmt.Errorf("%w: expense name is required", ErrValidation)
	}
	if len(in.Name) > models.MaxExpenseNameLen {
		return fmt.Errorf("%w: expense name must not exceed %d characters", ErrValidation, models.MaxExpenseNameLen)
	}
	if in.Amount == "" {
		return fmt.Errorf("%w: expense amount is required", ErrValidation)
	}
	if _, err := money.Parse(in.Amount); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: invalid expense category %q", ErrValidation, in.Category)
	}
	if !in.PaymentMethod.Valid() {
		return fmt.Errorf("%w: invalid payment method %q", ErrValidation, in.PaymentMethod)
	}
	if in.Installments != 0 {
		if in.PaymentMethod != models.PaymentCredit {
			return fmt.Errorf("%w: installments require the Credit payment method", ErrValidation)
		}
		if in.Installments < models.MinInstallments || in.Installments > models.MaxInstallments {
			return fmt.Errorf("%w: installments must be between %d and %d",
				ErrValidation, models.MinInstallments, models.MaxInstallments)
		}
	}
	return nil
}

// ExpenseService manages a user's expense ledger.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// Create validates and persists a new expense owned by userID.
func (s *ExpenseService) Create(ctx context.Context, userID string, in ExpenseInput) (*models.Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:        userID,
		Name:          in.Name,
		Amount:        in.Amount,
		Category:      in.Category,
		PaymentMethod: in.PaymentMethod,
		Installments:  in.Installments,
		CreditCardID:  in.CreditCardID,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("Expense created", "expense_id", expense.ID, "user_id", userID)
	return expense, nil
}

// List returns the user's most recent expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.store.ListExpenses(ctx, userID, models.ExpenseListLimit)
}

// Delete removes one of the user's expenses. Deleting a shared copy never
// touches the other party's copy; the rows are fully independent.
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	expense, err := s.store.DeleteExpense(ctx, userID, expenseID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: expense not found or not yours to delete", ErrNotFound)
		}
		return nil, err
	}

	slog.Info("Expense deleted", "expense_id", expenseID, "user_id", userID)
	return expense, nil
}

// CardExpenses summarizes the user's credit expenses charged to one card.
// The total is recomputed from the expense rows with decimal arithmetic,
// not read from the card's stored running total.
type CardExpenses struct {
	CreditCardID  string            `json:"credit_card_id"`
	TotalExpenses string            `json:"total_expenses"`
	ExpenseCount  int               `json:"expense_count"`
	Expenses      []*models.Expense `json:"expenses,omitempty"`
}

// ByCard aggregates the user's credit expenses for the given card.
// When detailed is true the individual rows are included.
func (s *ExpenseService) ByCard(ctx context.Context, userID, cardID string, detailed bool) (*CardExpenses, error) {
	if strings.TrimSpace(cardID) == "" {
		return nil, fmt.Errorf("%w: credit card id is required", ErrValidation)
	}

	expenses, err := s.store.ListExpensesByCard(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	amounts := make([]string, len(expenses))
	for i, e := range expenses {
		amounts[i] = e.Amount
	}
	total, err := money.Sum(amounts)
	if err != nil {
		return nil, err
	}

	result := &CardExpenses{
		CreditCardID:  cardID,
		TotalExpenses: total.String(),
		ExpenseCount:  len(expenses),
	}
	if detailed {
		result.Expenses = expenses
	}
	return result, nil
}
