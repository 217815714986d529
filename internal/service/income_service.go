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

// IncomeInput is the caller-supplied data for a new income entry.
type IncomeInput struct {
	Amount string            `json:"income_amount"`
	Type   models.IncomeType `json:"income_type"`
	Note   string            `json:"income_note"`
}

func (in *IncomeInput) validate() error {
	in.Amount = strings.TrimSpace(in.Amount)
	in.Note = strings.TrimSpace(in.Note)

	if in.Amount == "" {
		return fmt.Errorf("%w: income amount is required", ErrValidation)
	}
	if _, err := money.ParsePositive(in.Amount); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: invalid income type %q", ErrValidation, in.Type)
	}
	if in.Note == "" {
		return fmt.Errorf("%w: income note is required", ErrValidation)
	}
	if len(in.Note) > models.MaxIncomeNoteLen {
		return fmt.Errorf("%w: income note must not exceed %d characters", ErrValidation, models.MaxIncomeNoteLen)
	}
	return nil
}

// IncomeService manages a user's income entries.
type IncomeService struct {
	store storage.Store
}

// NewIncomeService creates a new IncomeService with the given storage
// backend.
func NewIncomeService(store storage.Store) *IncomeService {
	return &IncomeService{store: store}
}

// Create validates and persists a new income entry owned by userID.
func (s *IncomeService) Create(ctx context.Context, userID string, in IncomeInput) (*models.Income, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	income := &models.Income{
		UserID: userID,
		Amount: in.Amount,
		Type:   in.Type,
		Note:   in.Note,
	}

	if err := s.store.CreateIncome(ctx, income); err != nil {
		slog.Error("CreateIncome failed", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("Income created", "income_id", income.ID, "user_id", userID)
	return income, nil
}

// List returns the user's most recent incomes, newest first.
func (s *IncomeService) List(ctx context.Context, userID string) ([]*models.Income, error) {
	return s.store.ListIncomes(ctx, userID, models.IncomeListLimit)
}

// Delete removes one of the user's income entries.
func (s *IncomeService) Delete(ctx context.Context, userID, incomeID string) error {
	if err := s.store.DeleteIncome(ctx, userID, incomeID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: income not found or not yours to delete", ErrNotFound)
		}
		return err
	}

	slog.Info("Income deleted", "income_id", incomeID, "user_id", userID)
	return nil
}
