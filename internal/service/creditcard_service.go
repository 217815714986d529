package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/billetera/billetera/internal/models"
	"github.com/billetera/billetera/internal/storage"
)

// CreditCardInput is the caller-supplied data for a new card.
type CreditCardInput struct {
	Name string          `json:"card_name"`
	Type models.CardType `json:"card_type"`
}

func (in *CreditCardInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)

	if in.Name == "" {
		return fmt.Errorf("%w: card name is required", ErrValidation)
	}
	if len(in.Name) > models.MaxCardNameLen {
		return fmt.Errorf("%w: card name must not exceed %d characters", ErrValidation, models.MaxCardNameLen)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: invalid card type %q", ErrValidation, in.Type)
	}
	return nil
}

// CreditCardService manages a user's credit cards.
type CreditCardService struct {
	store storage.Store
}

// NewCreditCardService creates a new CreditCardService with the given
// storage backend.
func NewCreditCardService(store storage.Store) *CreditCardService {
	return &CreditCardService{store: store}
}

// Create validates and persists a new card owned by userID. Running totals
// start at "0".
func (s *CreditCardService) Create(ctx context.Context, userID string, in CreditCardInput) (*models.CreditCard, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	card := &models.CreditCard{
		UserID: userID,
		Name:   in.Name,
		Type:   in.Type,
	}

	if err := s.store.CreateCreditCard(ctx, card); err != nil {
		slog.Error("CreateCreditCard failed", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("Credit card created", "credit_card_id", card.ID, "user_id", userID)
	return card, nil
}

// List returns the user's most recent cards, newest first.
func (s *CreditCardService) List(ctx context.Context, userID string) ([]*models.CreditCard, error) {
	return s.store.ListCreditCards(ctx, userID, models.CardListLimit)
}

// Delete removes one of the user's cards.
func (s *CreditCardService) Delete(ctx context.Context, userID, cardID string) error {
	if err := s.store.DeleteCreditCard(ctx, userID, cardID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: credit card not found or not yours to delete", ErrNotFound)
		}
		return err
	}

	slog.Info("Credit card deleted", "credit_card_id", cardID, "user_id", userID)
	return nil
}
