package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/billetera/billetera/internal/models"
	"github.com/billetera/billetera/internal/storage/sqlite"
)

func newExpenseFixture(t *testing.T) *ExpenseService {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewExpenseService(store)
}

func TestExpenseValidation(t *testing.T) {
	svc := newExpenseFixture(t)
	ctx := context.Background()

	valid := ExpenseInput{
		Name:          "Groceries",
		Amount:        "123.45",
		Category:      models.CategorySupermarket,
		PaymentMethod: models.PaymentDebit,
	}

	t.Run("valid input passes", func(t *testing.T) {
		e, err := svc.Create(ctx, "user-1", valid)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if e.ID == "" {
			t.Error("expected generated ID")
		}
	})

	tests := []struct {
		name   string
		mutate func(*ExpenseInput)
	}{
		{"empty name", func(in *ExpenseInput) { in.Name = "" }},
		{"name too long", func(in *ExpenseInput) {
			in.Name = strings.Repeat("x", models.MaxExpenseNameLen+1)
		}},
		{"empty amount", func(in *ExpenseInput) { in.Amount = "" }},
		{"non-numeric amount", func(in *ExpenseInput) { in.Amount = "a lot" }},
		{"negative amount", func(in *ExpenseInput) { in.Amount = "-1" }},
		{"unknown category", func(in *ExpenseInput) { in.Category = "Travel" }},
		{"unknown payment method", func(in *ExpenseInput) { in.PaymentMethod = "IOU" }},
		{"installments without credit", func(in *ExpenseInput) { in.Installments = 3 }},
		{"installments out of range", func(in *ExpenseInput) {
			in.PaymentMethod = models.PaymentCredit
			in.Installments = 49
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := svc.Create(ctx, "user-1", in)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	t.Run("installments accepted with credit", func(t *testing.T) {
		in := valid
		in.PaymentMethod = models.PaymentCredit
		in.Installments = 12
		in.CreditCardID = "card-1"
		if _, err := svc.Create(ctx, "user-1", in); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	})
}

func TestExpensesByCardTotals(t *testing.T) {
	svc := newExpenseFixture(t)
	ctx := context.Background()

	charges := []string{"100.10", "200.20", "0.03"}
	for _, amount := range charges {
		in := ExpenseInput{
			Name:          "Charge",
			Amount:        amount,
			Category:      models.CategoryFood,
			PaymentMethod: models.PaymentCredit,
			CreditCardID:  "card-1",
		}
		if _, err := svc.Create(ctx, "user-1", in); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	// A cash expense on the same card id must not count.
	if _, err := svc.Create(ctx, "user-1", ExpenseInput{
		Name:          "Cash thing",
		Amount:        "999",
		Category:      models.CategoryFood,
		PaymentMethod: models.PaymentCash,
		CreditCardID:  "card-1",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("summary total uses decimal arithmetic", func(t *testing.T) {
		result, err := svc.ByCard(ctx, "user-1", "card-1", false)
		if err != nil {
			t.Fatalf("ByCard failed: %v", err)
		}
		if result.TotalExpenses != "300.33" {
			t.Errorf("total = %s, want 300.33", result.TotalExpenses)
		}
		if result.ExpenseCount != 3 {
			t.Errorf("count = %d, want 3", result.ExpenseCount)
		}
		if result.Expenses != nil {
			t.Error("summary variant should omit rows")
		}
	})

	t.Run("details variant includes rows", func(t *testing.T) {
		result, err := svc.ByCard(ctx, "user-1", "card-1", true)
		if err != nil {
			t.Fatalf("ByCard failed: %v", err)
		}
		if len(result.Expenses) != 3 {
			t.Errorf("expected 3 rows, got %d", len(result.Expenses))
		}
	})

	t.Run("missing card id is a validation error", func(t *testing.T) {
		_, err := svc.ByCard(ctx, "user-1", "  ", false)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}
