package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/billetera/billetera/internal/models"
	"github.com/billetera/billetera/internal/storage"
)

// CategoryTotal is one category's aggregated spend.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    string          `json:"total"`
	Count    int             `json:"count"`
}

// Summary aggregates a user's ledger for the dashboard. All figures are
// computed at read time with decimal arithmetic over the stored rows.
type Summary struct {
	TotalIncome   string          `json:"total_income"`
	TotalExpenses string          `json:"total_expenses"`
	Balance       string          `json:"balance"`
	ExpenseCount  int             `json:"expense_count"`
	IncomeCount   int             `json:"income_count"`
	ByCategory    []CategoryTotal `json:"by_category"`
}

// SummaryService computes dashboard aggregates.
type SummaryService struct {
	store storage.Store
}

// NewSummaryService creates a new SummaryService with the given storage
// backend.
func NewSummaryService(store storage.Store) *SummaryService {
	return &SummaryService{store: store}
}

// ForUser aggregates the user's complete ledger: income and expense
// totals, the resulting balance, and per-category expense totals.
func (s *SummaryService) ForUser(ctx context.Context, userID string) (*Summary, error) {
	expenses, err := s.store.ListExpenses(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	incomes, err := s.store.ListIncomes(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	expenseTotal := decimal.Zero
	byCategory := make(map[models.Category]*CategoryTotal)
	categorySums := make(map[models.Category]decimal.Decimal)
	for _, e := range expenses {
		d, err := decimal.NewFromString(e.Amount)
		if err != nil {
			return nil, err
		}
		expenseTotal = expenseTotal.Add(d)

		ct, ok := byCategory[e.Category]
		if !ok {
			ct = &CategoryTotal{Category: e.Category}
			byCategory[e.Category] = ct
		}
		ct.Count++
		categorySums[e.Category] = categorySums[e.Category].Add(d)
	}

	incomeTotal := decimal.Zero
	for _, in := range incomes {
		d, err := decimal.NewFromString(in.Amount)
		if err != nil {
			return nil, err
		}
		incomeTotal = incomeTotal.Add(d)
	}

	summary := &Summary{
		TotalIncome:   incomeTotal.String(),
		TotalExpenses: expenseTotal.String(),
		Balance:       incomeTotal.Sub(expenseTotal).String(),
		ExpenseCount:  len(expenses),
		IncomeCount:   len(incomes),
	}
	for cat, ct := range byCategory {
		ct.Total = categorySums[cat].String()
		summary.ByCategory = append(summary.ByCategory, *ct)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})

	return summary, nil
}
