package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finman/internal/core"
	"finman/internal/storage"
)

// BudgetService manages the monthly spending caps. The store does not
// enforce one budget per (user, period); ByUserAndPeriod simply returns the
// first match.
type BudgetService struct {
	budgets      storage.BudgetStore
	transactions *TransactionService
}

func NewBudgetService(budgets storage.BudgetStore, transactions *TransactionService) *BudgetService {
	return &BudgetService{budgets: budgets, transactions: transactions}
}

func (s *BudgetService) Create(ctx context.Context, userID int64, amount core.Money, period core.Period) (*core.Budget, error) {
	b := core.Budget{
		UserID: userID,
		Amount: amount,
		Period: period,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.budgets.Save(ctx, &b)
	if err != nil {
		return nil, fmt.Errorf("save budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget set",
		"id", saved.ID,
		"user_id", saved.UserID,
		"amount_cents", saved.Amount.Cents,
		"period", saved.Period.String())

	return saved, nil
}

func (s *BudgetService) ByID(ctx context.Context, id int64) (*core.Budget, error) {
	return s.budgets.FindByID(ctx, id)
}

func (s *BudgetService) ByUserAndPeriod(ctx context.Context, userID int64, period core.Period) (*core.Budget, error) {
	list, err := s.budgets.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, b := range list {
		if b.Period == period {
			b := b
			return &b, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *BudgetService) ListByUser(ctx context.Context, userID int64) ([]core.Budget, error) {
	return s.budgets.FindByUser(ctx, userID)
}

func (s *BudgetService) Update(ctx context.Context, id int64, patch core.BudgetPatch) (bool, error) {
	if patch.Amount == nil {
		return false, nil
	}
	if err := patch.Amount.Validate(); err != nil {
		return false, err
	}
	b, err := s.budgets.FindByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find budget: %w", err)
	}

	b.Amount = *patch.Amount
	if _, err := s.budgets.Save(ctx, b); err != nil {
		return false, fmt.Errorf("save budget: %w", err)
	}
	slog.InfoContext(ctx, "Budget updated", "id", id, "amount_cents", b.Amount.Cents)
	return true, nil
}

func (s *BudgetService) Delete(ctx context.Context, id int64) (bool, error) {
	if _, err := s.budgets.FindByID(ctx, id); errors.Is(err, core.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("find budget: %w", err)
	}
	if err := s.budgets.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("delete budget: %w", err)
	}
	slog.InfoContext(ctx, "Budget deleted", "id", id)
	return true, nil
}

// IsExceeded reports whether the user's expenses within the period strictly
// exceed the configured cap. No budget for the period means not exceeded.
func (s *BudgetService) IsExceeded(ctx context.Context, userID int64, period core.Period) (bool, error) {
	b, err := s.ByUserAndPeriod(ctx, userID, period)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	expenses, err := s.transactions.TotalExpenses(ctx, userID, period.Start(), period.End())
	if err != nil {
		return false, err
	}
	return expenses.Cents > b.Amount.Cents, nil
}
