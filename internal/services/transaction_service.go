package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finman/internal/core"
	"finman/internal/storage"
)

// TransactionService records income and expense movements and computes the
// aggregate statistics over them. Whether a userID references an existing
// user is the caller's concern, matching the store contract.
type TransactionService struct {
	transactions storage.TransactionStore
}

func NewTransactionService(transactions storage.TransactionStore) *TransactionService {
	return &TransactionService{transactions: transactions}
}

func (s *TransactionService) Create(ctx context.Context, userID int64, amount core.Money, category, description string, at time.Time, typ core.TransactionType) (*core.Transaction, error) {
	t := core.Transaction{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        at,
		Type:        typ,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.transactions.Save(ctx, &t)
	if err != nil {
		return nil, fmt.Errorf("save transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction recorded",
		"id", saved.ID,
		"user_id", saved.UserID,
		"amount_cents", saved.Amount.Cents,
		"category", saved.Category,
		"type", saved.Type)

	return saved, nil
}

func (s *TransactionService) ByID(ctx context.Context, id int64) (*core.Transaction, error) {
	return s.transactions.FindByID(ctx, id)
}

func (s *TransactionService) ListByUser(ctx context.Context, userID int64) ([]core.Transaction, error) {
	return s.transactions.FindByUser(ctx, userID)
}

// ListByUserInRange returns the user's transactions with timestamps inside
// [start, end], bounds inclusive.
func (s *TransactionService) ListByUserInRange(ctx context.Context, userID int64, start, end time.Time) ([]core.Transaction, error) {
	all, err := s.transactions.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]core.Transaction, 0, len(all))
	for _, t := range all {
		if !t.Date.Before(start) && !t.Date.After(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Update applies the patch in one write. An amount is applied whenever
// present, a category only when non-blank, a description whenever present
// (blank clears it).
func (s *TransactionService) Update(ctx context.Context, id int64, patch core.TransactionPatch) (bool, error) {
	t, err := s.transactions.FindByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find transaction: %w", err)
	}

	changed := false
	if patch.Amount != nil {
		t.Amount = *patch.Amount
		changed = true
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) != "" {
		t.Category = *patch.Category
		changed = true
	}
	if patch.Description != nil {
		t.Description = *patch.Description
		changed = true
	}
	if !changed {
		return false, nil
	}

	if _, err := s.transactions.Save(ctx, t); err != nil {
		return false, fmt.Errorf("save transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction updated", "id", id)
	return true, nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64) (bool, error) {
	if _, err := s.transactions.FindByID(ctx, id); errors.Is(err, core.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("find transaction: %w", err)
	}
	if err := s.transactions.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return true, nil
}

func (s *TransactionService) TotalIncome(ctx context.Context, userID int64, start, end time.Time) (core.Money, error) {
	return s.sumByType(ctx, userID, start, end, core.Income)
}

func (s *TransactionService) TotalExpenses(ctx context.Context, userID int64, start, end time.Time) (core.Money, error) {
	return s.sumByType(ctx, userID, start, end, core.Expense)
}

func (s *TransactionService) sumByType(ctx context.Context, userID int64, start, end time.Time, typ core.TransactionType) (core.Money, error) {
	list, err := s.ListByUserInRange(ctx, userID, start, end)
	if err != nil {
		return core.Money{}, err
	}
	var total core.Money
	for _, t := range list {
		if t.Type == typ {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// Balance is lifetime income minus lifetime expenses, not bounded by date.
func (s *TransactionService) Balance(ctx context.Context, userID int64) (core.Money, error) {
	all, err := s.transactions.FindByUser(ctx, userID)
	if err != nil {
		return core.Money{}, err
	}
	var balance core.Money
	for _, t := range all {
		switch t.Type {
		case core.Income:
			balance = balance.Add(t.Amount)
		case core.Expense:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance, nil
}

// ExpensesByCategory sums expense amounts within [start, end], keyed by
// category.
func (s *TransactionService) ExpensesByCategory(ctx context.Context, userID int64, start, end time.Time) (map[string]core.Money, error) {
	list, err := s.ListByUserInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	out := make(map[string]core.Money)
	for _, t := range list {
		if t.Type == core.Expense {
			out[t.Category] = out[t.Category].Add(t.Amount)
		}
	}
	return out, nil
}
