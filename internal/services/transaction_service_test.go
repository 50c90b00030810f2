package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"finman/internal/core"
	"finman/internal/storage/memory"
)

func cents(n int64) core.Money { return core.Money{Cents: n} }

func moneyPtr(n int64) *core.Money { m := cents(n); return &m }

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(memory.NewTransactionStore())
	now := time.Now()

	tx, err := svc.Create(ctx, 1, cents(30000), "Salary", "August", now, core.Income)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.ID == 0 {
		t.Fatal("expected assigned id")
	}

	cases := []struct {
		userID int64
		amount core.Money
		cat    string
		at     time.Time
		typ    core.TransactionType
		want   error
	}{
		{0, cents(100), "Food", now, core.Expense, core.ErrMissingUser},
		{1, cents(0), "Food", now, core.Expense, core.ErrInvalidAmount},
		{1, cents(100), "", now, core.Expense, core.ErrEmptyCategory},
		{1, cents(100), "Food", time.Time{}, core.Expense, core.ErrZeroDate},
		{1, cents(100), "Food", now, "WIRE", core.ErrInvalidType},
	}
	for i, tc := range cases {
		if _, err := svc.Create(ctx, tc.userID, tc.amount, tc.cat, "", tc.at, tc.typ); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: want %v, got %v", i, tc.want, err)
		}
	}
}

func TestListByUserInRange(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(memory.NewTransactionStore())

	day := func(d int) time.Time { return time.Date(2025, 8, d, 12, 0, 0, 0, time.UTC) }
	for _, d := range []int{1, 10, 20, 31} {
		if _, err := svc.Create(ctx, 1, cents(100), "Food", "", day(d), core.Expense); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	// Inclusive bounds on both ends.
	list, err := svc.ListByUserInRange(ctx, 1, day(10), day(20))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("want 2 transactions in range, got %d", len(list))
	}

	all, _ := svc.ListByUserInRange(ctx, 1, day(1), day(31))
	if len(all) != 4 {
		t.Fatalf("want all 4, got %d", len(all))
	}
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(memory.NewTransactionStore())
	tx, _ := svc.Create(ctx, 1, cents(100), "Food", "lunch", time.Now(), core.Expense)

	t.Run("partial", func(t *testing.T) {
		changed, err := svc.Update(ctx, tx.ID, core.TransactionPatch{Amount: moneyPtr(250)})
		if err != nil || !changed {
			t.Fatalf("update: changed=%v err=%v", changed, err)
		}
		got, _ := svc.ByID(ctx, tx.ID)
		if got.Amount.Cents != 250 || got.Category != "Food" || got.Description != "lunch" {
			t.Fatalf("unexpected record: %+v", got)
		}
	})

	t.Run("blank description is applied", func(t *testing.T) {
		changed, err := svc.Update(ctx, tx.ID, core.TransactionPatch{Description: strPtr("")})
		if err != nil || !changed {
			t.Fatalf("update: changed=%v err=%v", changed, err)
		}
		got, _ := svc.ByID(ctx, tx.ID)
		if got.Description != "" {
			t.Fatalf("description should be cleared, got %q", got.Description)
		}
	})

	t.Run("blank category is skipped", func(t *testing.T) {
		changed, err := svc.Update(ctx, tx.ID, core.TransactionPatch{Category: strPtr("  ")})
		if err != nil || changed {
			t.Fatalf("want no change, got changed=%v err=%v", changed, err)
		}
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		before, _ := svc.ByID(ctx, tx.ID)
		changed, err := svc.Update(ctx, tx.ID, core.TransactionPatch{})
		if err != nil || changed {
			t.Fatalf("want no change, got changed=%v err=%v", changed, err)
		}
		after, _ := svc.ByID(ctx, tx.ID)
		if *after != *before {
			t.Fatal("record modified by empty patch")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		changed, err := svc.Update(ctx, 999, core.TransactionPatch{Amount: moneyPtr(1)})
		if err != nil || changed {
			t.Fatalf("want no change for missing id, got changed=%v err=%v", changed, err)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(memory.NewTransactionStore())
	tx, _ := svc.Create(ctx, 1, cents(100), "Food", "", time.Now(), core.Expense)

	if ok, err := svc.Delete(ctx, 999); err != nil || ok {
		t.Fatalf("delete of missing id should report failure, got %v %v", ok, err)
	}
	if ok, err := svc.Delete(ctx, tx.ID); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if _, err := svc.ByID(ctx, tx.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(memory.NewTransactionStore())
	at := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)

	// The canonical scenario: +300 income, 100 Food, 200 Transport.
	mustCreate := func(amount int64, cat string, typ core.TransactionType) {
		t.Helper()
		if _, err := svc.Create(ctx, 1, cents(amount), cat, "", at, typ); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	mustCreate(300, "Salary", core.Income)
	mustCreate(100, "Food", core.Expense)
	mustCreate(200, "Transport", core.Expense)

	period := core.PeriodOf(at)
	income, err := svc.TotalIncome(ctx, 1, period.Start(), period.End())
	if err != nil || income.Cents != 300 {
		t.Fatalf("income: want 300, got %d (%v)", income.Cents, err)
	}
	expenses, err := svc.TotalExpenses(ctx, 1, period.Start(), period.End())
	if err != nil || expenses.Cents != 300 {
		t.Fatalf("expenses: want 300, got %d (%v)", expenses.Cents, err)
	}

	byCat, err := svc.ExpensesByCategory(ctx, 1, period.Start(), period.End())
	if err != nil {
		t.Fatalf("by category: %v", err)
	}
	if len(byCat) != 2 || byCat["Food"].Cents != 100 || byCat["Transport"].Cents != 200 {
		t.Fatalf("unexpected grouping: %v", byCat)
	}

	balance, err := svc.Balance(ctx, 1)
	if err != nil || balance.Cents != 0 {
		t.Fatalf("balance: want 0, got %d (%v)", balance.Cents, err)
	}
}

func TestBalanceMatchesLifetimeTotals(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(memory.NewTransactionStore())

	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 31, 23, 0, 0, 0, time.UTC),
	}
	amounts := []int64{5000, 1200, 700}
	types := []core.TransactionType{core.Income, core.Expense, core.Expense}
	for i := range dates {
		if _, err := svc.Create(ctx, 1, cents(amounts[i]), "c", "", dates[i], types[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	wide := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	income, _ := svc.TotalIncome(ctx, 1, wide, end)
	expenses, _ := svc.TotalExpenses(ctx, 1, wide, end)
	balance, _ := svc.Balance(ctx, 1)
	if balance != income.Sub(expenses) {
		t.Fatalf("balance %d != income %d - expenses %d", balance.Cents, income.Cents, expenses.Cents)
	}
}

func TestStatisticsIgnoreOtherUsers(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(memory.NewTransactionStore())
	at := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Create(ctx, 1, cents(100), "Food", "", at, core.Expense); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, 2, cents(900), "Food", "", at, core.Expense); err != nil {
		t.Fatal(err)
	}

	period := core.PeriodOf(at)
	expenses, _ := svc.TotalExpenses(ctx, 1, period.Start(), period.End())
	if expenses.Cents != 100 {
		t.Fatalf("expenses leaked across users: %d", expenses.Cents)
	}
}
