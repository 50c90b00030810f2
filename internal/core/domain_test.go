package core

import (
	"testing"
	"time"
)

func TestUserValidate(t *testing.T) {
	good := User{Name: "Alice", Email: "a@x.com", Password: "secret"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		u    User
		want error
	}{
		{User{Name: "", Email: "a@x.com", Password: "p"}, ErrEmptyName},
		{User{Name: "  ", Email: "a@x.com", Password: "p"}, ErrEmptyName},
		{User{Name: "A", Email: "", Password: "p"}, ErrInvalidEmail},
		{User{Name: "A", Email: "no-at-sign", Password: "p"}, ErrInvalidEmail},
		{User{Name: "A", Email: "a@x.com", Password: ""}, ErrEmptyPassword},
		{User{Name: "A", Email: "a@x.com", Password: "   "}, ErrEmptyPassword},
	}
	for i, tc := range cases {
		if err := tc.u.Validate(); err != tc.want {
			t.Fatalf("case %d: want %v, got %v", i, tc.want, err)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	now := time.Now()
	good := Transaction{UserID: 1, Amount: Money{Cents: 100}, Category: "Food", Date: now, Type: Expense}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// Blank description is allowed.
	good.Description = ""
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok with blank description, got %v", err)
	}
	// Negative amounts are allowed, only zero is rejected.
	good.Amount = Money{Cents: -100}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok with negative amount, got %v", err)
	}

	cases := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{Amount: Money{Cents: 1}, Category: "c", Date: now, Type: Income}, ErrMissingUser},
		{Transaction{UserID: 1, Category: "c", Date: now, Type: Income}, ErrInvalidAmount},
		{Transaction{UserID: 1, Amount: Money{Cents: 1}, Category: " ", Date: now, Type: Income}, ErrEmptyCategory},
		{Transaction{UserID: 1, Amount: Money{Cents: 1}, Category: "c", Type: Income}, ErrZeroDate},
		{Transaction{UserID: 1, Amount: Money{Cents: 1}, Category: "c", Date: now, Type: "TRANSFER"}, ErrInvalidType},
	}
	for i, tc := range cases {
		if err := tc.tx.Validate(); err != tc.want {
			t.Fatalf("case %d: want %v, got %v", i, tc.want, err)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{UserID: 1, Amount: Money{Cents: 100_000}, Period: Period{Year: 2025, Month: time.August}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		b    Budget
		want error
	}{
		{Budget{Amount: Money{Cents: 1}, Period: Period{Year: 2025, Month: 1}}, ErrMissingUser},
		{Budget{UserID: 1, Amount: Money{Cents: 0}, Period: Period{Year: 2025, Month: 1}}, ErrInvalidAmount},
		{Budget{UserID: 1, Amount: Money{Cents: -1}, Period: Period{Year: 2025, Month: 1}}, ErrInvalidAmount},
		{Budget{UserID: 1, Amount: Money{Cents: 1}}, ErrInvalidPeriod},
	}
	for i, tc := range cases {
		if err := tc.b.Validate(); err != tc.want {
			t.Fatalf("case %d: want %v, got %v", i, tc.want, err)
		}
	}
}

func TestGoalValidate(t *testing.T) {
	deadline := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	good := Goal{UserID: 1, Name: "Vacation", TargetAmount: Money{Cents: 1000}, Deadline: deadline}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		g    Goal
		want error
	}{
		{Goal{Name: "n", TargetAmount: Money{Cents: 1}, Deadline: deadline}, ErrMissingUser},
		{Goal{UserID: 1, Name: "", TargetAmount: Money{Cents: 1}, Deadline: deadline}, ErrEmptyName},
		{Goal{UserID: 1, Name: "n", TargetAmount: Money{Cents: 0}, Deadline: deadline}, ErrInvalidAmount},
		{Goal{UserID: 1, Name: "n", TargetAmount: Money{Cents: 1}, CurrentAmount: Money{Cents: -1}, Deadline: deadline}, ErrInvalidAmount},
		{Goal{UserID: 1, Name: "n", TargetAmount: Money{Cents: 1}}, ErrZeroDate},
	}
	for i, tc := range cases {
		if err := tc.g.Validate(); err != tc.want {
			t.Fatalf("case %d: want %v, got %v", i, tc.want, err)
		}
	}
}

func TestPatchIsEmpty(t *testing.T) {
	if !(UserPatch{}).IsEmpty() || !(TransactionPatch{}).IsEmpty() ||
		!(BudgetPatch{}).IsEmpty() || !(GoalPatch{}).IsEmpty() {
		t.Fatal("zero patches should be empty")
	}
	name := "x"
	if (UserPatch{Name: &name}).IsEmpty() {
		t.Fatal("patch with a field set should not be empty")
	}
	amount := Money{Cents: 1}
	if (BudgetPatch{Amount: &amount}).IsEmpty() {
		t.Fatal("patch with a field set should not be empty")
	}
}
