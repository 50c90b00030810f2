package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"finman/internal/core"
)

func TestUserStoreSaveAssignsIDs(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		u, err := s.Save(ctx, &core.User{Name: "u", Email: "u@x.com", Password: "p"})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if u.ID == 0 {
			t.Fatal("expected assigned id")
		}
		if seen[u.ID] {
			t.Fatalf("id %d assigned twice", u.ID)
		}
		seen[u.ID] = true
	}
}

func TestUserStoreSaveNil(t *testing.T) {
	s := NewUserStore()
	if _, err := s.Save(context.Background(), nil); !errors.Is(err, core.ErrNilRecord) {
		t.Fatalf("want ErrNilRecord, got %v", err)
	}
}

func TestUserStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	saved, err := s.Save(ctx, &core.User{Name: "Alice", Email: "a@x.com", Password: "pw", Admin: true})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if *got != *saved {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, saved)
	}
}

func TestUserStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	saved, _ := s.Save(ctx, &core.User{Name: "Alice", Email: "a@x.com", Password: "pw"})

	// Mutating a returned record must not leak into the store.
	got, _ := s.FindByID(ctx, saved.ID)
	got.Name = "Mallory"
	again, _ := s.FindByID(ctx, saved.ID)
	if again.Name != "Alice" {
		t.Fatalf("store record mutated through returned reference: %q", again.Name)
	}
}

func TestUserStoreFindByEmail(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	if _, err := s.FindByEmail(ctx, "nobody@x.com"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	saved, _ := s.Save(ctx, &core.User{Name: "A", Email: "a@x.com", Password: "p"})
	got, err := s.FindByEmail(ctx, "a@x.com")
	if err != nil || got.ID != saved.ID {
		t.Fatalf("find by email: %v %v", got, err)
	}
}

func TestUserStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	saved, _ := s.Save(ctx, &core.User{Name: "A", Email: "a@x.com", Password: "p"})

	ok, err := s.Delete(ctx, 999)
	if err != nil || ok {
		t.Fatalf("delete of missing id should report false, got %v %v", ok, err)
	}
	all, _ := s.FindAll(ctx)
	if len(all) != 1 {
		t.Fatalf("store size changed by failed delete: %d", len(all))
	}

	ok, err = s.Delete(ctx, saved.ID)
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if _, err := s.FindByID(ctx, saved.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}

func TestUserStoreIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	first, _ := s.Save(ctx, &core.User{Name: "A", Email: "a@x.com", Password: "p"})
	if _, err := s.Delete(ctx, first.ID); err != nil {
		t.Fatal(err)
	}
	second, _ := s.Save(ctx, &core.User{Name: "B", Email: "b@x.com", Password: "p"})
	if second.ID == first.ID {
		t.Fatalf("id %d reused after delete", first.ID)
	}
}

func TestTransactionStoreFindByUser(t *testing.T) {
	ctx := context.Background()
	s := NewTransactionStore()
	now := time.Now()
	for _, userID := range []int64{1, 1, 2} {
		if _, err := s.Save(ctx, &core.Transaction{
			UserID: userID, Amount: core.Money{Cents: 100}, Category: "Food", Date: now, Type: core.Expense,
		}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	mine, err := s.FindByUser(ctx, 1)
	if err != nil {
		t.Fatalf("find by user: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("want 2 transactions for user 1, got %d", len(mine))
	}
	none, _ := s.FindByUser(ctx, 42)
	if len(none) != 0 {
		t.Fatalf("want no transactions for user 42, got %d", len(none))
	}
}

func TestTransactionStoreDeleteMissingIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := NewTransactionStore()
	if err := s.Delete(ctx, 7); err != nil {
		t.Fatalf("delete of missing id should be silent, got %v", err)
	}
}

func TestBudgetStoreSaveOverwritesByID(t *testing.T) {
	ctx := context.Background()
	s := NewBudgetStore()
	saved, _ := s.Save(ctx, &core.Budget{UserID: 1, Amount: core.Money{Cents: 1000}, Period: core.Period{Year: 2025, Month: time.August}})

	saved.Amount = core.Money{Cents: 2000}
	again, err := s.Save(ctx, saved)
	if err != nil {
		t.Fatalf("resave: %v", err)
	}
	if again.ID != saved.ID {
		t.Fatalf("resave must keep the id, got %d", again.ID)
	}
	all, _ := s.FindAll(ctx)
	if len(all) != 1 || all[0].Amount.Cents != 2000 {
		t.Fatalf("overwrite failed: %+v", all)
	}
}

func TestGoalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewGoalStore()
	deadline := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	saved, err := s.Save(ctx, &core.Goal{UserID: 3, Name: "Car", TargetAmount: core.Money{Cents: 500_000}, Deadline: deadline})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if *got != *saved {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, saved)
	}
}
