// Package storage defines the ports implemented by the storage backends.
//
// Every implementation follows the same contract: Save assigns the next
// counter value when the record has no id and overwrites by id otherwise;
// ids are monotonic and never reused; a missing id is reported as
// core.ErrNotFound, never as a failure. Uniqueness rules (duplicate email,
// duplicate budget period) are the services' responsibility, not the
// store's.
package storage

import (
	"context"

	"finman/internal/core"
)

type (
	UserStore interface {
		Save(ctx context.Context, u *core.User) (*core.User, error)
		FindByID(ctx context.Context, id int64) (*core.User, error)
		FindByEmail(ctx context.Context, email string) (*core.User, error)
		FindAll(ctx context.Context) ([]core.User, error)
		// Delete reports whether a record was actually removed.
		Delete(ctx context.Context, id int64) (bool, error)
	}

	TransactionStore interface {
		Save(ctx context.Context, t *core.Transaction) (*core.Transaction, error)
		FindByID(ctx context.Context, id int64) (*core.Transaction, error)
		FindByUser(ctx context.Context, userID int64) ([]core.Transaction, error)
		FindAll(ctx context.Context) ([]core.Transaction, error)
		// Delete is a silent no-op on a missing id.
		Delete(ctx context.Context, id int64) error
	}

	BudgetStore interface {
		Save(ctx context.Context, b *core.Budget) (*core.Budget, error)
		FindByID(ctx context.Context, id int64) (*core.Budget, error)
		FindByUser(ctx context.Context, userID int64) ([]core.Budget, error)
		FindAll(ctx context.Context) ([]core.Budget, error)
		Delete(ctx context.Context, id int64) error
	}

	GoalStore interface {
		Save(ctx context.Context, g *core.Goal) (*core.Goal, error)
		FindByID(ctx context.Context, id int64) (*core.Goal, error)
		FindByUser(ctx context.Context, userID int64) ([]core.Goal, error)
		FindAll(ctx context.Context) ([]core.Goal, error)
		Delete(ctx context.Context, id int64) error
	}
)

// Stores bundles the four entity stores of one backend.
type Stores struct {
	Users        UserStore
	Transactions TransactionStore
	Budgets      BudgetStore
	Goals        GoalStore
}
