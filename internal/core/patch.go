package core

import "time"

// Patches carry partial updates: a nil field means "leave unchanged".
// Services validate the present fields and apply the whole patch
// atomically, so a rejected field leaves the stored record untouched.
type (
	UserPatch struct {
		Name     *string
		Email    *string
		Password *string
	}

	TransactionPatch struct {
		Amount      *Money
		Category    *string
		Description *string
	}

	BudgetPatch struct {
		Amount *Money
	}

	GoalPatch struct {
		Name          *string
		TargetAmount  *Money
		Deadline      *time.Time
		CurrentAmount *Money
	}
)

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil
}

func (p TransactionPatch) IsEmpty() bool {
	return p.Amount == nil && p.Category == nil && p.Description == nil
}

func (p BudgetPatch) IsEmpty() bool {
	return p.Amount == nil
}

func (p GoalPatch) IsEmpty() bool {
	return p.Name == nil && p.TargetAmount == nil && p.Deadline == nil && p.CurrentAmount == nil
}
