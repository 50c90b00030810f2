package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Category string
	Amount   Money
}

// PeriodSummary is a compact statistics view for a single period.
type PeriodSummary struct {
	Period         Period
	Income         Money
	Expenses       Money
	Balance        Money // lifetime balance, not scoped to the period
	ByCategory     []CategoryAmount
	BudgetExceeded bool
}
