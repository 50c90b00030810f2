package core

import (
	"time"
)

// Period is a calendar year-month used to scope budgets and statistics.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// CurrentPeriod returns the period containing the current time.
func CurrentPeriod() Period {
	return PeriodOf(time.Now())
}

// ParsePeriod parses a period in "2006-01" form.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	return PeriodOf(t), nil
}

func (p Period) Validate() error {
	if p.Year <= 0 || p.Month < time.January || p.Month > time.December {
		return ErrInvalidPeriod
	}
	return nil
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Start returns the first instant of the period: day 1, 00:00:00.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last covered instant of the period: the last day of the
// month at 23:59:59.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0).Add(-time.Second)
}

// Contains reports whether t falls within the period bounds, inclusive.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start()) && !t.After(p.End())
}

func (p Period) String() string {
	return p.Start().Format("2006-01")
}
