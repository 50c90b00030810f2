package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

type (
	TransactionType string

	User struct {
		ID       int64
		Name     string
		Email    string
		Password string
		Admin    bool
		Blocked  bool
	}

	Transaction struct {
		ID          int64
		UserID      int64
		Amount      Money
		Category    string
		Description string // free text, may be blank
		Date        time.Time
		Type        TransactionType
	}

	Budget struct {
		ID     int64
		UserID int64
		Amount Money
		Period Period
	}

	Goal struct {
		ID            int64
		UserID        int64
		Name          string
		TargetAmount  Money
		CurrentAmount Money
		Deadline      time.Time // date precision, midnight UTC
	}
)

var (
	ErrNotFound           = errors.New("not found")
	ErrNilRecord          = errors.New("record cannot be nil")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyName          = errors.New("empty name")
	ErrEmptyCategory      = errors.New("empty category")
	ErrEmptyPassword      = errors.New("empty password")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingUser        = errors.New("missing user id")
	ErrZeroDate           = errors.New("date cannot be zero")
	ErrPastDeadline       = errors.New("deadline is in the past")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidPeriod      = errors.New("invalid period")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.Password) == "" {
		return ErrEmptyPassword
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.UserID == 0 {
		return ErrMissingUser
	}
	if t.Amount.IsZero() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (b Budget) Validate() error {
	if b.UserID == 0 {
		return ErrMissingUser
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	return b.Period.Validate()
}

// Validate covers the static goal fields; whether the deadline is in the
// past is a service-level check against the current date.
func (g Goal) Validate() error {
	if g.UserID == 0 {
		return ErrMissingUser
	}
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if err := g.TargetAmount.Validate(); err != nil {
		return err
	}
	if g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if g.Deadline.IsZero() {
		return ErrZeroDate
	}
	return nil
}
