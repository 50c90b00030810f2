// Package memory is the in-memory storage backend: one map plus a
// monotonic id counter per entity. State lives for the process lifetime
// only.
package memory

import (
	"context"
	"sync"

	"finman/internal/core"
	"finman/internal/storage"
)

// Ensure interface conformance
var (
	_ storage.UserStore        = (*UserStore)(nil)
	_ storage.TransactionStore = (*TransactionStore)(nil)
	_ storage.BudgetStore      = (*BudgetStore)(nil)
	_ storage.GoalStore        = (*GoalStore)(nil)
)

// NewStores returns a fresh in-memory backend.
func NewStores() storage.Stores {
	return storage.Stores{
		Users:        NewUserStore(),
		Transactions: NewTransactionStore(),
		Budgets:      NewBudgetStore(),
		Goals:        NewGoalStore(),
	}
}

type UserStore struct {
	mu      sync.Mutex
	records map[int64]core.User
	lastID  int64
}

func NewUserStore() *UserStore {
	return &UserStore{records: make(map[int64]core.User)}
}

func (s *UserStore) Save(_ context.Context, u *core.User) (*core.User, error) {
	if u == nil {
		return nil, core.ErrNilRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := *u
	if rec.ID == 0 {
		s.lastID++
		rec.ID = s.lastID
	}
	s.records[rec.ID] = rec
	return &rec, nil
}

func (s *UserStore) FindByID(_ context.Context, id int64) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &rec, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.Email == email {
			rec := rec
			return &rec, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *UserStore) FindAll(_ context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.User, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out, nil
}

func (s *UserStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return false, nil
	}
	delete(s.records, id)
	return true, nil
}

type TransactionStore struct {
	mu      sync.Mutex
	records map[int64]core.Transaction
	lastID  int64
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{records: make(map[int64]core.Transaction)}
}

func (s *TransactionStore) Save(_ context.Context, t *core.Transaction) (*core.Transaction, error) {
	if t == nil {
		return nil, core.ErrNilRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := *t
	if rec.ID == 0 {
		s.lastID++
		rec.ID = s.lastID
	}
	s.records[rec.ID] = rec
	return &rec, nil
}

func (s *TransactionStore) FindByID(_ context.Context, id int64) (*core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &rec, nil
}

func (s *TransactionStore) FindByUser(_ context.Context, userID int64) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, rec := range s.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *TransactionStore) FindAll(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out, nil
}

func (s *TransactionStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

type BudgetStore struct {
	mu      sync.Mutex
	records map[int64]core.Budget
	lastID  int64
}

func NewBudgetStore() *BudgetStore {
	return &BudgetStore{records: make(map[int64]core.Budget)}
}

func (s *BudgetStore) Save(_ context.Context, b *core.Budget) (*core.Budget, error) {
	if b == nil {
		return nil, core.ErrNilRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := *b
	if rec.ID == 0 {
		s.lastID++
		rec.ID = s.lastID
	}
	s.records[rec.ID] = rec
	return &rec, nil
}

func (s *BudgetStore) FindByID(_ context.Context, id int64) (*core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &rec, nil
}

func (s *BudgetStore) FindByUser(_ context.Context, userID int64) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Budget
	for _, rec := range s.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *BudgetStore) FindAll(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Budget, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out, nil
}

func (s *BudgetStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

type GoalStore struct {
	mu      sync.Mutex
	records map[int64]core.Goal
	lastID  int64
}

func NewGoalStore() *GoalStore {
	return &GoalStore{records: make(map[int64]core.Goal)}
}

func (s *GoalStore) Save(_ context.Context, g *core.Goal) (*core.Goal, error) {
	if g == nil {
		return nil, core.ErrNilRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := *g
	if rec.ID == 0 {
		s.lastID++
		rec.ID = s.lastID
	}
	s.records[rec.ID] = rec
	return &rec, nil
}

func (s *GoalStore) FindByID(_ context.Context, id int64) (*core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &rec, nil
}

func (s *GoalStore) FindByUser(_ context.Context, userID int64) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Goal
	for _, rec := range s.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *GoalStore) FindAll(_ context.Context) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Goal, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	return out, nil
}

func (s *GoalStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
