// Package sqlite implements the storage ports over a SQLite database, so
// records survive process restarts. Identifier assignment relies on
// AUTOINCREMENT, which keeps ids monotonic and never reused.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finman/internal/core"
	"finman/internal/storage"

	_ "modernc.org/sqlite"
)

type Backend struct {
	db *sql.DB
}

// Ensure interface conformance
var (
	_ storage.UserStore        = (*UserStore)(nil)
	_ storage.TransactionStore = (*TransactionStore)(nil)
	_ storage.BudgetStore      = (*BudgetStore)(nil)
	_ storage.GoalStore        = (*GoalStore)(nil)
)

func Open(dbPath string) (*Backend, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Backend{db: db}, nil
}

func (b *Backend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func (b *Backend) Stores() storage.Stores {
	return storage.Stores{
		Users:        &UserStore{db: b.db},
		Transactions: &TransactionStore{db: b.db},
		Budgets:      &BudgetStore{db: b.db},
		Goals:        &GoalStore{db: b.db},
	}
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode time %q: %w", s, err)
	}
	return t, nil
}

type UserStore struct {
	db *sql.DB
}

func (s *UserStore) Save(ctx context.Context, u *core.User) (*core.User, error) {
	if u == nil {
		return nil, core.ErrNilRecord
	}
	rec := *u
	if rec.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO users (name, email, password, is_admin, is_blocked) VALUES (?, ?, ?, ?, ?)`,
			rec.Name, rec.Email, rec.Password, rec.Admin, rec.Blocked)
		if err != nil {
			return nil, fmt.Errorf("insert user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("user id: %w", err)
		}
		rec.ID = id
		return &rec, nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (id, name, email, password, is_admin, is_blocked) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Email, rec.Password, rec.Admin, rec.Blocked)
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return &rec, nil
}

func (s *UserStore) FindByID(ctx context.Context, id int64) (*core.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password, is_admin, is_blocked FROM users WHERE id = ?`, id))
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*core.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password, is_admin, is_blocked FROM users WHERE email = ? ORDER BY id LIMIT 1`, email))
}

func (s *UserStore) scanOne(row *sql.Row) (*core.User, error) {
	var rec core.User
	err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Password, &rec.Admin, &rec.Blocked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &rec, nil
}

func (s *UserStore) FindAll(ctx context.Context) ([]core.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, password, is_admin, is_blocked FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []core.User{}
	for rows.Next() {
		var rec core.User
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Password, &rec.Admin, &rec.Blocked); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *UserStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return n > 0, nil
}

type TransactionStore struct {
	db *sql.DB
}

func (s *TransactionStore) Save(ctx context.Context, t *core.Transaction) (*core.Transaction, error) {
	if t == nil {
		return nil, core.ErrNilRecord
	}
	rec := *t
	if rec.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO transactions (user_id, amount_cents, category, description, date, type) VALUES (?, ?, ?, ?, ?, ?)`,
			rec.UserID, rec.Amount.Cents, rec.Category, rec.Description, encodeTime(rec.Date), string(rec.Type))
		if err != nil {
			return nil, fmt.Errorf("insert transaction: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("transaction id: %w", err)
		}
		rec.ID = id
		return &rec, nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO transactions (id, user_id, amount_cents, category, description, date, type) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Amount.Cents, rec.Category, rec.Description, encodeTime(rec.Date), string(rec.Type))
	if err != nil {
		return nil, fmt.Errorf("save transaction: %w", err)
	}
	return &rec, nil
}

func (s *TransactionStore) FindByID(ctx context.Context, id int64) (*core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, amount_cents, category, description, date, type FROM transactions WHERE id = ?`, id)
	var (
		rec  core.Transaction
		date string
		typ  string
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Amount.Cents, &rec.Category, &rec.Description, &date, &typ)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	if rec.Date, err = decodeTime(date); err != nil {
		return nil, err
	}
	rec.Type = core.TransactionType(typ)
	return &rec, nil
}

func (s *TransactionStore) FindByUser(ctx context.Context, userID int64) ([]core.Transaction, error) {
	return s.list(ctx,
		`SELECT id, user_id, amount_cents, category, description, date, type FROM transactions WHERE user_id = ?`, userID)
}

func (s *TransactionStore) FindAll(ctx context.Context) ([]core.Transaction, error) {
	return s.list(ctx,
		`SELECT id, user_id, amount_cents, category, description, date, type FROM transactions`)
}

func (s *TransactionStore) list(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		var (
			rec  core.Transaction
			date string
			typ  string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Amount.Cents, &rec.Category, &rec.Description, &date, &typ); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if rec.Date, err = decodeTime(date); err != nil {
			return nil, err
		}
		rec.Type = core.TransactionType(typ)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *TransactionStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

type BudgetStore struct {
	db *sql.DB
}

func (s *BudgetStore) Save(ctx context.Context, b *core.Budget) (*core.Budget, error) {
	if b == nil {
		return nil, core.ErrNilRecord
	}
	rec := *b
	if rec.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO budgets (user_id, amount_cents, period) VALUES (?, ?, ?)`,
			rec.UserID, rec.Amount.Cents, rec.Period.String())
		if err != nil {
			return nil, fmt.Errorf("insert budget: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("budget id: %w", err)
		}
		rec.ID = id
		return &rec, nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO budgets (id, user_id, amount_cents, period) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Amount.Cents, rec.Period.String())
	if err != nil {
		return nil, fmt.Errorf("save budget: %w", err)
	}
	return &rec, nil
}

func (s *BudgetStore) FindByID(ctx context.Context, id int64) (*core.Budget, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, amount_cents, period FROM budgets WHERE id = ?`, id)
	var (
		rec    core.Budget
		period string
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Amount.Cents, &period)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan budget: %w", err)
	}
	if rec.Period, err = core.ParsePeriod(period); err != nil {
		return nil, fmt.Errorf("decode period %q: %w", period, err)
	}
	return &rec, nil
}

func (s *BudgetStore) FindByUser(ctx context.Context, userID int64) ([]core.Budget, error) {
	return s.list(ctx, `SELECT id, user_id, amount_cents, period FROM budgets WHERE user_id = ?`, userID)
}

func (s *BudgetStore) FindAll(ctx context.Context) ([]core.Budget, error) {
	return s.list(ctx, `SELECT id, user_id, amount_cents, period FROM budgets`)
}

func (s *BudgetStore) list(ctx context.Context, query string, args ...any) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	out := []core.Budget{}
	for rows.Next() {
		var (
			rec    core.Budget
			period string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Amount.Cents, &period); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		if rec.Period, err = core.ParsePeriod(period); err != nil {
			return nil, fmt.Errorf("decode period %q: %w", period, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *BudgetStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

type GoalStore struct {
	db *sql.DB
}

func (s *GoalStore) Save(ctx context.Context, g *core.Goal) (*core.Goal, error) {
	if g == nil {
		return nil, core.ErrNilRecord
	}
	rec := *g
	if rec.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO goals (user_id, name, target_cents, current_cents, deadline) VALUES (?, ?, ?, ?, ?)`,
			rec.UserID, rec.Name, rec.TargetAmount.Cents, rec.CurrentAmount.Cents, encodeTime(rec.Deadline))
		if err != nil {
			return nil, fmt.Errorf("insert goal: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("goal id: %w", err)
		}
		rec.ID = id
		return &rec, nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO goals (id, user_id, name, target_cents, current_cents, deadline) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Name, rec.TargetAmount.Cents, rec.CurrentAmount.Cents, encodeTime(rec.Deadline))
	if err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}
	return &rec, nil
}

func (s *GoalStore) FindByID(ctx context.Context, id int64) (*core.Goal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, target_cents, current_cents, deadline FROM goals WHERE id = ?`, id)
	var (
		rec      core.Goal
		deadline string
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.TargetAmount.Cents, &rec.CurrentAmount.Cents, &deadline)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan goal: %w", err)
	}
	if rec.Deadline, err = decodeTime(deadline); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GoalStore) FindByUser(ctx context.Context, userID int64) ([]core.Goal, error) {
	return s.list(ctx, `SELECT id, user_id, name, target_cents, current_cents, deadline FROM goals WHERE user_id = ?`, userID)
}

func (s *GoalStore) FindAll(ctx context.Context) ([]core.Goal, error) {
	return s.list(ctx, `SELECT id, user_id, name, target_cents, current_cents, deadline FROM goals`)
}

func (s *GoalStore) list(ctx context.Context, query string, args ...any) ([]core.Goal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	out := []core.Goal{}
	for rows.Next() {
		var (
			rec      core.Goal
			deadline string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.TargetAmount.Cents, &rec.CurrentAmount.Cents, &deadline); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if rec.Deadline, err = decodeTime(deadline); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *GoalStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}
