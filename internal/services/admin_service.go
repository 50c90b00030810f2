package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finman/internal/core"
	"finman/internal/storage"
)

// AdminService is a thin aggregation over the user and transaction stores
// for the admin console. Delete removes the user record only; cleaning up
// the user's transactions is the calling layer's explicit responsibility.
type AdminService struct {
	users        storage.UserStore
	transactions storage.TransactionStore
}

func NewAdminService(users storage.UserStore, transactions storage.TransactionStore) *AdminService {
	return &AdminService{users: users, transactions: transactions}
}

func (s *AdminService) Users(ctx context.Context) ([]core.User, error) {
	return s.users.FindAll(ctx)
}

func (s *AdminService) UserTransactions(ctx context.Context, userID int64) ([]core.Transaction, error) {
	return s.transactions.FindByUser(ctx, userID)
}

func (s *AdminService) Block(ctx context.Context, userID int64) (bool, error) {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	u.Blocked = true
	if _, err := s.users.Save(ctx, u); err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}
	slog.InfoContext(ctx, "User blocked by admin", "user_id", userID)
	return true, nil
}

func (s *AdminService) Delete(ctx context.Context, userID int64) (bool, error) {
	ok, err := s.users.Delete(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	if ok {
		slog.InfoContext(ctx, "User deleted by admin", "user_id", userID)
	}
	return ok, nil
}
