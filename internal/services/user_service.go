package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"finman/internal/core"
	"finman/internal/storage"
)

// UserService validates account input and orchestrates the user store.
// Email uniqueness is enforced here, not in the store.
type UserService struct {
	users storage.UserStore
}

func NewUserService(users storage.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(ctx context.Context, name, email, password string, admin bool) (*core.User, error) {
	u := core.User{
		Name:     name,
		Email:    email,
		Password: password,
		Admin:    admin,
		Blocked:  false,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, core.ErrEmailTaken
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	saved, err := s.users.Save(ctx, &u)
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	slog.InfoContext(ctx, "User registered",
		"id", saved.ID,
		"email", saved.Email,
		"admin", saved.Admin)

	return saved, nil
}

// Login compares the stored password as plain text, byte for byte.
func (s *UserService) Login(ctx context.Context, email, password string) (*core.User, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, core.ErrInvalidCredentials
	}
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, core.ErrNotFound) {
		return nil, core.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u.Password != password {
		return nil, core.ErrInvalidCredentials
	}

	slog.InfoContext(ctx, "User logged in", "id", u.ID, "email", u.Email)
	return u, nil
}

func (s *UserService) ByID(ctx context.Context, id int64) (*core.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) ByEmail(ctx context.Context, email string) (*core.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *UserService) All(ctx context.Context) ([]core.User, error) {
	return s.users.FindAll(ctx)
}

// Update applies the patch atomically: every present field is validated
// first and the record is written once, so a rejected email change leaves
// the stored record untouched. A blank patch field means "leave unchanged";
// an email without "@" is skipped rather than rejected, matching the
// create-side validation asymmetry.
func (s *UserService) Update(ctx context.Context, id int64, patch core.UserPatch) (bool, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}

	changed := false
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		u.Name = *patch.Name
		changed = true
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) != "" && strings.Contains(*patch.Email, "@") {
		owner, err := s.users.FindByEmail(ctx, *patch.Email)
		if err == nil && owner.ID != id {
			return false, core.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return false, fmt.Errorf("check email: %w", err)
		}
		u.Email = *patch.Email
		changed = true
	}
	if patch.Password != nil && strings.TrimSpace(*patch.Password) != "" {
		u.Password = *patch.Password
		changed = true
	}
	if !changed {
		return false, nil
	}

	if _, err := s.users.Save(ctx, u); err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}
	slog.InfoContext(ctx, "User updated", "id", id)
	return true, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	if ok {
		slog.InfoContext(ctx, "User deleted", "id", id)
	}
	return ok, nil
}

func (s *UserService) Block(ctx context.Context, id int64) (bool, error) {
	return s.setBlocked(ctx, id, true)
}

func (s *UserService) Unblock(ctx context.Context, id int64) (bool, error) {
	return s.setBlocked(ctx, id, false)
}

func (s *UserService) setBlocked(ctx context.Context, id int64, blocked bool) (bool, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	u.Blocked = blocked
	if _, err := s.users.Save(ctx, u); err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}
	slog.InfoContext(ctx, "User block flag changed", "id", id, "blocked", blocked)
	return true, nil
}

// EnsureAdmin seeds the initial administrator account at startup. It is a
// no-op when a user with the email already exists.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("check admin email: %w", err)
	}

	admin := core.User{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Admin:    true,
	}
	if err := admin.Validate(); err != nil {
		return fmt.Errorf("admin seed: %w", err)
	}
	saved, err := s.users.Save(ctx, &admin)
	if err != nil {
		return fmt.Errorf("save admin: %w", err)
	}

	slog.InfoContext(ctx, "Initial administrator created", "id", saved.ID, "email", email)
	return nil
}
