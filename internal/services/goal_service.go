package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finman/internal/core"
	"finman/internal/storage"
)

// GoalService manages savings goals. Deadline checks work at date
// precision: a deadline of today is still acceptable.
type GoalService struct {
	goals storage.GoalStore
}

func NewGoalService(goals storage.GoalStore) *GoalService {
	return &GoalService{goals: goals}
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *GoalService) Create(ctx context.Context, userID int64, name string, target core.Money, deadline time.Time) (*core.Goal, error) {
	g := core.Goal{
		UserID:       userID,
		Name:         name,
		TargetAmount: target,
		Deadline:     deadline,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if deadline.Before(today()) {
		return nil, core.ErrPastDeadline
	}

	saved, err := s.goals.Save(ctx, &g)
	if err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}

	slog.InfoContext(ctx, "Goal created",
		"id", saved.ID,
		"user_id", saved.UserID,
		"name", saved.Name,
		"target_cents", saved.TargetAmount.Cents)

	return saved, nil
}

func (s *GoalService) ByID(ctx context.Context, id int64) (*core.Goal, error) {
	return s.goals.FindByID(ctx, id)
}

func (s *GoalService) ListByUser(ctx context.Context, userID int64) ([]core.Goal, error) {
	return s.goals.FindByUser(ctx, userID)
}

// Update applies each present field independently; a field that fails its
// check (blank name, non-positive target, past deadline, negative current
// amount) is skipped, not an error. The record is written once.
func (s *GoalService) Update(ctx context.Context, id int64, patch core.GoalPatch) (bool, error) {
	g, err := s.goals.FindByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find goal: %w", err)
	}

	changed := false
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		g.Name = *patch.Name
		changed = true
	}
	if patch.TargetAmount != nil && patch.TargetAmount.Cents > 0 {
		g.TargetAmount = *patch.TargetAmount
		changed = true
	}
	if patch.Deadline != nil && !patch.Deadline.Before(today()) {
		g.Deadline = *patch.Deadline
		changed = true
	}
	if patch.CurrentAmount != nil && patch.CurrentAmount.Cents >= 0 {
		g.CurrentAmount = *patch.CurrentAmount
		changed = true
	}
	if !changed {
		return false, nil
	}

	if _, err := s.goals.Save(ctx, g); err != nil {
		return false, fmt.Errorf("save goal: %w", err)
	}
	slog.InfoContext(ctx, "Goal updated", "id", id)
	return true, nil
}

func (s *GoalService) Delete(ctx context.Context, id int64) (bool, error) {
	if _, err := s.goals.FindByID(ctx, id); errors.Is(err, core.ErrNotFound) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("find goal: %w", err)
	}
	if err := s.goals.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("delete goal: %w", err)
	}
	slog.InfoContext(ctx, "Goal deleted", "id", id)
	return true, nil
}

// Progress returns the completion percentage. A missing goal or a zero
// target reports 0.
func (s *GoalService) Progress(ctx context.Context, id int64) (float64, error) {
	g, err := s.goals.FindByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find goal: %w", err)
	}
	if g.TargetAmount.Cents == 0 {
		return 0, nil
	}
	return float64(g.CurrentAmount.Cents) / float64(g.TargetAmount.Cents) * 100, nil
}

// AddProgress adds amount to the saved total. There is no cap at the
// target: goals may be overfunded.
func (s *GoalService) AddProgress(ctx context.Context, id int64, amount core.Money) (bool, error) {
	if amount.Cents < 0 {
		return false, core.ErrInvalidAmount
	}
	g, err := s.goals.FindByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find goal: %w", err)
	}

	g.CurrentAmount = g.CurrentAmount.Add(amount)
	if _, err := s.goals.Save(ctx, g); err != nil {
		return false, fmt.Errorf("save goal: %w", err)
	}
	slog.InfoContext(ctx, "Goal progress added",
		"id", id,
		"added_cents", amount.Cents,
		"current_cents", g.CurrentAmount.Cents)
	return true, nil
}
