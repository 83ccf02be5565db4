package savings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/finmate-app/finmate/internal/common"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Add(ctx context.Context, g *Goal) (*Goal, error) {
	if g.Name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if g.TargetAmount <= 0 {
		return nil, fmt.Errorf("%w: target amount must be positive", common.ErrorValidation)
	}
	if g.CurrentAmount < 0 {
		return nil, fmt.Errorf("%w: current amount cannot be negative", common.ErrorValidation)
	}
	if _, err := time.Parse("2006-01-02", g.TargetDate); err != nil {
		return nil, fmt.Errorf("%w: target date must be YYYY-MM-DD", common.ErrorValidation)
	}
	if g.Priority == 0 {
		g.Priority = 3
	}
	if g.Priority < 1 || g.Priority > 5 {
		return nil, fmt.Errorf("%w: priority must be between 1 and 5", common.ErrorValidation)
	}

	created, err := s.repo.Create(ctx, g)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Goal, error) {
	result, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// getOwned loads a goal and hides other users' goals behind not-found.
func (s *Service) getOwned(ctx context.Context, userID, id string) (*Goal, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	if g.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return g, nil
}

// UpdateAmount sets the goal's saved-so-far amount to a new absolute value.
func (s *Service) UpdateAmount(ctx context.Context, userID, id string, amount float64) (*Goal, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", common.ErrorValidation)
	}
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateCurrentAmount(ctx, id, amount)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

// MonthlyTarget computes how much per month still has to be put aside to
// reach the goal by its target date. A past or imminent date counts as one
// month, so the answer is always actionable.
func (s *Service) MonthlyTarget(ctx context.Context, userID, id string) (*MonthlyTarget, error) {
	g, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	target, err := time.Parse("2006-01-02", g.TargetDate)
	if err != nil {
		return nil, common.ErrorInternal
	}

	months := monthsBetween(s.now(), target)
	if months < 1 {
		months = 1
	}

	remaining := g.TargetAmount - g.CurrentAmount
	if remaining <= 0 {
		return &MonthlyTarget{GoalID: g.ID, MonthlyAmount: 0, MonthsRemaining: 0}, nil
	}

	return &MonthlyTarget{
		GoalID:          g.ID,
		MonthlyAmount:   math.Round(remaining/float64(months)*100) / 100,
		MonthsRemaining: months,
	}, nil
}

func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() > from.Day() {
		months++
	}
	return months
}
