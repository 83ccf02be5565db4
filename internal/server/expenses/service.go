package expenses

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/finmate-app/finmate/internal/common"
)

// ValidCategories lists the categories the API accepts.
var ValidCategories = []string{
	"housing", "food", "transportation", "utilities", "healthcare",
	"entertainment", "savings", "debt", "other",
}

// topCategoryCount caps the summary's top-categories list.
const topCategoryCount = 3

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}

func (s *Service) Add(ctx context.Context, e *Expense) (*Expense, error) {
	if e.Description == "" {
		return nil, fmt.Errorf("%w: description is required", common.ErrorValidation)
	}
	if e.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", common.ErrorValidation)
	}
	if !validCategory(e.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", common.ErrorValidation, e.Category)
	}
	if e.Date == "" {
		e.Date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrorValidation)
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, userID, startDate, endDate string) ([]Expense, error) {
	result, err := s.repo.List(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Delete removes an expense after checking it belongs to the caller. An
// expense owned by another user answers not-found rather than forbidden,
// so IDs cannot be probed.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	if e.UserID != userID {
		return common.ErrorNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

// Summarize aggregates all of the user's expenses into a total, a
// per-category map and the top spending categories.
func (s *Service) Summarize(ctx context.Context, userID string) (*Summary, error) {
	all, err := s.repo.List(ctx, userID, "", "")
	if err != nil {
		return nil, common.ErrorInternal
	}

	summary := &Summary{ByCategory: map[string]float64{}}
	for _, e := range all {
		summary.TotalExpenses += e.Amount
		summary.ByCategory[e.Category] += e.Amount
	}

	for category, total := range summary.ByCategory {
		summary.TopCategories = append(summary.TopCategories, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(summary.TopCategories, func(i, j int) bool {
		a, b := summary.TopCategories[i], summary.TopCategories[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Category < b.Category
	})
	if len(summary.TopCategories) > topCategoryCount {
		summary.TopCategories = summary.TopCategories[:topCategoryCount]
	}

	return summary, nil
}

// Breakdown returns every spending category with its share of the total,
// largest first. An empty history yields an empty breakdown.
func (s *Service) Breakdown(ctx context.Context, userID string) ([]CategoryShare, error) {
	all, err := s.repo.List(ctx, userID, "", "")
	if err != nil {
		return nil, common.ErrorInternal
	}

	var total float64
	byCategory := map[string]float64{}
	for _, e := range all {
		total += e.Amount
		byCategory[e.Category] += e.Amount
	}

	result := make([]CategoryShare, 0, len(byCategory))
	for category, sum := range byCategory {
		result = append(result, CategoryShare{
			Category:   category,
			Total:      sum,
			Percentage: sum / total * 100,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Category < result[j].Category
	})

	return result, nil
}
