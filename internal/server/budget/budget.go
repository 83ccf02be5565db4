// Package budget implements budget planning: suggested allocation plans
// derived from monthly income, custom plans, and a comparison of a plan
// against the user's recorded spending.
package budget

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/finmate-app/finmate/internal/common"
	"github.com/finmate-app/finmate/internal/server/expenses"
)

// Plan statuses reported by Analyze.
const (
	StatusOnTrack     = "on_track"
	StatusOverBudget  = "over_budget"
	StatusUnderBudget = "under_budget"
)

// defaultAllocations is the suggested split of monthly income, a variant
// of the 50/30/20 rule broken down per expense category. Order is the
// presentation order of the generated plan.
var defaultAllocations = []struct {
	Category string
	Share    float64
}{
	{"housing", 0.30},
	{"food", 0.15},
	{"transportation", 0.10},
	{"utilities", 0.05},
	{"healthcare", 0.05},
	{"entertainment", 0.10},
	{"savings", 0.20},
	{"debt", 0.05},
}

// Item is one category line of a plan.
type Item struct {
	Category   string
	Amount     float64
	Percentage float64
}

type Plan struct {
	MonthlyIncome   float64
	Items           []Item
	TotalBudget     float64
	RemainingAmount float64
}

// Category pairs the stored category value with a display name.
type Category struct {
	Value string
	Name  string
}

// CategoryReport compares one category's budgeted amount with what was
// actually spent.
type CategoryReport struct {
	Budgeted       float64
	Actual         float64
	Difference     float64
	PercentageUsed float64
	Status         string
}

type Analysis struct {
	OverallStatus    string
	CategoryAnalysis map[string]CategoryReport
	Recommendations  []string
	TotalOverspend   float64
}

type Service struct {
	expenses *expenses.Service
}

func NewService(es *expenses.Service) *Service {
	return &Service{expenses: es}
}

// GeneratePlan builds a suggested plan for the given income. Preferences
// override the default share of a category; unknown categories are
// ignored, matching the lenient behavior of category filters elsewhere.
func (s *Service) GeneratePlan(monthlyIncome float64, preferences map[string]float64) (*Plan, error) {
	if monthlyIncome <= 0 {
		return nil, fmt.Errorf("%w: monthly income must be positive", common.ErrorValidation)
	}
	for category, share := range preferences {
		if share < 0 || share > 1 {
			return nil, fmt.Errorf("%w: share for %s must be between 0 and 1", common.ErrorValidation, category)
		}
	}

	items := make([]Item, 0, len(defaultAllocations))
	var total float64
	for _, a := range defaultAllocations {
		share := a.Share
		if override, ok := preferences[a.Category]; ok {
			share = override
		}
		amount := monthlyIncome * share
		items = append(items, Item{
			Category:   a.Category,
			Amount:     round2(amount),
			Percentage: math.Round(share*1000) / 10,
		})
		total += amount
	}

	return &Plan{
		MonthlyIncome:   monthlyIncome,
		Items:           items,
		TotalBudget:     round2(total),
		RemainingAmount: round2(monthlyIncome - total),
	}, nil
}

// CustomPlan builds a plan from explicit per-category amounts. The total
// may not exceed the income.
func (s *Service) CustomPlan(monthlyIncome float64, items []Item) (*Plan, error) {
	if monthlyIncome <= 0 {
		return nil, fmt.Errorf("%w: monthly income must be positive", common.ErrorValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one budget item is required", common.ErrorValidation)
	}

	var total float64
	for _, item := range items {
		if item.Amount < 0 {
			return nil, fmt.Errorf("%w: amount for %s cannot be negative", common.ErrorValidation, item.Category)
		}
		total += item.Amount
	}
	if total > monthlyIncome {
		return nil, fmt.Errorf("%w: total budget allocation cannot exceed monthly income", common.ErrorValidation)
	}

	return &Plan{
		MonthlyIncome:   monthlyIncome,
		Items:           items,
		TotalBudget:     round2(total),
		RemainingAmount: round2(monthlyIncome - total),
	}, nil
}

// Categories lists the plannable categories with display names.
func (s *Service) Categories() []Category {
	result := make([]Category, 0, len(defaultAllocations))
	for _, a := range defaultAllocations {
		result = append(result, Category{Value: a.Category, Name: titleCase(a.Category)})
	}
	return result
}

// Analyze compares a plan against the user's recorded expenses and
// produces per-category reports plus recommendations. Spending in a
// category with no budget line is not counted against the plan.
func (s *Service) Analyze(ctx context.Context, userID string, plan *Plan) (*Analysis, error) {
	if plan == nil || len(plan.Items) == 0 {
		return nil, fmt.Errorf("%w: a budget plan with items is required", common.ErrorValidation)
	}

	summary, err := s.expenses.Summarize(ctx, userID)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		OverallStatus:    StatusOnTrack,
		CategoryAnalysis: make(map[string]CategoryReport, len(plan.Items)),
		Recommendations:  []string{},
	}

	var totalOverspend, totalActual float64
	for _, item := range plan.Items {
		actual := summary.ByCategory[item.Category]
		totalActual += actual
		difference := actual - item.Amount

		var used float64
		if item.Amount > 0 {
			used = actual / item.Amount * 100
		}

		status := "under"
		if difference > 0 {
			status = "over"
			totalOverspend += difference
			analysis.Recommendations = append(analysis.Recommendations,
				fmt.Sprintf("Consider reducing %s expenses by $%.2f", item.Category, difference))
		}

		analysis.CategoryAnalysis[item.Category] = CategoryReport{
			Budgeted:       item.Amount,
			Actual:         actual,
			Difference:     round2(difference),
			PercentageUsed: math.Round(used*10) / 10,
			Status:         status,
		}
	}

	if totalOverspend > 0 {
		analysis.OverallStatus = StatusOverBudget
		analysis.TotalOverspend = round2(totalOverspend)
	} else if totalActual < plan.TotalBudget {
		analysis.OverallStatus = StatusUnderBudget
		analysis.Recommendations = append(analysis.Recommendations,
			"Great job! You're under budget. Consider increasing savings.")
	}

	return analysis, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func titleCase(category string) string {
	parts := strings.Split(category, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
