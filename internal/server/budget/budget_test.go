package budget

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finmate-app/finmate/internal/common"
	"github.com/finmate-app/finmate/internal/server/expenses"
)

type expenseRepo struct {
	items  []expenses.Expense
	nextID int
}

func (r *expenseRepo) Create(ctx context.Context, e *expenses.Expense) (*expenses.Expense, error) {
	r.nextID++
	e.ID = fmt.Sprintf("e-%d", r.nextID)
	r.items = append(r.items, *e)
	return e, nil
}

func (r *expenseRepo) List(ctx context.Context, userID, startDate, endDate string) ([]expenses.Expense, error) {
	var result []expenses.Expense
	for _, e := range r.items {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *expenseRepo) GetByID(ctx context.Context, id string) (*expenses.Expense, error) {
	return nil, common.ErrorNotFound
}

func (r *expenseRepo) Delete(ctx context.Context, id string) error { return common.ErrorNotFound }

func newTestService(repo *expenseRepo) *Service {
	return NewService(expenses.NewService(repo))
}

func TestGeneratePlan_DefaultAllocations(t *testing.T) {
	s := newTestService(&expenseRepo{})

	plan, err := s.GeneratePlan(5000, nil)
	require.NoError(t, err)

	require.Equal(t, 5000.0, plan.MonthlyIncome)
	require.Len(t, plan.Items, 8)
	require.Equal(t, Item{Category: "housing", Amount: 1500, Percentage: 30}, plan.Items[0])
	require.Equal(t, Item{Category: "savings", Amount: 1000, Percentage: 20}, plan.Items[6])
	// the default split allocates every dollar
	require.Equal(t, 5000.0, plan.TotalBudget)
	require.Equal(t, 0.0, plan.RemainingAmount)
}

func TestGeneratePlan_PreferencesOverrideDefaults(t *testing.T) {
	s := newTestService(&expenseRepo{})

	plan, err := s.GeneratePlan(4000, map[string]float64{"housing": 0.40, "unknown": 0.50})
	require.NoError(t, err)

	require.Equal(t, Item{Category: "housing", Amount: 1600, Percentage: 40}, plan.Items[0])
	// the unknown category is ignored, not added
	require.Len(t, plan.Items, 8)
	require.Equal(t, -400.0, plan.RemainingAmount)
}

func TestGeneratePlan_Validation(t *testing.T) {
	s := newTestService(&expenseRepo{})

	_, err := s.GeneratePlan(0, nil)
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.GeneratePlan(4000, map[string]float64{"food": 1.5})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestCustomPlan_CapsAtIncome(t *testing.T) {
	s := newTestService(&expenseRepo{})

	_, err := s.CustomPlan(1000, []Item{
		{Category: "housing", Amount: 800},
		{Category: "food", Amount: 300},
	})
	require.ErrorIs(t, err, common.ErrorValidation)

	plan, err := s.CustomPlan(1000, []Item{
		{Category: "housing", Amount: 600},
		{Category: "food", Amount: 300},
	})
	require.NoError(t, err)
	require.Equal(t, 900.0, plan.TotalBudget)
	require.Equal(t, 100.0, plan.RemainingAmount)
}

func TestCategories_DisplayNames(t *testing.T) {
	s := newTestService(&expenseRepo{})

	cats := s.Categories()
	require.Len(t, cats, 8)
	require.Equal(t, Category{Value: "housing", Name: "Housing"}, cats[0])
	require.Equal(t, Category{Value: "debt", Name: "Debt"}, cats[7])
}

func TestAnalyze_FlagsOverspentCategories(t *testing.T) {
	repo := &expenseRepo{}
	s := newTestService(repo)
	ctx := context.Background()

	add := func(category string, amount float64) {
		_, err := repo.Create(ctx, &expenses.Expense{
			UserID: "u-1", Description: "x", Amount: amount, Category: category, Date: "2026-02-01",
		})
		require.NoError(t, err)
	}
	add("food", 700)
	add("housing", 1000)

	plan, err := s.GeneratePlan(4000, nil) // food budget 600, housing 1200
	require.NoError(t, err)

	analysis, err := s.Analyze(ctx, "u-1", plan)
	require.NoError(t, err)

	require.Equal(t, StatusOverBudget, analysis.OverallStatus)
	require.Equal(t, 100.0, analysis.TotalOverspend)

	food := analysis.CategoryAnalysis["food"]
	require.Equal(t, "over", food.Status)
	require.Equal(t, 100.0, food.Difference)
	require.InDelta(t, 116.7, food.PercentageUsed, 0.01)

	housing := analysis.CategoryAnalysis["housing"]
	require.Equal(t, "under", housing.Status)

	require.Len(t, analysis.Recommendations, 1)
	require.Contains(t, analysis.Recommendations[0], "food")
	require.Contains(t, analysis.Recommendations[0], "$100.00")
}

func TestAnalyze_UnderBudget(t *testing.T) {
	repo := &expenseRepo{}
	s := newTestService(repo)
	ctx := context.Background()

	_, err := repo.Create(ctx, &expenses.Expense{
		UserID: "u-1", Description: "rent", Amount: 500, Category: "housing", Date: "2026-02-01",
	})
	require.NoError(t, err)

	plan, err := s.GeneratePlan(4000, nil)
	require.NoError(t, err)

	analysis, err := s.Analyze(ctx, "u-1", plan)
	require.NoError(t, err)

	require.Equal(t, StatusUnderBudget, analysis.OverallStatus)
	require.Zero(t, analysis.TotalOverspend)
	require.Len(t, analysis.Recommendations, 1)
	require.Contains(t, analysis.Recommendations[0], "under budget")
}

func TestAnalyze_RequiresPlan(t *testing.T) {
	s := newTestService(&expenseRepo{})

	_, err := s.Analyze(context.Background(), "u-1", nil)
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Analyze(context.Background(), "u-1", &Plan{MonthlyIncome: 1000})
	require.ErrorIs(t, err, common.ErrorValidation)
}
