package advisor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finmate-app/finmate/internal/common"
	"github.com/finmate-app/finmate/internal/server/expenses"
	"github.com/finmate-app/finmate/internal/server/savings"
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
	for _, e := range r.items {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *expenseRepo) Delete(ctx context.Context, id string) error { return common.ErrorNotFound }

type goalRepo struct {
	items  []savings.Goal
	nextID int
}

func (r *goalRepo) Create(ctx context.Context, g *savings.Goal) (*savings.Goal, error) {
	r.nextID++
	g.ID = fmt.Sprintf("g-%d", r.nextID)
	r.items = append(r.items, *g)
	return g, nil
}

func (r *goalRepo) List(ctx context.Context, userID string) ([]savings.Goal, error) {
	var result []savings.Goal
	for _, g := range r.items {
		if g.UserID == userID {
			result = append(result, g)
		}
	}
	return result, nil
}

func (r *goalRepo) GetByID(ctx context.Context, id string) (*savings.Goal, error) {
	for _, g := range r.items {
		if g.ID == id {
			found := g
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *goalRepo) UpdateCurrentAmount(ctx context.Context, id string, amount float64) (*savings.Goal, error) {
	return nil, common.ErrorNotFound
}

func (r *goalRepo) Delete(ctx context.Context, id string) error { return common.ErrorNotFound }

func newTestAdvisor(er *expenseRepo, gr *goalRepo) *Service {
	return NewService(expenses.NewService(er), savings.NewService(gr))
}

func TestChat_SpendingQuestion(t *testing.T) {
	ctx := context.Background()
	er := &expenseRepo{}
	er.items = []expenses.Expense{
		{ID: "e-1", UserID: "u-1", Category: "food", Amount: 300},
		{ID: "e-2", UserID: "u-1", Category: "housing", Amount: 700},
	}
	s := newTestAdvisor(er, &goalRepo{})

	reply, err := s.Chat(ctx, "u-1", "How much did I spend this month?")
	require.NoError(t, err)
	require.Contains(t, reply, "$1000.00")
	require.Contains(t, reply, "housing")
}

func TestChat_GoalsQuestion(t *testing.T) {
	ctx := context.Background()
	gr := &goalRepo{items: []savings.Goal{
		{ID: "g-1", UserID: "u-1", Name: "vacation", TargetAmount: 2000, CurrentAmount: 500},
	}}
	s := newTestAdvisor(&expenseRepo{}, gr)

	reply, err := s.Chat(ctx, "u-1", "how are my savings goals doing")
	require.NoError(t, err)
	require.Contains(t, reply, "1 goal")
	require.Contains(t, reply, "$500.00")
}

func TestChat_Fallback(t *testing.T) {
	s := newTestAdvisor(&expenseRepo{}, &goalRepo{})

	reply, err := s.Chat(context.Background(), "u-1", "what is the meaning of life")
	require.NoError(t, err)
	require.Contains(t, reply, "I can help")
}

func TestChat_NoData(t *testing.T) {
	s := newTestAdvisor(&expenseRepo{}, &goalRepo{})

	reply, err := s.Chat(context.Background(), "u-1", "show my expenses")
	require.NoError(t, err)
	require.Contains(t, reply, "no recorded expenses")
}

func TestInsights_ConcentratedSpending(t *testing.T) {
	er := &expenseRepo{items: []expenses.Expense{
		{ID: "e-1", UserID: "u-1", Category: "entertainment", Amount: 800},
		{ID: "e-2", UserID: "u-1", Category: "food", Amount: 200},
	}}
	s := newTestAdvisor(er, &goalRepo{})

	insights, err := s.Insights(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotEmpty(t, insights)
	require.Equal(t, "Concentrated spending", insights[0].Title)
	require.Equal(t, SeverityWarning, insights[0].Severity)
	require.Contains(t, insights[0].Message, "entertainment")
}

func TestInsights_GoalProgressBands(t *testing.T) {
	gr := &goalRepo{items: []savings.Goal{
		{ID: "g-1", UserID: "u-1", Name: "done", TargetAmount: 100, CurrentAmount: 100},
		{ID: "g-2", UserID: "u-1", Name: "stalled", TargetAmount: 1000, CurrentAmount: 10},
		{ID: "g-3", UserID: "u-1", Name: "close", TargetAmount: 100, CurrentAmount: 80},
		{ID: "g-4", UserID: "u-1", Name: "midway", TargetAmount: 100, CurrentAmount: 50},
	}}
	s := newTestAdvisor(&expenseRepo{}, gr)

	insights, err := s.Insights(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, insights, 3)
	require.Equal(t, "Goal reached", insights[0].Title)
	require.Equal(t, "Goal barely started", insights[1].Title)
	require.Equal(t, SeverityAlert, insights[1].Severity)
	require.Equal(t, "Goal almost there", insights[2].Title)
}

func TestInsights_Empty(t *testing.T) {
	s := newTestAdvisor(&expenseRepo{}, &goalRepo{})

	insights, err := s.Insights(context.Background(), "u-1")
	require.NoError(t, err)
	require.Empty(t, insights)
}
