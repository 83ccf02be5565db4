package expenses

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finmate-app/finmate/internal/common"
)

type fakeRepo struct {
	expenses []Expense
	nextID   int
	err      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1}
}

func (r *fakeRepo) Create(ctx context.Context, expense *Expense) (*Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	expense.ID = fmt.Sprintf("e-%d", r.nextID)
	r.nextID++
	expense.CreatedAt = time.Now()
	r.expenses = append(r.expenses, *expense)
	return expense, nil
}

func (r *fakeRepo) List(ctx context.Context, userID, startDate, endDate string) ([]Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []Expense
	for _, e := range r.expenses {
		if e.UserID != userID {
			continue
		}
		if startDate != "" && e.Date < startDate {
			continue
		}
		if endDate != "" && e.Date > endDate {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, e := range r.expenses {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	for i, e := range r.expenses {
		if e.ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	s := NewService(newFakeRepo())

	created, err := s.Add(ctx, &Expense{
		UserID:      "u-1",
		Description: "groceries",
		Amount:      42.5,
		Category:    "food",
		Date:        "2026-03-01",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
}

func TestAdd_DefaultsDateToToday(t *testing.T) {
	ctx := context.Background()
	s := NewService(newFakeRepo())

	created, err := s.Add(ctx, &Expense{
		UserID:      "u-1",
		Description: "coffee",
		Amount:      3.5,
		Category:    "food",
	})
	require.NoError(t, err)
	require.Equal(t, time.Now().Format("2006-01-02"), created.Date)
}

func TestAdd_Validation(t *testing.T) {
	ctx := context.Background()
	s := NewService(newFakeRepo())

	tests := []struct {
		name    string
		expense Expense
	}{
		{"empty description", Expense{UserID: "u-1", Amount: 1, Category: "food"}},
		{"zero amount", Expense{UserID: "u-1", Description: "x", Amount: 0, Category: "food"}},
		{"negative amount", Expense{UserID: "u-1", Description: "x", Amount: -5, Category: "food"}},
		{"unknown category", Expense{UserID: "u-1", Description: "x", Amount: 1, Category: "lottery"}},
		{"bad date", Expense{UserID: "u-1", Description: "x", Amount: 1, Category: "food", Date: "03/01/2026"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Add(ctx, &tt.expense)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestList_DateRange(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	s := NewService(repo)

	for _, date := range []string{"2026-01-15", "2026-02-15", "2026-03-15"} {
		_, err := s.Add(ctx, &Expense{UserID: "u-1", Description: "x", Amount: 10, Category: "food", Date: date})
		require.NoError(t, err)
	}

	got, err := s.List(ctx, "u-1", "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "2026-02-15", got[0].Date)
}

func TestDelete_Ownership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	s := NewService(repo)

	created, err := s.Add(ctx, &Expense{UserID: "u-1", Description: "x", Amount: 10, Category: "food"})
	require.NoError(t, err)

	// another user's expense looks like it does not exist
	err = s.Delete(ctx, "u-2", created.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, s.Delete(ctx, "u-1", created.ID))

	err = s.Delete(ctx, "u-1", created.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	s := NewService(repo)

	seed := []struct {
		category string
		amount   float64
	}{
		{"housing", 1200},
		{"food", 300},
		{"food", 100},
		{"transportation", 150},
		{"entertainment", 50},
	}
	for _, e := range seed {
		_, err := s.Add(ctx, &Expense{UserID: "u-1", Description: "x", Amount: e.amount, Category: e.category})
		require.NoError(t, err)
	}

	summary, err := s.Summarize(ctx, "u-1")
	require.NoError(t, err)

	require.Equal(t, 1800.0, summary.TotalExpenses)
	require.Equal(t, 400.0, summary.ByCategory["food"])
	require.Len(t, summary.TopCategories, 3)
	require.Equal(t, "housing", summary.TopCategories[0].Category)
	require.Equal(t, "food", summary.TopCategories[1].Category)
	require.Equal(t, "transportation", summary.TopCategories[2].Category)
}

func TestBreakdown(t *testing.T) {
	ctx := context.Background()
	s := NewService(newFakeRepo())

	for _, e := range []struct {
		category string
		amount   float64
	}{
		{"housing", 600},
		{"food", 300},
		{"food", 100},
	} {
		_, err := s.Add(ctx, &Expense{UserID: "u-1", Description: "x", Amount: e.amount, Category: e.category})
		require.NoError(t, err)
	}

	breakdown, err := s.Breakdown(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, breakdown, 2)
	require.Equal(t, "housing", breakdown[0].Category)
	require.Equal(t, 60.0, breakdown[0].Percentage)
	require.Equal(t, "food", breakdown[1].Category)
	require.Equal(t, 40.0, breakdown[1].Percentage)
}

func TestBreakdown_Empty(t *testing.T) {
	s := NewService(newFakeRepo())

	breakdown, err := s.Breakdown(context.Background(), "u-1")
	require.NoError(t, err)
	require.Empty(t, breakdown)
}

func TestSummarize_Empty(t *testing.T) {
	s := NewService(newFakeRepo())

	summary, err := s.Summarize(context.Background(), "u-1")
	require.NoError(t, err)
	require.Zero(t, summary.TotalExpenses)
	require.Empty(t, summary.TopCategories)
}
