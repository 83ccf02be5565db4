// Package api contains the REST client for the FinMate backend. The Client
// interface is what the rest of the application programs against; the
// net/http implementation lives in httpclient.go.
package api

import (
	"context"

	"github.com/finmate-app/finmate/internal/client/session"
)

// TokenSource supplies the current bearer token for protected calls, ""
// when there is no session. Reading it per request keeps the transport
// decoupled from how the session is managed.
type TokenSource func() string

// Expense mirrors the backend expense record.
type Expense struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// Goal mirrors the backend savings-goal record.
type Goal struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	TargetDate    string  `json:"target_date"`
	Priority      int     `json:"priority"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// CategoryTotal is one slice of the spending breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Summary is the aggregated expense report.
type Summary struct {
	TotalExpenses float64            `json:"total_expenses"`
	ByCategory    map[string]float64 `json:"expenses_by_category"`
	TopCategories []CategoryTotal    `json:"top_categories"`
}

// MonthlyTarget is the server-computed savings pace for one goal.
type MonthlyTarget struct {
	GoalID          string  `json:"goal_id"`
	MonthlyAmount   float64 `json:"monthly_amount"`
	MonthsRemaining int     `json:"months_remaining"`
}

// Insight is one rule-based observation about the user's finances.
type Insight struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type Client interface {
	// Auth. Login returns the access token on success; it does not store
	// it anywhere — that is the session store's job.
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, email, password, fullName string) error
	Me(ctx context.Context) (*session.Profile, error)

	// Expenses.
	ListExpenses(ctx context.Context, from, to string) ([]Expense, error)
	AddExpense(ctx context.Context, e Expense) (*Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	ExpenseSummary(ctx context.Context) (*Summary, error)

	// Savings goals.
	ListGoals(ctx context.Context) ([]Goal, error)
	AddGoal(ctx context.Context, g Goal) (*Goal, error)
	UpdateGoalAmount(ctx context.Context, id string, amount float64) (*Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	MonthlyTarget(ctx context.Context, id string) (*MonthlyTarget, error)

	// AI coach.
	Chat(ctx context.Context, message string) (string, error)
	Insights(ctx context.Context) ([]Insight, error)
}
