// Package advisor implements the rule-based financial coach. It answers
// free-form chat messages by keyword routing and derives insights from the
// user's recorded expenses and savings goals. No external AI service is
// involved; the replies are deterministic.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/finmate-app/finmate/internal/server/expenses"
	"github.com/finmate-app/finmate/internal/server/savings"
)

// Insight severity levels, mildest first.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityAlert   = "alert"
)

// categoryShareThreshold flags a category that dominates spending.
const categoryShareThreshold = 0.3

type Insight struct {
	Title    string
	Message  string
	Severity string
}

type Service struct {
	expenses *expenses.Service
	savings  *savings.Service
}

func NewService(es *expenses.Service, ss *savings.Service) *Service {
	return &Service{expenses: es, savings: ss}
}

// Chat answers one message. Routing is by keyword; an unrecognized
// question gets a generic pointer to what the coach can do.
func (s *Service) Chat(ctx context.Context, userID, message string) (string, error) {
	m := strings.ToLower(message)

	switch {
	case containsAny(m, "spend", "spent", "expense", "summary"):
		return s.spendingReply(ctx, userID)
	case containsAny(m, "save", "saving", "goal"):
		return s.savingsReply(ctx, userID)
	case containsAny(m, "budget"):
		return s.budgetReply(ctx, userID)
	default:
		return "I can help with your spending, savings goals and budget. " +
			"Try asking \"how much did I spend\" or \"how are my goals doing\".", nil
	}
}

func (s *Service) spendingReply(ctx context.Context, userID string) (string, error) {
	summary, err := s.expenses.Summarize(ctx, userID)
	if err != nil {
		return "", err
	}
	if summary.TotalExpenses == 0 {
		return "You have no recorded expenses yet. Add some and ask me again.", nil
	}
	top := summary.TopCategories[0]
	return fmt.Sprintf("You have spent $%.2f in total. Your biggest category is %s at $%.2f.",
		summary.TotalExpenses, top.Category, top.Total), nil
}

func (s *Service) savingsReply(ctx context.Context, userID string) (string, error) {
	goals, err := s.savings.List(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(goals) == 0 {
		return "You have no savings goals yet. Create one and I will track your pace.", nil
	}
	var saved, target float64
	for _, g := range goals {
		saved += g.CurrentAmount
		target += g.TargetAmount
	}
	return fmt.Sprintf("You are tracking %d goal(s) and have saved $%.2f of $%.2f overall.",
		len(goals), saved, target), nil
}

func (s *Service) budgetReply(ctx context.Context, userID string) (string, error) {
	summary, err := s.expenses.Summarize(ctx, userID)
	if err != nil {
		return "", err
	}
	if summary.TotalExpenses == 0 {
		return "Record some expenses first and I can tell you where your budget is going.", nil
	}
	var parts []string
	for _, ct := range summary.TopCategories {
		share := ct.Total / summary.TotalExpenses * 100
		parts = append(parts, fmt.Sprintf("%s %.0f%%", ct.Category, share))
	}
	return "Your budget currently goes to: " + strings.Join(parts, ", ") + ".", nil
}

// Insights inspects the user's data and returns rule-based observations.
// Order is stable: spending rules first, then goal rules in list order.
func (s *Service) Insights(ctx context.Context, userID string) ([]Insight, error) {
	var result []Insight

	summary, err := s.expenses.Summarize(ctx, userID)
	if err != nil {
		return nil, err
	}

	if summary.TotalExpenses > 0 {
		for _, ct := range summary.TopCategories {
			share := ct.Total / summary.TotalExpenses
			if share > categoryShareThreshold {
				result = append(result, Insight{
					Title: "Concentrated spending",
					Message: fmt.Sprintf("%.0f%% of your spending goes to %s. "+
						"Consider whether that matches your priorities.", share*100, ct.Category),
					Severity: SeverityWarning,
				})
			}
		}
	}

	goals, err := s.savings.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		if g.TargetAmount <= 0 {
			continue
		}
		progress := g.CurrentAmount / g.TargetAmount
		switch {
		case progress >= 1:
			result = append(result, Insight{
				Title:    "Goal reached",
				Message:  fmt.Sprintf("You reached your %q goal. Time to set a new one?", g.Name),
				Severity: SeverityInfo,
			})
		case progress < 0.1:
			result = append(result, Insight{
				Title:    "Goal barely started",
				Message:  fmt.Sprintf("Your %q goal is below 10%% funded. Small regular deposits add up.", g.Name),
				Severity: SeverityAlert,
			})
		case progress >= 0.75:
			result = append(result, Insight{
				Title:    "Goal almost there",
				Message:  fmt.Sprintf("Your %q goal is %.0f%% funded. One more push.", g.Name, progress*100),
				Severity: SeverityInfo,
			})
		}
	}

	return result, nil
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
