package savings

import "time"

type Goal struct {
	ID            string
	UserID        string
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	TargetDate    string // YYYY-MM-DD
	Priority      int
	CreatedAt     time.Time
}

// MonthlyTarget is the computed savings pace for one goal.
type MonthlyTarget struct {
	GoalID          string
	MonthlyAmount   float64
	MonthsRemaining int
}
