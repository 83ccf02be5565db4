package expenses

import "time"

type Expense struct {
	ID          string
	UserID      string
	Description string
	Amount      float64
	Category    string
	Date        string // YYYY-MM-DD
	CreatedAt   time.Time
}

// CategoryTotal is one slice of the per-category breakdown.
type CategoryTotal struct {
	Category string
	Total    float64
}

// Summary aggregates a user's spending.
type Summary struct {
	TotalExpenses float64
	ByCategory    map[string]float64
	TopCategories []CategoryTotal
}

// CategoryShare is a breakdown row: a category's total and its share of
// all spending, in percent.
type CategoryShare struct {
	Category   string
	Total      float64
	Percentage float64
}
