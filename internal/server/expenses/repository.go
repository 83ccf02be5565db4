package expenses

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, expense *Expense) (*Expense, error)
	// List returns the user's expenses, newest first. Empty bounds mean
	// no filtering on that side.
	List(ctx context.Context, userID, startDate, endDate string) ([]Expense, error)
	GetByID(ctx context.Context, id string) (*Expense, error)
	Delete(ctx context.Context, id string) error
}
