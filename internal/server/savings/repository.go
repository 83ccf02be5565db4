package savings

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, goal *Goal) (*Goal, error)
	// List returns the user's goals ordered by priority, then target date.
	List(ctx context.Context, userID string) ([]Goal, error)
	GetByID(ctx context.Context, id string) (*Goal, error)
	UpdateCurrentAmount(ctx context.Context, id string, amount float64) (*Goal, error)
	Delete(ctx context.Context, id string) error
}
