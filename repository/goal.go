package repository

import (
	"context"

	"github.com/goalpilot/backend/domain"
)

type GoalFilter struct {
	UserID string
	Limit  int
	Offset int
}

type GoalRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	GetActive(ctx context.Context, userID string) (*domain.Goal, error)
	List(ctx context.Context, filter GoalFilter) ([]domain.Goal, error)
	Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error)
	// Activate flips the active flag to the given goal and away from every
	// other goal of the user in a single statement, so readers never observe
	// zero active goals mid-switch.
	Activate(ctx context.Context, userID, goalID string) (*domain.Goal, error)
	// RefreshTaskCounters recomputes total/completed task counts from the
	// tasks table.
	RefreshTaskCounters(ctx context.Context, goalID string) error
	Delete(ctx context.Context, userID, goalID string) error
}
