package repository

import (
	"context"

	"github.com/goalpilot/backend/domain"
)

type TaskFilter struct {
	UserID string
	GoalID string
	Date   string
	Status string
	Limit  int
	Offset int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	CreateBatch(ctx context.Context, tasks []domain.Task) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Task, error)
	DeleteByGoal(ctx context.Context, goalID string) error
}
