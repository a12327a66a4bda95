package task

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/internal/ai"
	"github.com/goalpilot/backend/internal/analytics"
	"github.com/goalpilot/backend/repository"
	"github.com/goalpilot/backend/usecase"
)

// DailyGenerator is the slice of the AI generator this use case needs.
type DailyGenerator interface {
	GenerateDailyTasks(ctx context.Context, c ai.DailyContext) *domain.DailyPlan
}

type UseCase struct {
	goals     repository.GoalRepository
	tasks     repository.TaskRepository
	generator DailyGenerator
	buffer    usecase.OperationBuffer
	logger    *zap.Logger
}

func New(goals repository.GoalRepository, tasks repository.TaskRepository, generator DailyGenerator, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		goals:     goals,
		tasks:     tasks,
		generator: generator,
		buffer:    buffer,
		logger:    logger,
	}
}

// TodayResult is the payload for the today's-tasks endpoint.
type TodayResult struct {
	Tasks        []domain.Task `json:"tasks"`
	CoachMessage string        `json:"coachMessage,omitempty"`
}

// Today returns the active goal's tasks for the current date, generating a
// fresh daily set when none exist yet.
func (uc *UseCase) Today(ctx context.Context, userID, mood string) (*TodayResult, error) {
	goal, err := uc.goals.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveGoal) {
			return &TodayResult{Tasks: []domain.Task{}}, nil
		}
		return nil, err
	}

	now := time.Now()
	today := now.Format(domain.DateLayout)

	existing, err := uc.tasks.List(ctx, repository.TaskFilter{GoalID: goal.ID, Date: today})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &TodayResult{Tasks: existing}, nil
	}

	allTasks, err := uc.tasks.List(ctx, repository.TaskFilter{GoalID: goal.ID})
	if err != nil {
		return nil, err
	}

	dayNum := analytics.DayNumber(goal.CreatedAt, now)
	plan := uc.generator.GenerateDailyTasks(ctx, ai.DailyContext{
		GoalTitle:       goal.Title,
		GoalType:        goal.GoalType,
		CurrentDay:      dayNum,
		TotalDays:       goal.TotalDays,
		DailyTime:       goal.DailyTime,
		CurrentPhase:    analytics.CurrentPhase(goal.Phases, dayNum, "In Progress"),
		YesterdayStatus: analytics.YesterdayStatus(allTasks, now),
		Mood:            mood,
	})

	tasks := make([]domain.Task, 0, len(plan.Tasks))
	for _, t := range plan.Tasks {
		task := domain.Task{
			GoalID:     goal.ID,
			UserID:     goal.UserID,
			Title:      t.Title,
			Status:     domain.TaskStatusPending,
			Time:       t.Time,
			Type:       t.Type,
			Difficulty: t.Difficulty,
			DayNumber:  dayNum,
			Date:       today,
		}
		if task.Time <= 0 {
			task.Time = 30
		}
		if task.Type == "" {
			task.Type = "Action"
		}
		if task.Difficulty == "" {
			task.Difficulty = "Medium"
		}
		tasks = append(tasks, task)
	}

	saved, err := uc.tasks.CreateBatch(ctx, tasks)
	if err != nil {
		return nil, err
	}

	if err := uc.goals.RefreshTaskCounters(ctx, goal.ID); err != nil {
		uc.logger.Warn("counter refresh failed after daily generation", zap.String("goal_id", goal.ID), zap.Error(err))
	}

	uc.logger.Info("daily tasks generated",
		zap.String("goal_id", goal.ID),
		zap.Int("day", dayNum),
		zap.Int("count", len(saved)))

	return &TodayResult{Tasks: saved, CoachMessage: plan.CoachMessage}, nil
}

// UpdateProgress moves a task to a new status. Completed and skipped are
// terminal, so backward transitions are rejected. Infrastructure failures
// fall back to the offline write buffer.
func (uc *UseCase) UpdateProgress(ctx context.Context, userID, taskID, status string) (*domain.Task, error) {
	if !domain.IsValidTaskStatus(status) {
		return nil, domain.ErrInvalidPayload
	}

	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	if !domain.CanTransition(task.Status, status) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := uc.tasks.UpdateStatus(ctx, taskID, status)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, err
		}
		if uc.bufferStatus(ctx, taskID, status) {
			task.Status = status
			updated = task
		} else {
			return nil, err
		}
	}

	if err := uc.goals.RefreshTaskCounters(ctx, task.GoalID); err != nil {
		uc.bufferCounters(ctx, task.GoalID, err)
	}

	return updated, nil
}

func (uc *UseCase) bufferStatus(ctx context.Context, taskID, status string) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTaskStatus(ctx, taskID, status); err != nil {
		uc.logger.Error("failed to buffer status update", zap.String("task_id", taskID), zap.Error(err))
		return false
	}
	uc.logger.Warn("status update buffered", zap.String("task_id", taskID), zap.String("status", status))
	return true
}

func (uc *UseCase) bufferCounters(ctx context.Context, goalID string, cause error) {
	if uc.buffer == nil {
		uc.logger.Warn("counter refresh failed", zap.String("goal_id", goalID), zap.Error(cause))
		return
	}
	if err := uc.buffer.BufferGoalCounters(ctx, goalID); err != nil {
		uc.logger.Error("failed to buffer counter refresh", zap.String("goal_id", goalID), zap.Error(err))
	}
}
