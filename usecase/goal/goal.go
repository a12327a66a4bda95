package goal

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/internal/ai"
	"github.com/goalpilot/backend/repository"
)

// defaultTotalDays is used when the target date is absent or unparsable.
const defaultTotalDays = 30

// PlanGenerator is the slice of the AI generator this use case needs.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req ai.PlanRequest) *domain.GeneratedPlan
}

type UseCase struct {
	goals     repository.GoalRepository
	tasks     repository.TaskRepository
	generator PlanGenerator
	logger    *zap.Logger
}

func New(goals repository.GoalRepository, tasks repository.TaskRepository, generator PlanGenerator, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		goals:     goals,
		tasks:     tasks,
		generator: generator,
		logger:    logger,
	}
}

// GenerateParams are the user-supplied inputs for plan generation.
type GenerateParams struct {
	UserID      string
	Title       string
	Description string
	TargetDate  string
	DailyTime   string
	GoalType    string
	SkillLevel  string
}

// Generated bundles the persisted goal with its day-1 tasks.
type Generated struct {
	Goal  *domain.Goal  `json:"goal"`
	Tasks []domain.Task `json:"tasks"`
}

// Generate creates a goal with an AI-built plan, makes it the user's single
// active goal, and seeds the day-1 tasks.
func (uc *UseCase) Generate(ctx context.Context, params GenerateParams) (*Generated, error) {
	if params.UserID == "" || params.Title == "" {
		return nil, domain.ErrInvalidPayload
	}

	totalDays := totalDaysUntil(params.TargetDate, time.Now())

	plan := uc.generator.GeneratePlan(ctx, ai.PlanRequest{
		Title:      params.Title,
		TargetDate: params.TargetDate,
		DailyTime:  params.DailyTime,
		GoalType:   params.GoalType,
		SkillLevel: params.SkillLevel,
		TotalDays:  totalDays,
	})

	goal := &domain.Goal{
		UserID:      params.UserID,
		Title:       plan.GoalTitle,
		Description: params.Description,
		TargetDate:  params.TargetDate,
		DailyTime:   params.DailyTime,
		GoalType:    params.GoalType,
		SkillLevel:  params.SkillLevel,
		TotalDays:   plan.TotalDays,
		Summary:     plan.Summary,
		Phases:      plan.Phases,
		Rules:       plan.Rules,
		FullPlan:    plan.FullPlan,
	}
	if goal.Title == "" {
		goal.Title = params.Title
	}
	if goal.Description == "" {
		goal.Description = "AI generated " + params.GoalType + " goal"
	}
	goal.TotalTasks = goal.CountPlannedTasks()

	created, err := uc.goals.Create(ctx, goal)
	if err != nil {
		return nil, err
	}

	// Single-statement switch: this goal becomes active, every other goal of
	// the user is deactivated at the same time.
	activated, err := uc.goals.Activate(ctx, params.UserID, created.ID)
	if err != nil {
		return nil, err
	}

	tasks, err := uc.seedDayOne(ctx, activated, plan)
	if err != nil {
		uc.logger.Error("day-1 task seeding failed", zap.String("goal_id", activated.ID), zap.Error(err))
	}

	uc.logger.Info("goal generated",
		zap.String("goal_id", activated.ID),
		zap.Int("total_days", activated.TotalDays),
		zap.Int("day1_tasks", len(tasks)))

	return &Generated{Goal: activated, Tasks: tasks}, nil
}

func (uc *UseCase) seedDayOne(ctx context.Context, goal *domain.Goal, plan *domain.GeneratedPlan) ([]domain.Task, error) {
	day1, ok := (&domain.Goal{FullPlan: plan.FullPlan}).PlanForDay(1)
	if !ok || len(day1.Tasks) == 0 {
		return nil, nil
	}

	today := time.Now().Format(domain.DateLayout)
	tasks := make([]domain.Task, 0, len(day1.Tasks))
	for _, t := range day1.Tasks {
		task := domain.Task{
			GoalID:     goal.ID,
			UserID:     goal.UserID,
			Title:      t.Title,
			Status:     domain.TaskStatusPending,
			Time:       t.Time,
			Type:       t.Type,
			Difficulty: t.Difficulty,
			DayNumber:  1,
			Date:       today,
		}
		if task.Time <= 0 {
			task.Time = 30
		}
		if task.Type == "" {
			task.Type = "Practice"
		}
		if task.Difficulty == "" {
			task.Difficulty = "Easy"
		}
		tasks = append(tasks, task)
	}
	return uc.tasks.CreateBatch(ctx, tasks)
}

// Create stores a bare goal without plan generation.
func (uc *UseCase) Create(ctx context.Context, userID, title, description string) (*domain.Goal, error) {
	if userID == "" || title == "" {
		return nil, domain.ErrInvalidPayload
	}
	return uc.goals.Create(ctx, &domain.Goal{
		UserID:      userID,
		Title:       title,
		Description: description,
		TotalDays:   defaultTotalDays,
	})
}

// List returns the user's goals, newest first.
func (uc *UseCase) List(ctx context.Context, userID string) ([]domain.Goal, error) {
	return uc.goals.List(ctx, repository.GoalFilter{UserID: userID})
}

// Get returns a goal with its full task list.
type GoalDetail struct {
	Goal  *domain.Goal  `json:"goal"`
	Tasks []domain.Task `json:"tasks"`
}

func (uc *UseCase) Get(ctx context.Context, userID, goalID string) (*GoalDetail, error) {
	goal, err := uc.goals.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{GoalID: goalID})
	if err != nil {
		return nil, err
	}
	return &GoalDetail{Goal: goal, Tasks: tasks}, nil
}

// Activate makes the goal the user's single active goal.
func (uc *UseCase) Activate(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	return uc.goals.Activate(ctx, userID, goalID)
}

// Delete removes a goal and cascades to its tasks.
func (uc *UseCase) Delete(ctx context.Context, userID, goalID string) error {
	if err := uc.goals.Delete(ctx, userID, goalID); err != nil {
		return err
	}
	if err := uc.tasks.DeleteByGoal(ctx, goalID); err != nil {
		uc.logger.Error("task cascade delete failed", zap.String("goal_id", goalID), zap.Error(err))
		return err
	}
	return nil
}

// totalDaysUntil derives the plan length from the target date, falling back
// to a month when the date is absent or malformed.
func totalDaysUntil(targetDate string, now time.Time) int {
	if targetDate == "" {
		return defaultTotalDays
	}
	target, err := time.Parse(domain.DateLayout, targetDate)
	if err != nil {
		return defaultTotalDays
	}
	diff := target.Sub(now)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
