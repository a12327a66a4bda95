// Package insights computes the analytics endpoints: raw stats, the
// AI-written dashboard summary, and notification copy. All metrics are
// recomputed from the task records on every call.
package insights

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/internal/ai"
	"github.com/goalpilot/backend/internal/analytics"
	"github.com/goalpilot/backend/repository"
)

// InsightGenerator is the slice of the AI generator this use case needs.
type InsightGenerator interface {
	GenerateDashboardSummary(ctx context.Context, c ai.SummaryContext) *domain.DashboardSummary
	GenerateNotification(ctx context.Context, c ai.NotificationContext) *domain.Notification
}

type UseCase struct {
	goals     repository.GoalRepository
	tasks     repository.TaskRepository
	generator InsightGenerator
	logger    *zap.Logger
}

func New(goals repository.GoalRepository, tasks repository.TaskRepository, generator InsightGenerator, logger *zap.Logger) *UseCase {
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

// Stats is the raw (non-generated) analytics payload.
type Stats struct {
	History         []analytics.DayHistory `json:"history"`
	Streak          int                    `json:"streak"`
	TotalCompleted  int                    `json:"totalCompleted"`
	MissedYesterday bool                   `json:"missedYesterday"`
}

// GetStats computes the trailing 7-day history, streak and miss flags across
// all of the user's goals.
func (uc *UseCase) GetStats(ctx context.Context, userID string) (*Stats, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	now := time.Now()

	totalCompleted := 0
	for _, t := range tasks {
		if t.Status == domain.TaskStatusCompleted {
			totalCompleted++
		}
	}

	yesterday := now.AddDate(0, 0, -1).Format(domain.DateLayout)
	yTotal, yCompleted := analytics.DateStatus(tasks, yesterday)

	return &Stats{
		History:         analytics.History(tasks, now, 7),
		Streak:          analytics.Streak(tasks, now),
		TotalCompleted:  totalCompleted,
		MissedYesterday: yTotal > 0 && yCompleted < yTotal,
	}, nil
}

// GoalBrief is the compact listing of a non-active goal on the dashboard.
type GoalBrief struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	GoalType       string `json:"goal_type,omitempty"`
	TotalDays      int    `json:"total_days"`
	CompletedTasks int    `json:"completed_tasks"`
}

// Summary is the dashboard payload: the generated copy plus the raw metrics
// it was derived from.
type Summary struct {
	*domain.DashboardSummary
	GoalID     string             `json:"goalId"`
	Metrics    analytics.Snapshot `json:"metrics"`
	OtherGoals []GoalBrief        `json:"otherGoals"`
}

// GetSummary builds the cockpit summary for the user's active goal. When no
// goal is active but goals exist, the most recent one is activated first.
func (uc *UseCase) GetSummary(ctx context.Context, userID string) (*Summary, error) {
	goal, err := uc.activeOrLatest(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{GoalID: goal.ID})
	if err != nil {
		return nil, err
	}

	snap := analytics.Compute(goal, tasks, time.Now())

	summary := uc.generator.GenerateDashboardSummary(ctx, ai.SummaryContext{
		GoalTitle:     goal.Title,
		TotalDays:     goal.TotalDays,
		CurrentDay:    snap.DayNumber,
		DaysCompleted: snap.DaysCompleted,
		DaysMissed:    snap.MissedDays,
		CurrentStreak: snap.Streak,
		WeeklyRate:    snap.WeeklyRate,
		AvgTime:       snap.AvgFocusTime,
		CurrentPhase:  snap.CurrentPhase,
		TodayStatus:   snap.TodayStatus,
	})
	if summary.ProgressPercentage == 0 {
		summary.ProgressPercentage = snap.ProgressPercentage
	}

	others, err := uc.otherGoals(ctx, userID, goal.ID)
	if err != nil {
		uc.logger.Warn("listing other goals failed", zap.Error(err))
	}

	return &Summary{
		DashboardSummary: summary,
		GoalID:           goal.ID,
		Metrics:          snap,
		OtherGoals:       others,
	}, nil
}

// NotificationParams are the caller-supplied notification inputs.
type NotificationParams struct {
	UserName  string
	Mood      string
	TimeOfDay string
}

// GetNotification produces push-notification copy for the user's current
// goal state. With no goals at all, a static starter nudge is returned.
func (uc *UseCase) GetNotification(ctx context.Context, userID string, params NotificationParams) (*domain.Notification, error) {
	goal, err := uc.activeOrLatest(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveGoal) {
			return &domain.Notification{
				Title:   "Start a Mission! 🚀",
				Message: "Set your first goal to begin the journey.",
				CTA:     "Create Goal",
			}, nil
		}
		return nil, err
	}

	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{GoalID: goal.ID})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	timeOfDay := params.TimeOfDay
	if timeOfDay == "" {
		timeOfDay = "morning"
	}

	return uc.generator.GenerateNotification(ctx, ai.NotificationContext{
		UserName:        params.UserName,
		GoalTitle:       goal.Title,
		CurrentDay:      analytics.DayNumber(goal.CreatedAt, now),
		TotalDays:       goal.TotalDays,
		TodayStatus:     analytics.TodayStatus(tasks, now),
		YesterdayStatus: analytics.YesterdayStatus(tasks, now),
		CurrentStreak:   analytics.Streak(tasks, now),
		WeeklyRate:      analytics.WeeklyRate(tasks, now),
		TimeOfDay:       timeOfDay,
		Mood:            params.Mood,
	}), nil
}

// activeOrLatest returns the active goal, activating the newest goal when
// none is flagged active.
func (uc *UseCase) activeOrLatest(ctx context.Context, userID string) (*domain.Goal, error) {
	goal, err := uc.goals.GetActive(ctx, userID)
	if err == nil {
		return goal, nil
	}
	if !errors.Is(err, domain.ErrNoActiveGoal) {
		return nil, err
	}

	goals, err := uc.goals.List(ctx, repository.GoalFilter{UserID: userID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, domain.ErrNoActiveGoal
	}
	return uc.goals.Activate(ctx, userID, goals[0].ID)
}

func (uc *UseCase) otherGoals(ctx context.Context, userID, activeID string) ([]GoalBrief, error) {
	goals, err := uc.goals.List(ctx, repository.GoalFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	briefs := make([]GoalBrief, 0, len(goals))
	for _, g := range goals {
		if g.ID == activeID {
			continue
		}
		briefs = append(briefs, GoalBrief{
			ID:             g.ID,
			Title:          g.Title,
			GoalType:       g.GoalType,
			TotalDays:      g.TotalDays,
			CompletedTasks: g.CompletedTasks,
		})
	}
	return briefs, nil
}
