package ai

import (
	"fmt"

	"github.com/goalpilot/backend/domain"
)

// Operation names used in fallback selection and logging.
const (
	OpGeneratePlan         = "generate_plan"
	OpGenerateDailyTasks   = "generate_daily_tasks"
	OpGenerateSummary      = "generate_dashboard_summary"
	OpGenerateNotification = "generate_notification"
)

// Fallback payloads per operation. Generation must never surface a raw error
// to the end user, so each operation has a minimal well-formed default built
// from its request context.

func fallbackPlan(req PlanRequest) *domain.GeneratedPlan {
	return &domain.GeneratedPlan{
		GoalTitle: req.Title,
		TotalDays: req.TotalDays,
		Summary:   "The roadmap could not be generated right now, but your target is locked in. 🚀",
		FullPlan: []domain.PlanDay{{
			Day:   1,
			Theme: "Self-Start",
			Tasks: []domain.PlanTask{{Title: fmt.Sprintf("Research the basics of %s", req.Title), Time: 30}},
		}},
		Phases: []domain.Phase{{Name: "Kickoff", Weeks: [2]int{1, 1}, Focus: "Fundamentals"}},
		Rules:  domain.Rules{BufferDaysPerWeek: 1, MaxTasksPerDay: 3, SkipLogic: "Stay consistent."},
	}
}

func fallbackDaily(c DailyContext) *domain.DailyPlan {
	return &domain.DailyPlan{
		Day:   c.CurrentDay,
		Focus: "Keep moving forward",
		Tasks: []domain.PlanTask{{
			Title:      fmt.Sprintf("Continue work on %s", c.GoalTitle),
			Time:       30,
			Type:       "Practice",
			Difficulty: "Medium",
		}},
		CoachMessage: "One small step today, one giant leap tomorrow! 🚀",
	}
}

func fallbackSummary(c SummaryContext) *domain.DashboardSummary {
	return &domain.DashboardSummary{
		GoalTitle:     c.GoalTitle,
		StreakText:    fmt.Sprintf("%d Day Streak", c.CurrentStreak),
		AIInsight:     "You're doing great! Keep it up. 🚀",
		PrimaryAction: "Complete today's priority task.",
	}
}

func fallbackNotification(c NotificationContext) *domain.Notification {
	return &domain.Notification{
		Title:   "Keep Going! 🚀",
		Message: fmt.Sprintf("Time to work on %s.", c.GoalTitle),
		CTA:     "Open App",
	}
}
