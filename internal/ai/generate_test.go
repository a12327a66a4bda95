package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, respond func(key string) (string, error)) *Generator {
	t.Helper()
	pool, err := NewPool([]string{"test-key"})
	require.NoError(t, err)
	factory, _ := stubFactory(respond)
	return NewGenerator(NewGateway(pool, factory, 0, nil), nil)
}

func TestGeneratePlan(t *testing.T) {
	t.Run("parses model output", func(t *testing.T) {
		g := newTestGenerator(t, func(string) (string, error) {
			return "```json\n" + `{
				"goalTitle": "Learn Go",
				"totalDays": 14,
				"summary": "s",
				"fullPlan": [{"day": 1, "theme": "Kickoff", "tasks": [{"title": "Install Go", "time": 20}]}],
				"phases": [{"phase": "Basics", "weeks": [1, 2], "focus": "Syntax"}]
			}` + "\n```", nil
		})

		plan := g.GeneratePlan(context.Background(), PlanRequest{Title: "Learn Go", TotalDays: 14})
		require.NotNil(t, plan)
		assert.Equal(t, "Learn Go", plan.GoalTitle)
		assert.Equal(t, 14, plan.TotalDays)
		require.Len(t, plan.FullPlan, 1)
		assert.Equal(t, "Install Go", plan.FullPlan[0].Tasks[0].Title)
	})

	t.Run("falls back on unparsable output", func(t *testing.T) {
		g := newTestGenerator(t, func(string) (string, error) {
			return "sorry, I cannot help with that", nil
		})

		plan := g.GeneratePlan(context.Background(), PlanRequest{Title: "Learn Go", TotalDays: 14})
		require.NotNil(t, plan)
		assert.Equal(t, "Learn Go", plan.GoalTitle)
		assert.Equal(t, 14, plan.TotalDays)
		require.NotEmpty(t, plan.FullPlan)
		assert.Equal(t, 1, plan.FullPlan[0].Day)
	})

	t.Run("falls back on upstream error", func(t *testing.T) {
		g := newTestGenerator(t, func(string) (string, error) {
			return "", errQuota
		})

		plan := g.GeneratePlan(context.Background(), PlanRequest{Title: "Learn Go", TotalDays: 7})
		require.NotNil(t, plan)
		assert.NotEmpty(t, plan.FullPlan)
	})

	t.Run("floors duration at one day", func(t *testing.T) {
		g := newTestGenerator(t, func(string) (string, error) {
			return "", errQuota
		})

		plan := g.GeneratePlan(context.Background(), PlanRequest{Title: "Sprint", TotalDays: -3})
		assert.Equal(t, 1, plan.TotalDays)
	})

	t.Run("backfills a missing title", func(t *testing.T) {
		g := newTestGenerator(t, func(string) (string, error) {
			return `{"totalDays": 10, "fullPlan": []}`, nil
		})

		plan := g.GeneratePlan(context.Background(), PlanRequest{Title: "Run 5k", TotalDays: 10})
		assert.Equal(t, "Run 5k", plan.GoalTitle)
	})
}

func TestGenerateDailyTasks(t *testing.T) {
	t.Run("empty task list falls back", func(t *testing.T) {
		g := newTestGenerator(t, func(string) (string, error) {
			return `{"day": 3, "focus": "drills", "tasks": []}`, nil
		})

		plan := g.GenerateDailyTasks(context.Background(), DailyContext{GoalTitle: "Learn Go", CurrentDay: 3})
		assert.Equal(t, 3, plan.Day)
		require.NotEmpty(t, plan.Tasks)
		assert.Contains(t, plan.Tasks[0].Title, "Learn Go")
	})

	t.Run("missing day is backfilled from context", func(t *testing.T) {
		g := newTestGenerator(t, func(string) (string, error) {
			return `{"focus": "drills", "tasks": [{"title": "Practice loops", "time": 25}]}`, nil
		})

		plan := g.GenerateDailyTasks(context.Background(), DailyContext{GoalTitle: "Learn Go", CurrentDay: 5})
		assert.Equal(t, 5, plan.Day)
		assert.Equal(t, "Practice loops", plan.Tasks[0].Title)
	})
}

func TestGenerateDashboardSummary(t *testing.T) {
	t.Run("never propagates failure", func(t *testing.T) {
		g := newTestGenerator(t, func(string) (string, error) {
			return "", errQuota
		})

		summary := g.GenerateDashboardSummary(context.Background(), SummaryContext{
			GoalTitle:     "Learn Go",
			CurrentStreak: 4,
		})
		require.NotNil(t, summary)
		assert.Equal(t, "Learn Go", summary.GoalTitle)
		assert.Contains(t, summary.StreakText, "4")
	})
}

func TestGenerateNotification(t *testing.T) {
	t.Run("fallback keeps the goal in the message", func(t *testing.T) {
		g := newTestGenerator(t, func(string) (string, error) {
			return "no json here", nil
		})

		n := g.GenerateNotification(context.Background(), NotificationContext{GoalTitle: "Learn Go"})
		require.NotNil(t, n)
		assert.NotEmpty(t, n.Title)
		assert.Contains(t, n.Message, "Learn Go")
	})
}
