package insights

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/internal/ai"
	"github.com/goalpilot/backend/repository"
)

type fakeGoalRepo struct {
	goals     []domain.Goal
	activated []string
}

func (f *fakeGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	for i := range f.goals {
		if f.goals[i].ID == id {
			return &f.goals[i], nil
		}
	}
	return nil, domain.ErrGoalNotFound
}

func (f *fakeGoalRepo) GetActive(ctx context.Context, userID string) (*domain.Goal, error) {
	for i := range f.goals {
		if f.goals[i].UserID == userID && f.goals[i].IsActive {
			return &f.goals[i], nil
		}
	}
	return nil, domain.ErrNoActiveGoal
}

func (f *fakeGoalRepo) List(ctx context.Context, filter repository.GoalFilter) ([]domain.Goal, error) {
	var out []domain.Goal
	for _, g := range f.goals {
		if g.UserID == filter.UserID {
			out = append(out, g)
		}
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeGoalRepo) Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	return goal, nil
}

func (f *fakeGoalRepo) Activate(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	f.activated = append(f.activated, goalID)
	for i := range f.goals {
		if f.goals[i].UserID == userID {
			f.goals[i].IsActive = f.goals[i].ID == goalID
		}
	}
	return f.GetByID(ctx, goalID)
}

func (f *fakeGoalRepo) RefreshTaskCounters(ctx context.Context, goalID string) error {
	return nil
}

func (f *fakeGoalRepo) Delete(ctx context.Context, userID, goalID string) error {
	return nil
}

type fakeTaskRepo struct {
	tasks []domain.Task
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range f.tasks {
		if filter.GoalID != "" && t.GoalID != filter.GoalID {
			continue
		}
		if filter.UserID != "" && t.UserID != filter.UserID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTaskRepo) CreateBatch(ctx context.Context, tasks []domain.Task) ([]domain.Task, error) {
	return tasks, nil
}

func (f *fakeTaskRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTaskRepo) DeleteByGoal(ctx context.Context, goalID string) error {
	return nil
}

type stubGenerator struct {
	summary      *domain.DashboardSummary
	notification *domain.Notification
	lastSummary  ai.SummaryContext
	lastNotify   ai.NotificationContext
}

func (s *stubGenerator) GenerateDashboardSummary(ctx context.Context, c ai.SummaryContext) *domain.DashboardSummary {
	s.lastSummary = c
	return s.summary
}

func (s *stubGenerator) GenerateNotification(ctx context.Context, c ai.NotificationContext) *domain.Notification {
	s.lastNotify = c
	return s.notification
}

func dated(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(domain.DateLayout)
}

func TestGetStats(t *testing.T) {
	tasks := &fakeTaskRepo{tasks: []domain.Task{
		{UserID: "user-1", Date: dated(0), Status: domain.TaskStatusCompleted, CreatedAt: time.Now()},
		{UserID: "user-1", Date: dated(-1), Status: domain.TaskStatusCompleted, CreatedAt: time.Now().AddDate(0, 0, -1)},
		{UserID: "user-1", Date: dated(-2), Status: domain.TaskStatusPending, CreatedAt: time.Now().AddDate(0, 0, -2)},
	}}
	uc := New(&fakeGoalRepo{}, tasks, &stubGenerator{}, nil)

	stats, err := uc.GetStats(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Streak)
	assert.Equal(t, 2, stats.TotalCompleted)
	assert.False(t, stats.MissedYesterday)
	require.Len(t, stats.History, 7)
	assert.Equal(t, dated(-6), stats.History[0].Date)
	assert.Equal(t, 1, stats.History[6].Completed)
}

func TestGetSummary(t *testing.T) {
	goal := domain.Goal{
		ID:        "goal-1",
		UserID:    "user-1",
		Title:     "Learn Go",
		TotalDays: 30,
		IsActive:  true,
		CreatedAt: time.Now().Add(-30 * time.Hour),
	}

	t.Run("combines generated copy with raw metrics", func(t *testing.T) {
		gen := &stubGenerator{summary: &domain.DashboardSummary{
			GoalTitle: "Learn Go",
			AIInsight: "Strong pace.",
		}}
		tasks := &fakeTaskRepo{tasks: []domain.Task{
			{GoalID: "goal-1", Date: dated(0), Status: domain.TaskStatusCompleted, Time: 30, CreatedAt: time.Now()},
		}}
		uc := New(&fakeGoalRepo{goals: []domain.Goal{goal}}, tasks, gen, nil)

		summary, err := uc.GetSummary(context.Background(), "user-1")
		require.NoError(t, err)

		assert.Equal(t, "goal-1", summary.GoalID)
		assert.Equal(t, "Strong pace.", summary.AIInsight)
		assert.Equal(t, 2, summary.Metrics.DayNumber)
		assert.Equal(t, 1, summary.Metrics.DaysCompleted)
		// Missing percentage is backfilled from the snapshot.
		assert.Equal(t, summary.Metrics.ProgressPercentage, summary.ProgressPercentage)
		// The prompt context mirrors the snapshot.
		assert.Equal(t, 2, gen.lastSummary.CurrentDay)
		assert.Equal(t, "Learn Go", gen.lastSummary.GoalTitle)
	})

	t.Run("activates the newest goal when none is active", func(t *testing.T) {
		inactive := goal
		inactive.IsActive = false
		repo := &fakeGoalRepo{goals: []domain.Goal{inactive}}
		gen := &stubGenerator{summary: &domain.DashboardSummary{}}
		uc := New(repo, &fakeTaskRepo{}, gen, nil)

		summary, err := uc.GetSummary(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "goal-1", summary.GoalID)
		assert.Equal(t, []string{"goal-1"}, repo.activated)
	})

	t.Run("no goals at all propagates not found", func(t *testing.T) {
		uc := New(&fakeGoalRepo{}, &fakeTaskRepo{}, &stubGenerator{}, nil)
		_, err := uc.GetSummary(context.Background(), "user-1")
		assert.ErrorIs(t, err, domain.ErrNoActiveGoal)
	})

	t.Run("other goals are listed without the active one", func(t *testing.T) {
		other := domain.Goal{ID: "goal-2", UserID: "user-1", Title: "Run 5k", TotalDays: 14}
		repo := &fakeGoalRepo{goals: []domain.Goal{goal, other}}
		gen := &stubGenerator{summary: &domain.DashboardSummary{}}
		uc := New(repo, &fakeTaskRepo{}, gen, nil)

		summary, err := uc.GetSummary(context.Background(), "user-1")
		require.NoError(t, err)
		require.Len(t, summary.OtherGoals, 1)
		assert.Equal(t, "goal-2", summary.OtherGoals[0].ID)
	})
}

func TestGetNotification(t *testing.T) {
	t.Run("no goals returns the starter nudge", func(t *testing.T) {
		uc := New(&fakeGoalRepo{}, &fakeTaskRepo{}, &stubGenerator{}, nil)

		n, err := uc.GetNotification(context.Background(), "user-1", NotificationParams{})
		require.NoError(t, err)
		assert.Equal(t, "Start a Mission! 🚀", n.Title)
		assert.Equal(t, "Create Goal", n.CTA)
	})

	t.Run("generated from the goal state", func(t *testing.T) {
		goal := domain.Goal{
			ID:        "goal-1",
			UserID:    "user-1",
			Title:     "Learn Go",
			TotalDays: 30,
			IsActive:  true,
			CreatedAt: time.Now().Add(-30 * time.Hour),
		}
		gen := &stubGenerator{notification: &domain.Notification{Title: "Day 2 awaits"}}
		uc := New(&fakeGoalRepo{goals: []domain.Goal{goal}}, &fakeTaskRepo{}, gen, nil)

		n, err := uc.GetNotification(context.Background(), "user-1", NotificationParams{UserName: "Sam", Mood: "tired"})
		require.NoError(t, err)
		assert.Equal(t, "Day 2 awaits", n.Title)
		assert.Equal(t, "Sam", gen.lastNotify.UserName)
		assert.Equal(t, 2, gen.lastNotify.CurrentDay)
		// Missing time of day gets the default.
		assert.Equal(t, "morning", gen.lastNotify.TimeOfDay)
	})
}
