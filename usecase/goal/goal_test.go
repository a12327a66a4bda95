package goal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpilot/backend/domain"
	"github.com/goalpilot/backend/internal/ai"
	"github.com/goalpilot/backend/repository"
)

type fakeGoalRepo struct {
	goals  map[string]*domain.Goal
	nextID int
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[string]*domain.Goal)}
}

func (f *fakeGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	if g, ok := f.goals[id]; ok {
		return g, nil
	}
	return nil, domain.ErrGoalNotFound
}

func (f *fakeGoalRepo) GetActive(ctx context.Context, userID string) (*domain.Goal, error) {
	for _, g := range f.goals {
		if g.UserID == userID && g.IsActive {
			return g, nil
		}
	}
	return nil, domain.ErrNoActiveGoal
}

func (f *fakeGoalRepo) List(ctx context.Context, filter repository.GoalFilter) ([]domain.Goal, error) {
	var out []domain.Goal
	for _, g := range f.goals {
		if g.UserID == filter.UserID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGoalRepo) Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	f.nextID++
	goal.ID = fmt.Sprintf("goal-%d", f.nextID)
	goal.CreatedAt = time.Now()
	f.goals[goal.ID] = goal
	return goal, nil
}

func (f *fakeGoalRepo) Activate(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	target, ok := f.goals[goalID]
	if !ok || target.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	for _, g := range f.goals {
		if g.UserID == userID {
			g.IsActive = g.ID == goalID
		}
	}
	return target, nil
}

func (f *fakeGoalRepo) RefreshTaskCounters(ctx context.Context, goalID string) error {
	return nil
}

func (f *fakeGoalRepo) Delete(ctx context.Context, userID, goalID string) error {
	g, ok := f.goals[goalID]
	if !ok || g.UserID != userID {
		return domain.ErrGoalNotFound
	}
	delete(f.goals, goalID)
	return nil
}

type fakeTaskRepo struct {
	created []domain.Task
	deleted []string
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range f.created {
		if t.GoalID == filter.GoalID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) CreateBatch(ctx context.Context, tasks []domain.Task) ([]domain.Task, error) {
	f.created = append(f.created, tasks...)
	return tasks, nil
}

func (f *fakeTaskRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (f *fakeTaskRepo) DeleteByGoal(ctx context.Context, goalID string) error {
	f.deleted = append(f.deleted, goalID)
	return nil
}

type stubPlanner struct {
	plan    *domain.GeneratedPlan
	lastReq ai.PlanRequest
}

func (s *stubPlanner) GeneratePlan(ctx context.Context, req ai.PlanRequest) *domain.GeneratedPlan {
	s.lastReq = req
	return s.plan
}

func TestGenerate(t *testing.T) {
	plan := &domain.GeneratedPlan{
		GoalTitle: "Learn Go",
		TotalDays: 30,
		Summary:   "A month of daily practice.",
		FullPlan: []domain.PlanDay{{
			Day:   1,
			Theme: "Kickoff",
			Tasks: []domain.PlanTask{
				{Title: "Install the toolchain", Time: 20},
				{Title: "Write hello world"},
			},
		}},
		Phases: []domain.Phase{{Name: "Basics", Weeks: [2]int{1, 2}}},
	}

	t.Run("creates, activates and seeds day one", func(t *testing.T) {
		goals := newFakeGoalRepo()
		tasks := &fakeTaskRepo{}
		uc := New(goals, tasks, &stubPlanner{plan: plan}, nil)

		result, err := uc.Generate(context.Background(), GenerateParams{
			UserID: "user-1",
			Title:  "Learn Go",
		})
		require.NoError(t, err)
		require.NotNil(t, result.Goal)
		assert.True(t, result.Goal.IsActive)
		assert.Equal(t, 30, result.Goal.TotalDays)
		assert.Equal(t, 2, result.Goal.TotalTasks)

		require.Len(t, result.Tasks, 2)
		assert.Equal(t, 1, result.Tasks[0].DayNumber)
		assert.Equal(t, domain.TaskStatusPending, result.Tasks[0].Status)
		// Missing generator fields get defaults.
		assert.Equal(t, 30, result.Tasks[1].Time)
		assert.Equal(t, "Practice", result.Tasks[1].Type)
	})

	t.Run("new goal deactivates the previous one", func(t *testing.T) {
		goals := newFakeGoalRepo()
		uc := New(goals, &fakeTaskRepo{}, &stubPlanner{plan: plan}, nil)

		first, err := uc.Generate(context.Background(), GenerateParams{UserID: "user-1", Title: "Goal A"})
		require.NoError(t, err)
		second, err := uc.Generate(context.Background(), GenerateParams{UserID: "user-1", Title: "Goal B"})
		require.NoError(t, err)

		assert.True(t, second.Goal.IsActive)
		assert.False(t, goals.goals[first.Goal.ID].IsActive)
	})

	t.Run("missing title is rejected before generation", func(t *testing.T) {
		planner := &stubPlanner{plan: plan}
		uc := New(newFakeGoalRepo(), &fakeTaskRepo{}, planner, nil)

		_, err := uc.Generate(context.Background(), GenerateParams{UserID: "user-1"})
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
		assert.Empty(t, planner.lastReq.Title)
	})

	t.Run("target date sets the requested duration", func(t *testing.T) {
		planner := &stubPlanner{plan: plan}
		uc := New(newFakeGoalRepo(), &fakeTaskRepo{}, planner, nil)

		target := time.Now().AddDate(0, 0, 14).Format(domain.DateLayout)
		_, err := uc.Generate(context.Background(), GenerateParams{
			UserID:     "user-1",
			Title:      "Run 5k",
			TargetDate: target,
		})
		require.NoError(t, err)
		assert.InDelta(t, 14, planner.lastReq.TotalDays, 1)
	})
}

func TestTotalDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, defaultTotalDays, totalDaysUntil("", now))
	assert.Equal(t, defaultTotalDays, totalDaysUntil("next month", now))
	assert.Equal(t, 10, totalDaysUntil("2026-03-11", now))
	// A past date still produces a positive duration.
	assert.Equal(t, 5, totalDaysUntil("2026-02-25", now))
}

func TestGet(t *testing.T) {
	t.Run("returns goal with tasks", func(t *testing.T) {
		goals := newFakeGoalRepo()
		tasks := &fakeTaskRepo{}
		uc := New(goals, tasks, &stubPlanner{}, nil)

		created, err := goals.Create(context.Background(), &domain.Goal{UserID: "user-1", Title: "Learn Go"})
		require.NoError(t, err)
		tasks.created = []domain.Task{{ID: "t1", GoalID: created.ID}}

		detail, err := uc.Get(context.Background(), "user-1", created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, detail.Goal.ID)
		require.Len(t, detail.Tasks, 1)
	})

	t.Run("hides another user's goal", func(t *testing.T) {
		goals := newFakeGoalRepo()
		uc := New(goals, &fakeTaskRepo{}, &stubPlanner{}, nil)

		created, err := goals.Create(context.Background(), &domain.Goal{UserID: "user-1", Title: "Learn Go"})
		require.NoError(t, err)

		_, err = uc.Get(context.Background(), "intruder", created.ID)
		assert.ErrorIs(t, err, domain.ErrGoalNotFound)
	})
}

func TestDelete(t *testing.T) {
	goals := newFakeGoalRepo()
	tasks := &fakeTaskRepo{}
	uc := New(goals, tasks, &stubPlanner{}, nil)

	created, err := goals.Create(context.Background(), &domain.Goal{UserID: "user-1", Title: "Learn Go"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "user-1", created.ID))
	assert.Equal(t, []string{created.ID}, tasks.deleted)
	assert.Empty(t, goals.goals)
}
