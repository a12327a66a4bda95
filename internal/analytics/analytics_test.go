package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpilot/backend/domain"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func day(offset int) string {
	return now.AddDate(0, 0, offset).Format(domain.DateLayout)
}

func task(date, status string, minutes int) domain.Task {
	return domain.Task{
		Date:      date,
		Status:    status,
		Time:      minutes,
		CreatedAt: now.AddDate(0, 0, -daysBetween(date)),
	}
}

func daysBetween(date string) int {
	d, _ := time.Parse(domain.DateLayout, date)
	return int(now.Sub(d).Hours() / 24)
}

func TestDayNumber(t *testing.T) {
	tests := []struct {
		name      string
		createdAt time.Time
		want      int
	}{
		{"created moments ago", now.Add(-time.Minute), 1},
		{"created 26 hours ago", now.Add(-26 * time.Hour), 2},
		{"created exactly 72 hours ago", now.Add(-72 * time.Hour), 3},
		{"clock skew puts creation in the future", now.Add(time.Hour), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayNumber(tt.createdAt, now))
		})
	}
}

func TestCurrentWeek(t *testing.T) {
	assert.Equal(t, 1, CurrentWeek(1))
	assert.Equal(t, 1, CurrentWeek(7))
	assert.Equal(t, 2, CurrentWeek(8))
	assert.Equal(t, 3, CurrentWeek(15))
	assert.Equal(t, 1, CurrentWeek(0))
}

func TestCurrentPhase(t *testing.T) {
	phases := []domain.Phase{
		{Name: "Foundation", Weeks: [2]int{1, 1}},
		{Name: "Build", Weeks: [2]int{2, 3}},
		{Name: "Polish", Weeks: [2]int{4, 4}},
	}

	t.Run("day 3 lands in week one", func(t *testing.T) {
		assert.Equal(t, "Foundation", CurrentPhase(phases, 3, "In Progress"))
	})

	t.Run("day 10 lands in the second phase", func(t *testing.T) {
		assert.Equal(t, "Build", CurrentPhase(phases, 10, "In Progress"))
	})

	t.Run("past the last phase falls back", func(t *testing.T) {
		assert.Equal(t, "In Progress", CurrentPhase(phases, 40, "In Progress"))
	})

	t.Run("no phases at all", func(t *testing.T) {
		assert.Equal(t, "In Progress", CurrentPhase(nil, 1, "In Progress"))
	})
}

func TestStreak(t *testing.T) {
	t.Run("three consecutive completed days including today", func(t *testing.T) {
		tasks := []domain.Task{
			task(day(0), domain.TaskStatusCompleted, 30),
			task(day(-1), domain.TaskStatusCompleted, 30),
			task(day(-2), domain.TaskStatusCompleted, 30),
		}
		assert.Equal(t, 3, Streak(tasks, now))
	})

	t.Run("unfinished today falls back to yesterday", func(t *testing.T) {
		tasks := []domain.Task{
			task(day(0), domain.TaskStatusPending, 30),
			task(day(-1), domain.TaskStatusCompleted, 30),
			task(day(-2), domain.TaskStatusCompleted, 30),
		}
		assert.Equal(t, 2, Streak(tasks, now))
	})

	t.Run("a gap breaks the streak", func(t *testing.T) {
		tasks := []domain.Task{
			task(day(0), domain.TaskStatusCompleted, 30),
			task(day(-2), domain.TaskStatusCompleted, 30),
			task(day(-3), domain.TaskStatusCompleted, 30),
		}
		assert.Equal(t, 1, Streak(tasks, now))
	})

	t.Run("a partially completed day breaks the streak", func(t *testing.T) {
		tasks := []domain.Task{
			task(day(0), domain.TaskStatusCompleted, 30),
			task(day(-1), domain.TaskStatusCompleted, 30),
			task(day(-1), domain.TaskStatusSkipped, 15),
			task(day(-2), domain.TaskStatusCompleted, 30),
		}
		assert.Equal(t, 1, Streak(tasks, now))
	})

	t.Run("no tasks at all", func(t *testing.T) {
		assert.Equal(t, 0, Streak(nil, now))
	})
}

func TestWeeklyRate(t *testing.T) {
	t.Run("rounds to the nearest integer", func(t *testing.T) {
		tasks := []domain.Task{
			task(day(0), domain.TaskStatusCompleted, 30),
			task(day(-1), domain.TaskStatusCompleted, 30),
			task(day(-2), domain.TaskStatusPending, 30),
		}
		// 2 of 3 completed.
		assert.Equal(t, 67, WeeklyRate(tasks, now))
	})

	t.Run("tasks older than a week are excluded", func(t *testing.T) {
		tasks := []domain.Task{
			task(day(-10), domain.TaskStatusPending, 30),
			task(day(0), domain.TaskStatusCompleted, 30),
		}
		assert.Equal(t, 100, WeeklyRate(tasks, now))
	})

	t.Run("no tasks in the window", func(t *testing.T) {
		tasks := []domain.Task{task(day(-10), domain.TaskStatusCompleted, 30)}
		assert.Equal(t, 0, WeeklyRate(tasks, now))
	})
}

func TestMissedDays(t *testing.T) {
	tasks := []domain.Task{
		task(day(0), domain.TaskStatusPending, 30),   // today never counts
		task(day(-1), domain.TaskStatusSkipped, 30),  // missed
		task(day(-2), domain.TaskStatusCompleted, 30),
		task(day(-3), domain.TaskStatusPending, 30),  // missed
	}
	assert.Equal(t, 2, MissedDays(tasks, now))
}

func TestAvgFocusTime(t *testing.T) {
	t.Run("averages over completed days", func(t *testing.T) {
		tasks := []domain.Task{
			task(day(0), domain.TaskStatusCompleted, 30),
			task(day(0), domain.TaskStatusCompleted, 20),
			task(day(-1), domain.TaskStatusCompleted, 40),
			task(day(-1), domain.TaskStatusPending, 99),
		}
		// (30+20+40) over 2 days.
		assert.Equal(t, "45m", AvgFocusTime(tasks))
	})

	t.Run("nothing completed yet", func(t *testing.T) {
		tasks := []domain.Task{task(day(0), domain.TaskStatusPending, 30)}
		assert.Equal(t, "0m", AvgFocusTime(tasks))
	})
}

func TestTodayStatus(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		assert.Equal(t, StatusNotStarted, TodayStatus(nil, now))
	})

	t.Run("in progress", func(t *testing.T) {
		tasks := []domain.Task{
			task(day(0), domain.TaskStatusCompleted, 30),
			task(day(0), domain.TaskStatusPending, 30),
		}
		assert.Equal(t, StatusInProgress, TodayStatus(tasks, now))
	})

	t.Run("completed", func(t *testing.T) {
		tasks := []domain.Task{task(day(0), domain.TaskStatusCompleted, 30)}
		assert.Equal(t, StatusCompleted, TodayStatus(tasks, now))
	})
}

func TestYesterdayStatus(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		tasks := []domain.Task{task(day(-1), domain.TaskStatusCompleted, 30)}
		assert.Equal(t, StatusCompleted, YesterdayStatus(tasks, now))
	})

	t.Run("partial counts as skipped", func(t *testing.T) {
		tasks := []domain.Task{
			task(day(-1), domain.TaskStatusCompleted, 30),
			task(day(-1), domain.TaskStatusPending, 30),
		}
		assert.Equal(t, StatusSkipped, YesterdayStatus(tasks, now))
	})

	t.Run("no tasks counts as skipped", func(t *testing.T) {
		assert.Equal(t, StatusSkipped, YesterdayStatus(nil, now))
	})
}

func TestHistory(t *testing.T) {
	tasks := []domain.Task{
		task(day(0), domain.TaskStatusCompleted, 30),
		task(day(-1), domain.TaskStatusCompleted, 30),
		task(day(-1), domain.TaskStatusPending, 30),
	}

	history := History(tasks, now, 3)
	require.Len(t, history, 3)

	assert.Equal(t, day(-2), history[0].Date)
	assert.Equal(t, 0, history[0].Total)

	assert.Equal(t, day(-1), history[1].Date)
	assert.Equal(t, 2, history[1].Total)
	assert.Equal(t, 1, history[1].Completed)

	assert.Equal(t, day(0), history[2].Date)
	assert.Equal(t, 1, history[2].Completed)
}

func TestCompute(t *testing.T) {
	t.Run("full snapshot", func(t *testing.T) {
		goal := &domain.Goal{
			TotalDays: 30,
			CreatedAt: now.Add(-50 * time.Hour),
			Phases: []domain.Phase{
				{Name: "Foundation", Weeks: [2]int{1, 1}},
				{Name: "Build", Weeks: [2]int{2, 4}},
			},
		}
		tasks := []domain.Task{
			task(day(0), domain.TaskStatusCompleted, 30),
			task(day(-1), domain.TaskStatusCompleted, 40),
			task(day(-2), domain.TaskStatusCompleted, 20),
		}

		snap := Compute(goal, tasks, now)
		assert.Equal(t, 3, snap.DayNumber)
		assert.Equal(t, "Foundation", snap.CurrentPhase)
		assert.Equal(t, 3, snap.Streak)
		assert.Equal(t, 100, snap.WeeklyRate)
		assert.Equal(t, 0, snap.MissedDays)
		assert.Equal(t, 3, snap.DaysCompleted)
		assert.Equal(t, "30m", snap.AvgFocusTime)
		assert.Equal(t, StatusCompleted, snap.TodayStatus)
		assert.Equal(t, 10, snap.ProgressPercentage)
	})

	t.Run("nil goal yields a safe zero snapshot", func(t *testing.T) {
		snap := Compute(nil, nil, now)
		assert.Equal(t, 1, snap.DayNumber)
		assert.Equal(t, "0m", snap.AvgFocusTime)
		assert.Equal(t, StatusNotStarted, snap.TodayStatus)
	})
}
