package domain

import "time"

// Task status values. A task only ever moves forward: pending is the sole
// non-terminal state.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
	TaskStatusSkipped   = "skipped"
)

// DateLayout is the calendar-day format used for Task.Date.
const DateLayout = "2006-01-02"

// Task is a single dated, status-tracked unit of work under a goal.
// Date is immutable after creation.
type Task struct {
	ID         string    `json:"id"`
	GoalID     string    `json:"goal_id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	Time       int       `json:"time"`
	Type       string    `json:"type,omitempty"`
	Difficulty string    `json:"difficulty,omitempty"`
	DayNumber  int       `json:"day_number"`
	Date       string    `json:"date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == TaskStatusCompleted
}

// IsValidTaskStatus reports whether s names a known task status.
func IsValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusSkipped:
		return true
	}
	return false
}

// CanTransition reports whether a task may move from one status to another.
// Completed and skipped are terminal; re-applying the current status is
// allowed so retried updates stay idempotent.
func CanTransition(from, to string) bool {
	if !IsValidTaskStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	return from == TaskStatusPending || from == ""
}
