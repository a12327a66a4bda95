package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Buffered write kinds. Only small follow-up writes are buffered: a task's
// status transition and a goal's counter refresh.
const (
	EntityTaskStatus   = "task_status"
	EntityGoalCounters = "goal_counters"
)

// TaskStatusData is the payload of an EntityTaskStatus item.
type TaskStatusData struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// GoalCountersData is the payload of an EntityGoalCounters item.
type GoalCountersData struct {
	GoalID string `json:"goal_id"`
}

// Item is one write waiting to be replayed against Postgres.
type Item struct {
	ID        string          `json:"id"`
	Entity    string          `json:"entity"`
	Data      json.RawMessage `json:"data"`
	Priority  int             `json:"priority"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority <= 0 || i.Priority > 5 {
		i.Priority = 3
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
