package domain

import "time"

// Phase is a named sub-range of a goal's plan spanning a week interval.
type Phase struct {
	Name  string `json:"phase"`
	Weeks [2]int `json:"weeks"`
	Focus string `json:"focus,omitempty"`
}

// Contains reports whether the given week number falls inside the phase range.
func (p Phase) Contains(week int) bool {
	return week >= p.Weeks[0] && week <= p.Weeks[1]
}

// Rules carries the pacing constraints attached to a generated plan.
type Rules struct {
	BufferDaysPerWeek int    `json:"bufferDaysPerWeek"`
	MaxTasksPerDay    int    `json:"maxTasksPerDay"`
	SkipLogic         string `json:"skipLogic,omitempty"`
}

// PlanTask is a single task entry inside a day of the full plan.
type PlanTask struct {
	Title      string `json:"title"`
	Time       int    `json:"time"`
	Type       string `json:"type,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// PlanDay is one day of the day-wise execution plan.
type PlanDay struct {
	Day   int        `json:"day"`
	Theme string     `json:"theme,omitempty"`
	Tasks []PlanTask `json:"tasks"`
}

// Goal is a user's tracked objective with its generated multi-day plan.
// CreatedAt anchors all day-number computations.
type Goal struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	IsActive       bool      `json:"is_active"`
	TargetDate     string    `json:"target_date,omitempty"`
	DailyTime      string    `json:"daily_time,omitempty"`
	GoalType       string    `json:"goal_type,omitempty"`
	SkillLevel     string    `json:"skill_level,omitempty"`
	TotalDays      int       `json:"total_days"`
	Summary        string    `json:"summary,omitempty"`
	Phases         []Phase   `json:"phases,omitempty"`
	Rules          Rules     `json:"rules"`
	FullPlan       []PlanDay `json:"full_plan,omitempty"`
	TotalTasks     int       `json:"total_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PlanForDay returns the plan entry for the given day number, if present.
func (g *Goal) PlanForDay(day int) (PlanDay, bool) {
	if g == nil {
		return PlanDay{}, false
	}
	for _, d := range g.FullPlan {
		if d.Day == day {
			return d, true
		}
	}
	return PlanDay{}, false
}

// CountPlannedTasks sums the task entries across the full plan.
func (g *Goal) CountPlannedTasks() int {
	if g == nil {
		return 0
	}
	total := 0
	for _, d := range g.FullPlan {
		total += len(d.Tasks)
	}
	return total
}
