// Package analytics derives progress metrics from a goal's creation time and
// its dated task records. Every function is a pure computation over inputs the
// caller already fetched; nothing here touches storage or caches results.
package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/goalpilot/backend/domain"
)

// Day status labels shared with the generation prompts.
const (
	StatusCompleted  = "completed"
	StatusPending    = "pending"
	StatusSkipped    = "skipped"
	StatusInProgress = "in_progress"
	StatusNotStarted = "not_started"
)

// DayNumber returns the 1-based mission day for a goal created at createdAt.
// The value is the ceiling of the elapsed time in days, never below 1.
func DayNumber(createdAt, now time.Time) int {
	diff := now.Sub(createdAt)
	if diff < 0 {
		diff = -diff
	}
	day := int(math.Ceil(diff.Hours() / 24))
	if day < 1 {
		day = 1
	}
	return day
}

// CurrentWeek converts a day number into an integer week number (day 1-7 is
// week 1).
func CurrentWeek(dayNumber int) int {
	if dayNumber < 1 {
		dayNumber = 1
	}
	return (dayNumber + 6) / 7
}

// CurrentPhase returns the name of the first phase whose week range contains
// the current week, or fallback when none matches.
func CurrentPhase(phases []domain.Phase, dayNumber int, fallback string) string {
	week := CurrentWeek(dayNumber)
	for _, p := range phases {
		if p.Contains(week) {
			return p.Name
		}
	}
	return fallback
}

// groupByDate buckets tasks by their calendar-day string.
func groupByDate(tasks []domain.Task) map[string][]domain.Task {
	byDate := make(map[string][]domain.Task, len(tasks))
	for _, t := range tasks {
		if t.Date == "" {
			continue
		}
		byDate[t.Date] = append(byDate[t.Date], t)
	}
	return byDate
}

// fullyCompleted reports whether the date has at least one task and every
// task on it is completed.
func fullyCompleted(byDate map[string][]domain.Task, date string) bool {
	dayTasks := byDate[date]
	if len(dayTasks) == 0 {
		return false
	}
	for _, t := range dayTasks {
		if t.Status != domain.TaskStatusCompleted {
			return false
		}
	}
	return true
}

// Streak counts consecutive fully-completed calendar days ending at today,
// or at yesterday when today is not fully completed yet.
func Streak(tasks []domain.Task, now time.Time) int {
	byDate := groupByDate(tasks)

	cursor := now
	if !fullyCompleted(byDate, cursor.Format(domain.DateLayout)) {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for fullyCompleted(byDate, cursor.Format(domain.DateLayout)) {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// WeeklyRate returns the completion percentage among tasks created in the
// trailing seven days, rounded to the nearest integer. Zero when no tasks
// were created in that window.
func WeeklyRate(tasks []domain.Task, now time.Time) int {
	cutoff := now.AddDate(0, 0, -7)
	total, completed := 0, 0
	for _, t := range tasks {
		if t.CreatedAt.Before(cutoff) {
			continue
		}
		total++
		if t.Status == domain.TaskStatusCompleted {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// MissedDays counts distinct dates, excluding today, with at least one task
// left incomplete.
func MissedDays(tasks []domain.Task, now time.Time) int {
	today := now.Format(domain.DateLayout)
	byDate := groupByDate(tasks)

	missed := 0
	for date := range byDate {
		if date == today {
			continue
		}
		if !fullyCompleted(byDate, date) {
			missed++
		}
	}
	return missed
}

// DaysCompleted counts distinct dates carrying at least one completed task.
func DaysCompleted(tasks []domain.Task) int {
	dates := make(map[string]struct{})
	for _, t := range tasks {
		if t.Status == domain.TaskStatusCompleted && t.Date != "" {
			dates[t.Date] = struct{}{}
		}
	}
	return len(dates)
}

// AvgFocusTime reports the average completed minutes per completed day,
// formatted as "<n>m". "0m" when nothing is completed yet.
func AvgFocusTime(tasks []domain.Task) string {
	days := DaysCompleted(tasks)
	if days == 0 {
		return "0m"
	}
	total := 0
	for _, t := range tasks {
		if t.Status == domain.TaskStatusCompleted {
			total += t.Time
		}
	}
	return fmt.Sprintf("%dm", int(math.Round(float64(total)/float64(days))))
}

// DateStatus summarizes one calendar day of tasks.
func DateStatus(tasks []domain.Task, date string) (total, completed int) {
	for _, t := range tasks {
		if t.Date != date {
			continue
		}
		total++
		if t.Status == domain.TaskStatusCompleted {
			completed++
		}
	}
	return total, completed
}

// TodayStatus labels today's progress for prompt context: completed when all
// of today's tasks are done, in_progress when some exist, not_started when
// none do.
func TodayStatus(tasks []domain.Task, now time.Time) string {
	total, completed := DateStatus(tasks, now.Format(domain.DateLayout))
	switch {
	case total == 0:
		return StatusNotStarted
	case completed == total:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// YesterdayStatus labels yesterday as completed or skipped; a day with no
// tasks counts as skipped.
func YesterdayStatus(tasks []domain.Task, now time.Time) string {
	date := now.AddDate(0, 0, -1).Format(domain.DateLayout)
	total, completed := DateStatus(tasks, date)
	if total > 0 && completed == total {
		return StatusCompleted
	}
	return StatusSkipped
}

// DayHistory is one entry of the trailing completion history.
type DayHistory struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// History returns per-day completed/total counts for the trailing `days`
// calendar days, oldest first. Days without tasks appear with zero counts.
func History(tasks []domain.Task, now time.Time, days int) []DayHistory {
	if days <= 0 {
		days = 7
	}
	out := make([]DayHistory, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(domain.DateLayout)
		total, completed := DateStatus(tasks, date)
		out = append(out, DayHistory{Date: date, Completed: completed, Total: total})
	}
	return out
}

// Snapshot bundles every derived metric for a goal, recomputed from scratch
// on each call.
type Snapshot struct {
	DayNumber          int    `json:"day_number"`
	CurrentPhase       string `json:"current_phase"`
	Streak             int    `json:"streak"`
	WeeklyRate         int    `json:"weekly_rate"`
	MissedDays         int    `json:"missed_days"`
	DaysCompleted      int    `json:"days_completed"`
	AvgFocusTime       string `json:"avg_focus_time"`
	TodayStatus        string `json:"today_status"`
	YesterdayStatus    string `json:"yesterday_status"`
	ProgressPercentage int    `json:"progress_percentage"`
}

// Compute derives the full snapshot for a goal and its tasks as of now.
func Compute(goal *domain.Goal, tasks []domain.Task, now time.Time) Snapshot {
	if goal == nil {
		return Snapshot{DayNumber: 1, AvgFocusTime: "0m", TodayStatus: StatusNotStarted, YesterdayStatus: StatusSkipped}
	}

	day := DayNumber(goal.CreatedAt, now)
	progress := 0
	if goal.TotalDays > 0 {
		progress = int(math.Round(float64(DaysCompleted(tasks)) / float64(goal.TotalDays) * 100))
		if progress > 100 {
			progress = 100
		}
	}

	return Snapshot{
		DayNumber:          day,
		CurrentPhase:       CurrentPhase(goal.Phases, day, "In Progress"),
		Streak:             Streak(tasks, now),
		WeeklyRate:         WeeklyRate(tasks, now),
		MissedDays:         MissedDays(tasks, now),
		DaysCompleted:      DaysCompleted(tasks),
		AvgFocusTime:       AvgFocusTime(tasks),
		TodayStatus:        TodayStatus(tasks, now),
		YesterdayStatus:    YesterdayStatus(tasks, now),
		ProgressPercentage: progress,
	}
}
