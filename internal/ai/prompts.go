package ai

import (
	"fmt"
	"strings"
)

// PlanRequest carries the inputs for full-plan generation.
type PlanRequest struct {
	Title      string
	TargetDate string
	DailyTime  string
	GoalType   string
	SkillLevel string
	TotalDays  int
}

// DailyContext carries the inputs for today's task generation.
type DailyContext struct {
	GoalTitle       string
	GoalType        string
	CurrentDay      int
	TotalDays       int
	DailyTime       string
	CurrentPhase    string
	YesterdayStatus string
	Mood            string
}

// SummaryContext carries the analytics snapshot fed into the dashboard
// summary prompt.
type SummaryContext struct {
	GoalTitle     string
	TotalDays     int
	CurrentDay    int
	DaysCompleted int
	DaysMissed    int
	CurrentStreak int
	WeeklyRate    int
	AvgTime       string
	CurrentPhase  string
	TodayStatus   string
}

// NotificationContext carries the inputs for notification copy generation.
type NotificationContext struct {
	UserName        string
	GoalTitle       string
	CurrentDay      int
	TotalDays       int
	TodayStatus     string
	YesterdayStatus string
	CurrentStreak   int
	WeeklyRate      int
	TimeOfDay       string
	Mood            string
}

func planPrompt(req PlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a mission-commander style goal coach. Create a complete execution plan.\n")
	fmt.Fprintf(&b, "Goal: %q\nDuration: %d days\nDaily time: %s\nSkill level: %s\nGoal type: %s\n\n",
		req.Title, req.TotalDays, req.DailyTime, req.SkillLevel, req.GoalType)
	fmt.Fprintf(&b, "Every day from 1 to %d must be mapped. Tone: supportive and direct.\n", req.TotalDays)
	b.WriteString(`Return ONLY a valid JSON object with this structure:
{
  "goalTitle": "string",
  "totalDays": number,
  "summary": "strategic vision",
  "fullPlan": [{"day": 1, "theme": "Kickoff", "tasks": [{"title": "string", "time": 30}]}],
  "phases": [{"phase": "Phase Name", "weeks": [1, 2], "focus": "Focus Area"}],
  "rules": {"bufferDaysPerWeek": 1, "maxTasksPerDay": 3, "skipLogic": "advice"}
}`)
	return b.String()
}

func dailyPrompt(c DailyContext) string {
	mood := c.Mood
	if mood == "" {
		mood = "neutral"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You are a mission-commander style goal coach guiding the user through today.\n")
	fmt.Fprintf(&b, "Goal: %s (day %d of %d)\nPhase: %s\nYesterday: %s\nMood: %s\nAvailable time: %s\n\n",
		c.GoalTitle, c.CurrentDay, c.TotalDays, c.CurrentPhase, c.YesterdayStatus, mood, c.DailyTime)
	fmt.Fprintf(&b, `Generate today's actionable mission. Return ONLY a valid JSON object:
{
  "day": %d,
  "focus": "brief focus",
  "microHabit": "tiny 2-minute win",
  "tasks": [{"title": "Action verb + result", "time": 20, "type": "Practice", "difficulty": "Easy"}],
  "coachMessage": "short encouragement"
}`, c.CurrentDay)
	return b.String()
}

func summaryPrompt(c SummaryContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an analytical goal coach reviewing the user's cockpit.\n")
	fmt.Fprintf(&b, "Goal: %s\nCompleted: %d/%d days\nDay: %d\nStreak: %d days\nMissed: %d days\nWeekly rate: %d%%\nAvg focus: %s\nPhase: %s\nToday: %s\n\n",
		c.GoalTitle, c.DaysCompleted, c.TotalDays, c.CurrentDay, c.CurrentStreak,
		c.DaysMissed, c.WeeklyRate, c.AvgTime, c.CurrentPhase, c.TodayStatus)
	fmt.Fprintf(&b, `Return ONLY a valid JSON object:
{
  "goalTitle": %q,
  "progressPercentage": number,
  "dayStatusText": "day %d status line",
  "streakText": "%d day streak",
  "aiInsight": "supportive insight",
  "primaryAction": "the next win"
}`, c.GoalTitle, c.CurrentDay, c.CurrentStreak)
	return b.String()
}

func notificationPrompt(c NotificationContext) string {
	return fmt.Sprintf(`Generate ONE short, friendly mission notification. Not robotic.
User: %s, Goal: %s, Day: %d of %d, Streak: %d, Today: %s, Time of day: %s, Mood: %s
Return ONLY a valid JSON object: {"title": "str", "message": "str", "cta": "str"}`,
		c.UserName, c.GoalTitle, c.CurrentDay, c.TotalDays, c.CurrentStreak,
		c.TodayStatus, c.TimeOfDay, c.Mood)
}
