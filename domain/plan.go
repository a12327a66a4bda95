package domain

// GeneratedPlan is the payload produced by the plan-generation operation.
type GeneratedPlan struct {
	GoalTitle string    `json:"goalTitle"`
	TotalDays int       `json:"totalDays"`
	Summary   string    `json:"summary"`
	FullPlan  []PlanDay `json:"fullPlan"`
	Phases    []Phase   `json:"phases"`
	Rules     Rules     `json:"rules"`
}

// DailyPlan is today's generated mission: a small task set plus coaching copy.
type DailyPlan struct {
	Day          int        `json:"day"`
	Focus        string     `json:"focus"`
	MicroHabit   string     `json:"microHabit,omitempty"`
	Tasks        []PlanTask `json:"tasks"`
	CoachMessage string     `json:"coachMessage"`
}

// DashboardSummary is the generated cockpit view for the active goal.
type DashboardSummary struct {
	GoalTitle          string `json:"goalTitle"`
	ProgressPercentage int    `json:"progressPercentage"`
	DayStatusText      string `json:"dayStatusText,omitempty"`
	StreakText         string `json:"streakText"`
	AIInsight          string `json:"aiInsight"`
	PrimaryAction      string `json:"primaryAction"`
}

// Notification is a generated push-notification payload.
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	CTA     string `json:"cta"`
}
