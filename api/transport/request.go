package transport

// GenerateGoalRequest creates a goal with an AI-built plan.
type GenerateGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"`
	DailyTime   string `json:"daily_time"`
	GoalType    string `json:"goal_type"`
	SkillLevel  string `json:"skill_level"`
}

// CreateGoalRequest creates a bare goal without generation.
type CreateGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskProgressRequest moves a task to a new status.
type TaskProgressRequest struct {
	Status string `json:"status"`
}

// NotificationRequest asks for generated notification copy.
type NotificationRequest struct {
	UserName  string `json:"user_name"`
	Mood      string `json:"mood"`
	TimeOfDay string `json:"time_of_day"`
}

// ProfileUpdateRequest updates display metadata on the user record.
type ProfileUpdateRequest struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	Status      string `json:"status"`
}

// AuthLoginRequest identifies the user; first login creates the account.
type AuthLoginRequest struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	GoogleID    string `json:"google_id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	TTL         int    `json:"ttl_seconds"`
}

// RefreshRequest extends an existing session.
type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}
