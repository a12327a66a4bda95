package domain

import "time"

// User represents an authenticated identity. Either Email or Phone is set
// depending on how the account was first created.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	GoogleID    string    `json:"google_id,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	Status      string    `json:"status"`
	LastLogin   time.Time `json:"last_login"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) IsActive() bool {
	return u != nil && u.Status == "active"
}
