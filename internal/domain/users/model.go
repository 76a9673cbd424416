package users

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// User is a FabLab member or admin, identified by their Telegram chat.
type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	Role       Role
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Telegram carries the profile fields the bot sees on each update.
type Telegram struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

func (u *User) DisplayName() string {
	if u.FirstName != "" {
		if u.LastName != "" {
			return u.FirstName + " " + u.LastName
		}
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return ""
}
