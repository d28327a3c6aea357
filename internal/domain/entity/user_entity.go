package entity

import (
	"time"
)

// User is the aggregate root for accounts.
// Secrets (password hash, reset token digest) never serialize.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Firstname       string    `json:"firstname"`
	Lastname        string    `json:"lastname"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	AvatarURL       string    `json:"avatar,omitempty"`
	AvatarObject    string    `json:"-"`
	AvatarImageName string    `json:"avatarImageName,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
}

// Author is the public projection of a User attached to articles and comments.
type Author struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	AvatarURL string `json:"avatar,omitempty"`
}

func (u *User) Author() *Author {
	if u == nil {
		return nil
	}
	return &Author{
		ID:        u.ID,
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		AvatarURL: u.AvatarURL,
	}
}
