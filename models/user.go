package models

import (
	"time"

	"gorm.io/gorm"
)

// AuthUser is the identity returned by the auth provider.
type AuthUser struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata,omitempty"`
}

func (u AuthUser) MetadataString(key string) string {
	if u.Metadata == nil {
		return ""
	}
	s, _ := u.Metadata[key].(string)
	return s
}

// Session is an authenticated session; AccessToken is a bearer JWT.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         AuthUser  `json:"user"`
}

// User is the account row used by the built-in (non-hosted) auth provider.
type User struct {
	gorm.Model
	UID              string `gorm:"uniqueIndex;size:36;not null"`
	Email            string `gorm:"uniqueIndex;not null"`
	Password         string `gorm:"not null"`
	FirstName        string
	LastName         string
	Confirmed        bool
	ConfirmationCode string
	Disabled         bool
}
