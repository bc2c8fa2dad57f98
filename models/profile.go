package models

import "time"

const (
	DefaultTargetCalories = 850
	DefaultTargetSleep    = 8
	DefaultTargetExercise = 30
)

type Profile struct {
	UserID         string    `json:"userId"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Height         *float64  `json:"height,omitempty"` // cm
	Gender         string    `json:"gender,omitempty"`
	Bio            string    `json:"bio"`
	AvatarURL      string    `json:"avatarUrl,omitempty"`
	TargetCalories float64   `json:"targetCalories"`
	TargetSleep    float64   `json:"targetSleep"`
	TargetExercise float64   `json:"targetExercise"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// DefaultProfile is served when a user has no stored profile yet.
func DefaultProfile(user AuthUser) Profile {
	return Profile{
		UserID:         user.ID,
		FirstName:      user.MetadataString("first_name"),
		LastName:       user.MetadataString("last_name"),
		Email:          user.Email,
		TargetCalories: DefaultTargetCalories,
		TargetSleep:    DefaultTargetSleep,
		TargetExercise: DefaultTargetExercise,
	}
}
