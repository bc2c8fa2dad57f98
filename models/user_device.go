package models

import "time"

// UserDevice is a push endpoint registered for a user.
type UserDevice struct {
	UserID      string    `json:"userId"`
	Platform    string    `json:"platform"` // "android" | "ios"
	TokenHash   string    `json:"tokenHash"`
	EndpointARN string    `json:"endpointArn"`
	Enabled     bool      `json:"enabled"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Event is pushed to a user's realtime channel.
type Event struct {
	Kind      string    `json:"kind"` // e.g. "goal.achieved", "auth.signed_in"
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
