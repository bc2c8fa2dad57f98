package models

import (
	"math"
	"time"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
)

var GoalCategories = []string{"daily", "weekly", "monthly", "longterm"}

var goalUnits = map[string]string{
	"calories": "kcal",
	"sleep":    "hours",
	"exercise": "minutes",
	"water":    "glasses",
	"steps":    "steps",
	"weight":   "kg",
}

// UnitForGoalType maps a goal type to its display unit.
func UnitForGoalType(goalType string) string {
	if u, ok := goalUnits[goalType]; ok {
		return u
	}
	return "units"
}

type Goal struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	GoalType     string    `json:"goalType"`
	TargetValue  float64   `json:"targetValue"`
	CurrentValue float64   `json:"currentValue"`
	Unit         string    `json:"unit"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Achieved is derived, never stored.
func (g Goal) Achieved() bool {
	return g.TargetValue > 0 && g.CurrentValue >= g.TargetValue
}

// Progress returns min(current/target*100, 100).
func (g Goal) Progress() float64 {
	if g.TargetValue <= 0 {
		return 0
	}
	return math.Min(g.CurrentValue/g.TargetValue*100, 100)
}

// GoalPatch carries the fields an update may change; nil means unchanged.
type GoalPatch struct {
	CurrentValue *float64 `json:"currentValue"`
	TargetValue  *float64 `json:"targetValue"`
	Status       *string  `json:"status"`
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
}

// Apply writes the patch onto g.
func (p GoalPatch) Apply(g *Goal) {
	if p.CurrentValue != nil {
		g.CurrentValue = *p.CurrentValue
	}
	if p.TargetValue != nil {
		g.TargetValue = *p.TargetValue
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
}
