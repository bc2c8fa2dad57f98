package models

import (
	"strings"
	"time"
)

// FoodItem is one line of a logged meal.
type FoodItem struct {
	FoodName string  `json:"foodName"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
}

// One logged meal in a time slot of a day
type Meal struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Date         string     `json:"date"`         // YYYY-MM-DD
	MealTimeSlot string     `json:"mealTimeSlot"` // e.g. "6:00 AM"
	FoodItems    []FoodItem `json:"foodItems"`
	Calories     float64    `json:"calories"`
	Notes        string     `json:"notes,omitempty"`
	Photo        string     `json:"photo,omitempty"`
	Phase        string     `json:"phase,omitempty"`
	LoggedAt     time.Time  `json:"loggedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ItemCalories sums the calories of the meal's food items.
func (m Meal) ItemCalories() float64 {
	var total float64
	for _, it := range m.FoodItems {
		total += it.Calories
	}
	return total
}

// FoodNames joins the item names for display ("Oats, Banana").
func (m Meal) FoodNames() string {
	names := make([]string, 0, len(m.FoodItems))
	for _, it := range m.FoodItems {
		names = append(names, it.FoodName)
	}
	return strings.Join(names, ", ")
}
