package models

import "time"

const (
	DietVegetarian  = "vegetarian"
	DietVegan       = "vegan"
	DietHighProtein = "highProtein"
	DietLowCalorie  = "lowCalorie"
	DietBalanced    = "balanced"
)

var DietTypes = []string{DietVegetarian, DietVegan, DietHighProtein, DietLowCalorie, DietBalanced}

func IsDietType(v string) bool { return contains(DietTypes, v) }

type Rating struct {
	UserName  string    `json:"userName"`
	Score     int       `json:"score"` // 1-5
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	UserName  string    `json:"userName"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Recipe struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Author       string    `json:"author"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	Servings     int       `json:"servings"`
	PrepTime     int       `json:"prepTime"` // minutes
	Calories     float64   `json:"calories"`
	DietType     string    `json:"dietType"`
	Cuisine      string    `json:"cuisine,omitempty"`
	Rating       float64   `json:"rating"`
	Likes        int       `json:"likes"`
	Ratings      []Rating  `json:"ratings"`
	Saved        bool      `json:"saved"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CommunityRecipe is a shared recipe with social counters.
type CommunityRecipe struct {
	Recipe
	Shares   int       `json:"shares"`
	IsPublic bool      `json:"isPublic"`
	Comments []Comment `json:"comments"`
}
