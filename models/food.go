package models

// FoodReference is a catalog entry: calories for a reference quantity.
type FoodReference struct {
	Name     string  `json:"name" yaml:"name"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
	Unit     string  `json:"unit" yaml:"unit"`
	Calories float64 `json:"calories" yaml:"calories"`
	Category string  `json:"category" yaml:"-"`
}

type FoodCategory struct {
	Key   string          `json:"key" yaml:"key"`
	Label string          `json:"label" yaml:"label"`
	Foods []FoodReference `json:"foods,omitempty" yaml:"foods"`
}

// Phase is a named meal schedule (v0 … v6).
type Phase struct {
	Key         string   `json:"key" yaml:"key"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	MealTimes   []string `json:"mealTimes" yaml:"mealTimes"`
}

// MealsPerDay is the number of slots in the phase.
func (p Phase) MealsPerDay() int { return len(p.MealTimes) }
