package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/rajivijay0509/nutrition-tracker-web/models"
)

// UnitPolicy decides what Cost does when the entered unit differs from the reference unit.
type UnitPolicy int

const (
	// UnitStrict returns 0 calories on a unit mismatch.
	UnitStrict UnitPolicy = iota
	// UnitIgnore scales by quantity regardless of unit.
	UnitIgnore
)

func ParseUnitPolicy(s string) (UnitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return UnitStrict, nil
	case "ignore", "scale":
		return UnitIgnore, nil
	default:
		return UnitStrict, fmt.Errorf("unknown unit policy %q", s)
	}
}

func (p UnitPolicy) String() string {
	if p == UnitIgnore {
		return "ignore"
	}
	return "strict"
}

// Cost scales the reference calories linearly: round(qty / ref.Quantity * ref.Calories).
func Cost(ref models.FoodReference, qty float64, unit string, policy UnitPolicy) float64 {
	if ref.Quantity <= 0 || qty <= 0 {
		return 0
	}
	if policy == UnitStrict && unit != "" && !strings.EqualFold(unit, ref.Unit) {
		return 0
	}
	return math.Round(qty / ref.Quantity * ref.Calories)
}

// Item builds a meal line for the named food.
func (c *Catalog) Item(name string, qty float64, unit string, policy UnitPolicy) (models.FoodItem, error) {
	ref, err := c.Lookup(name)
	if err != nil {
		return models.FoodItem{}, err
	}
	if unit == "" {
		unit = ref.Unit
	}
	return models.FoodItem{
		FoodName: ref.Name,
		Quantity: qty,
		Unit:     unit,
		Calories: Cost(ref, qty, unit, policy),
	}, nil
}

// Prefill returns the quantity and unit a form should start with for the food.
func (c *Catalog) Prefill(name string) (float64, string, error) {
	ref, err := c.Lookup(name)
	if err != nil {
		return 0, "", err
	}
	return ref.Quantity, ref.Unit, nil
}
