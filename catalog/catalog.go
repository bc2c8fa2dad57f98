// Package catalog holds the static food reference data and meal phase schedules.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"gopkg.in/yaml.v3"
)

// CategoryAll selects every category.
const CategoryAll = "all"

//go:embed foods.yaml
var foodsYAML []byte

//go:embed phases.yaml
var phasesYAML []byte

var ErrUnknownFood = errors.New("food not found in catalog")

type foodsDoc struct {
	Categories []models.FoodCategory `yaml:"categories"`
}

type phasesDoc struct {
	Default string         `yaml:"default"`
	Phases  []models.Phase `yaml:"phases"`
}

// Catalog is read-only after Load and safe for concurrent use.
type Catalog struct {
	categories   []models.FoodCategory
	byName       map[string]models.FoodReference
	phases       []models.Phase
	defaultPhase string
}

// Load parses the embedded food and phase documents.
func Load() (*Catalog, error) {
	return Parse(foodsYAML, phasesYAML)
}

// MustLoad is Load for package init and tests.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(foods, phases []byte) (*Catalog, error) {
	var fd foodsDoc
	if err := yaml.Unmarshal(foods, &fd); err != nil {
		return nil, fmt.Errorf("parse foods: %w", err)
	}
	var pd phasesDoc
	if err := yaml.Unmarshal(phases, &pd); err != nil {
		return nil, fmt.Errorf("parse phases: %w", err)
	}

	c := &Catalog{
		byName:       make(map[string]models.FoodReference),
		phases:       pd.Phases,
		defaultPhase: pd.Default,
	}
	for _, cat := range fd.Categories {
		for i := range cat.Foods {
			cat.Foods[i].Category = cat.Label
			c.byName[strings.ToLower(cat.Foods[i].Name)] = cat.Foods[i]
		}
		c.categories = append(c.categories, cat)
	}
	if _, ok := c.Phase(c.defaultPhase); !ok {
		return nil, fmt.Errorf("default phase %q is not defined", c.defaultPhase)
	}
	return c, nil
}

// Categories lists keys and labels, prefixed by the "all" pseudo-category.
func (c *Catalog) Categories() []models.FoodCategory {
	out := []models.FoodCategory{{Key: CategoryAll, Label: "All Foods"}}
	for _, cat := range c.categories {
		out = append(out, models.FoodCategory{Key: cat.Key, Label: cat.Label})
	}
	return out
}

func (c *Catalog) Count() int { return len(c.byName) }

// Filter applies the category and a case-insensitive name search together.
// An unknown category yields nothing.
func (c *Catalog) Filter(category, query string) []models.FoodReference {
	if category == "" {
		category = CategoryAll
	}
	q := strings.ToLower(strings.TrimSpace(query))

	out := []models.FoodReference{}
	for _, cat := range c.categories {
		if category != CategoryAll && cat.Key != category {
			continue
		}
		for _, f := range cat.Foods {
			if q == "" || strings.Contains(strings.ToLower(f.Name), q) {
				out = append(out, f)
			}
		}
	}
	return out
}

// Lookup finds a food by name, ignoring case.
func (c *Catalog) Lookup(name string) (models.FoodReference, error) {
	f, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return models.FoodReference{}, fmt.Errorf("%s: %w", name, ErrUnknownFood)
	}
	return f, nil
}

func (c *Catalog) Phases() []models.Phase { return c.phases }

func (c *Catalog) Phase(key string) (models.Phase, bool) {
	for _, p := range c.phases {
		if p.Key == key {
			return p, true
		}
	}
	return models.Phase{}, false
}

func (c *Catalog) DefaultPhase() models.Phase {
	p, _ := c.Phase(c.defaultPhase)
	return p
}
