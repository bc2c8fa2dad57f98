package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rajivijay0509/nutrition-tracker-web/catalog"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/utils"
)

var ErrRecognitionDisabled = errors.New("photo recognition is not configured")

// FoodService exposes the reference catalog and prices meal lines against it.
type FoodService struct {
	cat    *catalog.Catalog
	policy catalog.UnitPolicy
	labels LabelDetector // optional
}

func NewFoodService(cat *catalog.Catalog, policy catalog.UnitPolicy, labels LabelDetector) *FoodService {
	return &FoodService{cat: cat, policy: policy, labels: labels}
}

func (s *FoodService) Catalog() *catalog.Catalog       { return s.cat }
func (s *FoodService) Categories() []models.FoodCategory { return s.cat.Categories() }
func (s *FoodService) Phases() []models.Phase          { return s.cat.Phases() }

func (s *FoodService) Search(category, query string) []models.FoodReference {
	return s.cat.Filter(category, query)
}

// Cost prices one line with the configured unit policy.
func (s *FoodService) Cost(name string, qty float64, unit string) (models.FoodItem, error) {
	return s.cat.Item(name, qty, unit, s.policy)
}

// Prefill returns the reference quantity and unit a food starts with on the logging form.
func (s *FoodService) Prefill(name string) (float64, string, error) {
	return s.cat.Prefill(name)
}

// Selection starts a phase/slot selection on the default phase.
func (s *FoodService) Selection() *catalog.PhaseSelection { return s.cat.NewSelection() }

// Price recomputes calories for catalog foods. Foods outside the catalog keep
// the calories they were submitted with.
func (s *FoodService) Price(items []models.FoodItem) []models.FoodItem {
	out := make([]models.FoodItem, 0, len(items))
	for _, it := range items {
		if priced, err := s.cat.Item(it.FoodName, it.Quantity, it.Unit, s.policy); err == nil {
			it.FoodName = priced.FoodName
			it.Unit = priced.Unit
			it.Calories = priced.Calories
		}
		out = append(out, it)
	}
	return out
}

// Suggest detects labels in a photo (data URL) and matches them to catalog foods.
func (s *FoodService) Suggest(ctx context.Context, dataURL string) ([]string, []models.FoodReference, error) {
	if s.labels == nil {
		return nil, nil, ErrRecognitionDisabled
	}
	img, err := utils.DecodeDataURL(dataURL)
	if err != nil {
		return nil, nil, invalid(err.Error())
	}
	labels, err := s.labels.DetectLabels(ctx, img.Data)
	if err != nil {
		return nil, nil, err
	}

	seen := map[string]bool{}
	matches := []models.FoodReference{}
	for _, l := range labels {
		for _, f := range s.cat.Filter(catalog.CategoryAll, strings.TrimSuffix(strings.ToLower(l), "s")) {
			if !seen[f.Name] {
				seen[f.Name] = true
				matches = append(matches, f)
			}
		}
	}
	return labels, matches, nil
}
