package local

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rajivijay0509/nutrition-tracker-web/cache"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
)

type mealsDoc struct {
	Meals []models.Meal `json:"meals"`
}

// MealStore is the "food-storage" document.
type MealStore struct {
	doc *document[mealsDoc]
}

func NewMealStore(kv cache.KV) *MealStore {
	return &MealStore{doc: newDocument[mealsDoc](kv, "food-storage")}
}

func (s *MealStore) Create(ctx context.Context, m models.Meal) (models.Meal, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	err := s.doc.update(ctx, m.UserID, func(d *mealsDoc) error {
		for i := range d.Meals {
			if d.Meals[i].ID == m.ID {
				d.Meals[i] = m
				return nil
			}
		}
		d.Meals = append(d.Meals, m)
		return nil
	})
	return m, err
}

func (s *MealStore) ListByDate(ctx context.Context, userID, date string) ([]models.Meal, error) {
	return s.ListRange(ctx, userID, date, date)
}

func (s *MealStore) ListRange(ctx context.Context, userID, from, to string) ([]models.Meal, error) {
	d, err := s.doc.read(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []models.Meal{}
	for _, m := range d.Meals {
		if inRange(m.Date, from, to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MealStore) Delete(ctx context.Context, userID, id string) error {
	return s.doc.update(ctx, userID, func(d *mealsDoc) error {
		for i, m := range d.Meals {
			if m.ID == id {
				d.Meals = append(d.Meals[:i], d.Meals[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("meal %s: %w", id, repositories.ErrNotFound)
	})
}

func (s *MealStore) SetPhoto(ctx context.Context, userID, id, url string) error {
	return s.doc.update(ctx, userID, func(d *mealsDoc) error {
		for i := range d.Meals {
			if d.Meals[i].ID == id {
				d.Meals[i].Photo = url
				return nil
			}
		}
		return fmt.Errorf("meal %s: %w", id, repositories.ErrNotFound)
	})
}

// ReplaceDay swaps the cached meals of one date for the given list.
func (s *MealStore) ReplaceDay(ctx context.Context, userID, date string, meals []models.Meal) error {
	return s.ReplaceRange(ctx, userID, date, date, meals)
}

func (s *MealStore) ReplaceRange(ctx context.Context, userID, from, to string, meals []models.Meal) error {
	return s.doc.update(ctx, userID, func(d *mealsDoc) error {
		kept := d.Meals[:0]
		for _, m := range d.Meals {
			if !inRange(m.Date, from, to) {
				kept = append(kept, m)
			}
		}
		d.Meals = append(kept, meals...)
		return nil
	})
}

var _ repositories.MealCache = (*MealStore)(nil)
