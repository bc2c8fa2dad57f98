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

type goalsDoc struct {
	Goals []models.Goal `json:"goals"` // newest first
}

type GoalStore struct {
	doc *document[goalsDoc]
}

func NewGoalStore(kv cache.KV) *GoalStore {
	return &GoalStore{doc: newDocument[goalsDoc](kv, "goals-storage")}
}

func (s *GoalStore) List(ctx context.Context, userID string) ([]models.Goal, error) {
	d, err := s.doc.read(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d.Goals == nil {
		return []models.Goal{}, nil
	}
	return d.Goals, nil
}

func (s *GoalStore) Get(ctx context.Context, userID, id string) (models.Goal, error) {
	goals, err := s.List(ctx, userID)
	if err != nil {
		return models.Goal{}, err
	}
	for _, g := range goals {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Goal{}, fmt.Errorf("goal %s: %w", id, repositories.ErrNotFound)
}

// Create prepends, so the list stays newest first.
func (s *GoalStore) Create(ctx context.Context, g models.Goal) (models.Goal, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	err := s.doc.update(ctx, g.UserID, func(d *goalsDoc) error {
		for i := range d.Goals {
			if d.Goals[i].ID == g.ID {
				d.Goals[i] = g
				return nil
			}
		}
		d.Goals = append([]models.Goal{g}, d.Goals...)
		return nil
	})
	return g, err
}

func (s *GoalStore) Update(ctx context.Context, userID, id string, patch models.GoalPatch) (models.Goal, error) {
	var out models.Goal
	err := s.doc.update(ctx, userID, func(d *goalsDoc) error {
		for i := range d.Goals {
			if d.Goals[i].ID == id {
				patch.Apply(&d.Goals[i])
				out = d.Goals[i]
				return nil
			}
		}
		return fmt.Errorf("goal %s: %w", id, repositories.ErrNotFound)
	})
	return out, err
}

func (s *GoalStore) Delete(ctx context.Context, userID, id string) error {
	return s.doc.update(ctx, userID, func(d *goalsDoc) error {
		for i, g := range d.Goals {
			if g.ID == id {
				d.Goals = append(d.Goals[:i], d.Goals[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("goal %s: %w", id, repositories.ErrNotFound)
	})
}

func (s *GoalStore) ReplaceAll(ctx context.Context, userID string, goals []models.Goal) error {
	return s.doc.update(ctx, userID, func(d *goalsDoc) error {
		d.Goals = append([]models.Goal(nil), goals...)
		return nil
	})
}

var _ repositories.GoalCache = (*GoalStore)(nil)
