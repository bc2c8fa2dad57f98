package local

import (
	"context"
	"fmt"

	"github.com/rajivijay0509/nutrition-tracker-web/cache"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
)

type recipesDoc struct {
	Recipes []models.Recipe `json:"recipes"`
}

// RecipeStore is the per-user "recipes-storage" document.
type RecipeStore struct {
	doc *document[recipesDoc]
}

func NewRecipeStore(kv cache.KV) *RecipeStore {
	return &RecipeStore{doc: newDocument[recipesDoc](kv, "recipes-storage")}
}

func (s *RecipeStore) List(ctx context.Context, userID string) ([]models.Recipe, error) {
	d, err := s.doc.read(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d.Recipes == nil {
		return []models.Recipe{}, nil
	}
	return d.Recipes, nil
}

func (s *RecipeStore) Get(ctx context.Context, userID, id string) (models.Recipe, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return models.Recipe{}, err
	}
	for _, r := range list {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Recipe{}, fmt.Errorf("recipe %s: %w", id, repositories.ErrNotFound)
}

// Save replaces a recipe with the same id or prepends a new one.
func (s *RecipeStore) Save(ctx context.Context, userID string, r models.Recipe) error {
	return s.doc.update(ctx, userID, func(d *recipesDoc) error {
		for i := range d.Recipes {
			if d.Recipes[i].ID == r.ID {
				d.Recipes[i] = r
				return nil
			}
		}
		d.Recipes = append([]models.Recipe{r}, d.Recipes...)
		return nil
	})
}

type communityDoc struct {
	Recipes   []models.CommunityRecipe `json:"recipes"`
	Favorites map[string][]string      `json:"favorites"` // user -> recipe ids
}

// CommunityStore is the shared "community-storage" document.
type CommunityStore struct {
	doc *document[communityDoc]
}

func NewCommunityStore(kv cache.KV) *CommunityStore {
	return &CommunityStore{doc: newDocument[communityDoc](kv, "community-storage")}
}

func (s *CommunityStore) List(ctx context.Context) ([]models.CommunityRecipe, error) {
	d, err := s.doc.read(ctx, "")
	if err != nil {
		return nil, err
	}
	if d.Recipes == nil {
		return []models.CommunityRecipe{}, nil
	}
	return d.Recipes, nil
}

func (s *CommunityStore) Get(ctx context.Context, id string) (models.CommunityRecipe, error) {
	list, err := s.List(ctx)
	if err != nil {
		return models.CommunityRecipe{}, err
	}
	for _, r := range list {
		if r.ID == id {
			return r, nil
		}
	}
	return models.CommunityRecipe{}, fmt.Errorf("community recipe %s: %w", id, repositories.ErrNotFound)
}

func (s *CommunityStore) Save(ctx context.Context, r models.CommunityRecipe) error {
	return s.doc.update(ctx, "", func(d *communityDoc) error {
		for i := range d.Recipes {
			if d.Recipes[i].ID == r.ID {
				d.Recipes[i] = r
				return nil
			}
		}
		d.Recipes = append([]models.CommunityRecipe{r}, d.Recipes...)
		return nil
	})
}

func (s *CommunityStore) Favorites(ctx context.Context, userID string) ([]string, error) {
	d, err := s.doc.read(ctx, "")
	if err != nil {
		return nil, err
	}
	return append([]string{}, d.Favorites[userID]...), nil
}

func (s *CommunityStore) AddFavorite(ctx context.Context, userID, recipeID string) error {
	return s.doc.update(ctx, "", func(d *communityDoc) error {
		if d.Favorites == nil {
			d.Favorites = map[string][]string{}
		}
		for _, id := range d.Favorites[userID] {
			if id == recipeID {
				return nil
			}
		}
		d.Favorites[userID] = append(d.Favorites[userID], recipeID)
		return nil
	})
}

var (
	_ repositories.RecipeRepository    = (*RecipeStore)(nil)
	_ repositories.CommunityRepository = (*CommunityStore)(nil)
)
