// Package repositories declares the storage contracts shared by the remote
// (postgres) and local (cache-backed) implementations.
package repositories

import (
	"context"
	"errors"

	"github.com/rajivijay0509/nutrition-tracker-web/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// MealRepository stores logged meals. Dates are YYYY-MM-DD and ranges are inclusive.
type MealRepository interface {
	Create(ctx context.Context, m models.Meal) (models.Meal, error)
	ListByDate(ctx context.Context, userID, date string) ([]models.Meal, error)
	ListRange(ctx context.Context, userID, from, to string) ([]models.Meal, error)
	Delete(ctx context.Context, userID, id string) error
	SetPhoto(ctx context.Context, userID, id, url string) error
}

// MealCache is the local side of the meal store; it can also take a whole
// day as returned by the remote store.
type MealCache interface {
	MealRepository
	ReplaceDay(ctx context.Context, userID, date string, meals []models.Meal) error
	// ReplaceRange swaps every cached meal dated from..to in a single write.
	ReplaceRange(ctx context.Context, userID, from, to string, meals []models.Meal) error
}

type WellnessRepository interface {
	Upsert(ctx context.Context, rec models.WellnessRecord) (models.WellnessRecord, error)
	Get(ctx context.Context, userID, date string) (models.WellnessRecord, error)
	ListRange(ctx context.Context, userID, from, to string) ([]models.WellnessRecord, error)
}

type SymptomRepository interface {
	Create(ctx context.Context, s models.Symptom) (models.Symptom, error)
	ListRange(ctx context.Context, userID, from, to string) ([]models.Symptom, error)
	Delete(ctx context.Context, userID, id string) error
}

type SymptomCache interface {
	SymptomRepository
	ReplaceRange(ctx context.Context, userID, from, to string, list []models.Symptom) error
}

// GoalRepository lists goals newest first.
type GoalRepository interface {
	List(ctx context.Context, userID string) ([]models.Goal, error)
	Get(ctx context.Context, userID, id string) (models.Goal, error)
	Create(ctx context.Context, g models.Goal) (models.Goal, error)
	Update(ctx context.Context, userID, id string, patch models.GoalPatch) (models.Goal, error)
	Delete(ctx context.Context, userID, id string) error
}

type GoalCache interface {
	GoalRepository
	ReplaceAll(ctx context.Context, userID string, goals []models.Goal) error
}

type ProfileRepository interface {
	Get(ctx context.Context, userID string) (models.Profile, error)
	Upsert(ctx context.Context, p models.Profile) (models.Profile, error)
}

// RecipeRepository holds a user's personal recipes.
type RecipeRepository interface {
	List(ctx context.Context, userID string) ([]models.Recipe, error)
	Get(ctx context.Context, userID, id string) (models.Recipe, error)
	Save(ctx context.Context, userID string, r models.Recipe) error
}

// CommunityRepository holds recipes shared across all users and each user's favorites.
type CommunityRepository interface {
	List(ctx context.Context) ([]models.CommunityRecipe, error)
	Get(ctx context.Context, id string) (models.CommunityRecipe, error)
	Save(ctx context.Context, r models.CommunityRecipe) error
	Favorites(ctx context.Context, userID string) ([]string, error)
	AddFavorite(ctx context.Context, userID, recipeID string) error
}

type DeviceRepository interface {
	Upsert(ctx context.Context, d models.UserDevice) error
	ListByUser(ctx context.Context, userID string) ([]models.UserDevice, error)
}
