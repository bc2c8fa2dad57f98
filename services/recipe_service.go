package services

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/sirupsen/logrus"
)

// AddRating appends a score and sets the rating to the mean of all scores, one decimal.
func AddRating(r *models.Recipe, userName string, score int, comment string) error {
	if score < 1 || score > 5 {
		return invalid("Rating must be between 1 and 5")
	}
	r.Ratings = append(r.Ratings, models.Rating{UserName: userName, Score: score, Comment: comment, CreatedAt: time.Now()})
	var sum int
	for _, rt := range r.Ratings {
		sum += rt.Score
	}
	r.Rating = math.Round(float64(sum)/float64(len(r.Ratings))*10) / 10
	return nil
}

func validateRecipe(r *models.Recipe) error {
	r.Title = strings.TrimSpace(r.Title)
	r.Ingredients = nonEmpty(r.Ingredients)
	r.Instructions = nonEmpty(r.Instructions)
	if r.Title == "" || len(r.Ingredients) == 0 || len(r.Instructions) == 0 {
		return invalid("Please fill in all required fields")
	}
	if r.DietType == "" {
		r.DietType = models.DietBalanced
	}
	if !models.IsDietType(r.DietType) {
		return invalid("Unknown diet type " + r.DietType)
	}
	if r.Servings <= 0 {
		r.Servings = 1
	}
	if r.PrepTime < 0 || r.Calories < 0 {
		return invalid("Prep time and calories cannot be negative")
	}
	return nil
}

func nonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RecipeService holds a user's personal recipes in the local store only.
type RecipeService struct {
	mu   sync.Mutex
	repo repositories.RecipeRepository
	log  *logrus.Logger
}

func NewRecipeService(repo repositories.RecipeRepository, log *logrus.Logger) *RecipeService {
	return &RecipeService{repo: repo, log: log}
}

// List seeds the built-in recipes the first time a user opens the list.
func (s *RecipeService) List(ctx context.Context, userID string) ([]models.Recipe, error) {
	list, err := s.repo.List(ctx, userID)
	if err != nil || len(list) > 0 {
		return list, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	seeds := seedRecipes()
	for i := len(seeds) - 1; i >= 0; i-- {
		if err := s.repo.Save(ctx, userID, seeds[i]); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, userID)
}

func (s *RecipeService) Get(ctx context.Context, userID, id string) (models.Recipe, error) {
	if _, err := s.List(ctx, userID); err != nil {
		return models.Recipe{}, err
	}
	return s.repo.Get(ctx, userID, id)
}

func (s *RecipeService) Add(ctx context.Context, userID, author string, r models.Recipe) (models.Recipe, error) {
	if err := validateRecipe(&r); err != nil {
		return models.Recipe{}, err
	}
	if _, err := s.List(ctx, userID); err != nil {
		return models.Recipe{}, err
	}
	r.ID = uuid.NewString()
	r.Author = author
	r.Rating = 0
	r.Likes = 0
	r.Ratings = []models.Rating{}
	r.Saved = false
	r.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Save(ctx, userID, r); err != nil {
		return models.Recipe{}, err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "recipe_id": r.ID}).Info("recipe added")
	return r, nil
}

func (s *RecipeService) mutate(ctx context.Context, userID, id string, fn func(*models.Recipe) error) (models.Recipe, error) {
	if _, err := s.List(ctx, userID); err != nil {
		return models.Recipe{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return models.Recipe{}, err
	}
	if err := fn(&r); err != nil {
		return models.Recipe{}, err
	}
	return r, s.repo.Save(ctx, userID, r)
}

func (s *RecipeService) Rate(ctx context.Context, userID, id, userName string, score int, comment string) (models.Recipe, error) {
	return s.mutate(ctx, userID, id, func(r *models.Recipe) error {
		return AddRating(r, userName, score, comment)
	})
}

func (s *RecipeService) Like(ctx context.Context, userID, id string) (models.Recipe, error) {
	return s.mutate(ctx, userID, id, func(r *models.Recipe) error {
		r.Likes++
		return nil
	})
}

func (s *RecipeService) Save(ctx context.Context, userID, id string) (models.Recipe, error) {
	return s.mutate(ctx, userID, id, func(r *models.Recipe) error {
		r.Saved = true
		return nil
	})
}

// Search matches title or description.
func (s *RecipeService) Search(ctx context.Context, userID, query string) ([]models.Recipe, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []models.Recipe{}
	for _, r := range list {
		if matchesAny(query, r.Title, r.Description) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *RecipeService) Query(ctx context.Context, userID string, q RecipeQuery) ([]models.Recipe, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return QueryRecipes(list, q), nil
}
