package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/sirupsen/logrus"
)

const listTop = 12

// CommunityService manages recipes shared between all users.
type CommunityService struct {
	mu       sync.Mutex
	repo     repositories.CommunityRepository
	personal repositories.RecipeRepository
	log      *logrus.Logger
}

func NewCommunityService(repo repositories.CommunityRepository, personal repositories.RecipeRepository, log *logrus.Logger) *CommunityService {
	return &CommunityService{repo: repo, personal: personal, log: log}
}

func (s *CommunityService) all(ctx context.Context) ([]models.CommunityRecipe, error) {
	list, err := s.repo.List(ctx)
	if err != nil || len(list) > 0 {
		return list, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	seeds := seedCommunity()
	for i := len(seeds) - 1; i >= 0; i-- {
		if err := s.repo.Save(ctx, seeds[i]); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx)
}

// List returns public recipes with Saved set from the user's favorites.
func (s *CommunityService) List(ctx context.Context, userID string) ([]models.CommunityRecipe, error) {
	list, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	favs, err := s.repo.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.CommunityRecipe, 0, len(list))
	for _, r := range list {
		if !r.IsPublic {
			continue
		}
		r.Saved = containsString(favs, r.ID)
		out = append(out, r)
	}
	return out, nil
}

func (s *CommunityService) Get(ctx context.Context, userID, id string) (models.CommunityRecipe, error) {
	if _, err := s.all(ctx); err != nil {
		return models.CommunityRecipe{}, err
	}
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.CommunityRecipe{}, err
	}
	favs, err := s.repo.Favorites(ctx, userID)
	if err != nil {
		return models.CommunityRecipe{}, err
	}
	r.Saved = containsString(favs, r.ID)
	return r, nil
}

func (s *CommunityService) mutate(ctx context.Context, id string, fn func(*models.CommunityRecipe) error) (models.CommunityRecipe, error) {
	if _, err := s.all(ctx); err != nil {
		return models.CommunityRecipe{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.CommunityRecipe{}, err
	}
	if err := fn(&r); err != nil {
		return models.CommunityRecipe{}, err
	}
	return r, s.repo.Save(ctx, r)
}

// Share counts one more share of a community recipe.
func (s *CommunityService) Share(ctx context.Context, id string) (models.CommunityRecipe, error) {
	return s.mutate(ctx, id, func(r *models.CommunityRecipe) error {
		r.Shares++
		return nil
	})
}

// Publish copies one of the user's personal recipes into the community list.
func (s *CommunityService) Publish(ctx context.Context, userID, recipeID string) (models.CommunityRecipe, error) {
	src, err := s.personal.Get(ctx, userID, recipeID)
	if err != nil {
		return models.CommunityRecipe{}, err
	}
	if _, err := s.all(ctx); err != nil {
		return models.CommunityRecipe{}, err
	}
	src.ID = uuid.NewString()
	src.Rating = 0
	src.Likes = 0
	src.Ratings = []models.Rating{}
	src.Saved = false
	src.CreatedAt = time.Now()
	r := models.CommunityRecipe{Recipe: src, IsPublic: true, Comments: []models.Comment{}}

	s.mu.Lock()
	err = s.repo.Save(ctx, r)
	s.mu.Unlock()
	if err != nil {
		return models.CommunityRecipe{}, err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "recipe_id": r.ID}).Info("recipe published")
	return r, nil
}

func (s *CommunityService) Rate(ctx context.Context, id, userName string, score int, comment string) (models.CommunityRecipe, error) {
	return s.mutate(ctx, id, func(r *models.CommunityRecipe) error {
		return AddRating(&r.Recipe, userName, score, comment)
	})
}

func (s *CommunityService) Like(ctx context.Context, id string) (models.CommunityRecipe, error) {
	return s.mutate(ctx, id, func(r *models.CommunityRecipe) error {
		r.Likes++
		return nil
	})
}

func (s *CommunityService) Comment(ctx context.Context, id, userName, text string) (models.CommunityRecipe, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.CommunityRecipe{}, invalid("Comment cannot be empty")
	}
	return s.mutate(ctx, id, func(r *models.CommunityRecipe) error {
		r.Comments = append(r.Comments, models.Comment{UserName: userName, Text: text, CreatedAt: time.Now()})
		return nil
	})
}

// Save adds the recipe to the user's favorites.
func (s *CommunityService) Save(ctx context.Context, userID, id string) error {
	if _, err := s.all(ctx); err != nil {
		return err
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.AddFavorite(ctx, userID, id)
}

// Search matches title, description, author or any ingredient.
func (s *CommunityService) Search(ctx context.Context, userID, query string) ([]models.CommunityRecipe, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []models.CommunityRecipe{}
	for _, r := range list {
		if matchesAny(query, r.Title, r.Description, r.Author) || matchesAny(query, r.Ingredients...) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Trending returns the top recipes by TrendingScore.
func (s *CommunityService) Trending(ctx context.Context, userID string) ([]models.CommunityRecipe, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return topN(QueryCommunity(list, RecipeQuery{Sort: SortTrending}), listTop), nil
}

// TopRated returns rated recipes only, highest rating first.
func (s *CommunityService) TopRated(ctx context.Context, userID string) ([]models.CommunityRecipe, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	rated := []models.CommunityRecipe{}
	for _, r := range list {
		if len(r.Ratings) > 0 {
			rated = append(rated, r)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool { return rated[i].Rating > rated[j].Rating })
	return topN(rated, listTop), nil
}

func (s *CommunityService) Query(ctx context.Context, userID string, q RecipeQuery) ([]models.CommunityRecipe, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return QueryCommunity(list, q), nil
}

func topN[T any](list []T, n int) []T {
	if len(list) > n {
		return list[:n]
	}
	return list
}
