package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/sirupsen/logrus"
)

type LogMealInput struct {
	Date         string            `json:"date"`
	MealTimeSlot string            `json:"mealTimeSlot"`
	Phase        string            `json:"phase"`
	FoodItems    []models.FoodItem `json:"foodItems"`
	Notes        string            `json:"notes"`
	Photo        string            `json:"photo"` // data URL or existing URL
}

// MealService is the food store: meals per user and date.
type MealService struct {
	store
	remote repositories.MealRepository // nil when offline
	local  repositories.MealCache
	foods  *FoodService
	photos PhotoStore // optional
}

func NewMealService(remote repositories.MealRepository, local repositories.MealCache, foods *FoodService, photos PhotoStore, log *logrus.Logger, events EventPublisher) *MealService {
	return &MealService{
		store:  store{name: "meals", log: log, events: events},
		remote: remote,
		local:  local,
		foods:  foods,
		photos: photos,
	}
}

func (s *MealService) LogMeal(ctx context.Context, userID string, in LogMealInput) (models.Meal, error) {
	if strings.TrimSpace(in.MealTimeSlot) == "" || len(in.FoodItems) == 0 {
		return models.Meal{}, invalid("Please select a food and meal time")
	}
	cat := s.foods.Catalog()
	for _, it := range in.FoodItems {
		if strings.TrimSpace(it.FoodName) == "" || it.Quantity <= 0 {
			return models.Meal{}, invalid("Each food needs a name and a positive quantity")
		}
		// catalog foods are re-priced; anything else keeps the submitted calories
		if _, err := cat.Lookup(it.FoodName); err != nil && it.Calories < 0 {
			return models.Meal{}, invalid("Calories cannot be negative")
		}
	}
	if in.Date == "" {
		in.Date = time.Now().Format(dateLayout)
	}
	if !validDate(in.Date) {
		return models.Meal{}, invalid("Invalid date, expected YYYY-MM-DD")
	}
	if in.Phase != "" {
		sel := s.foods.Selection()
		if err := sel.SelectPhase(in.Phase); err != nil {
			return models.Meal{}, invalid("Unknown phase " + in.Phase)
		}
		if err := sel.SelectSlot(in.MealTimeSlot); err != nil {
			phase, _ := cat.Phase(sel.Phase())
			return models.Meal{}, invalid("Meal time " + in.MealTimeSlot + " is not part of " + phase.Name)
		}
	}

	now := time.Now()
	meal := models.Meal{
		UserID:       userID,
		Date:         in.Date,
		MealTimeSlot: in.MealTimeSlot,
		FoodItems:    s.foods.Price(in.FoodItems),
		Notes:        in.Notes,
		Photo:        in.Photo,
		Phase:        in.Phase,
		LoggedAt:     now,
		CreatedAt:    now,
	}
	meal.Calories = meal.ItemCalories()

	if strings.HasPrefix(meal.Photo, "data:") {
		meal.Photo = s.uploadPhoto(ctx, userID, meal.Photo)
	}

	if s.remote != nil {
		saved, err := s.remote.Create(ctx, meal)
		if err == nil {
			_, cerr := s.local.Create(ctx, saved)
			s.cacheErr("log", cerr)
			s.publish(userID, "meal.logged", saved)
			return saved, nil
		}
		s.fallback("log", err, logrus.Fields{"user_id": userID, "date": meal.Date})
	}

	meal.ID = uuid.NewString()
	saved, err := s.local.Create(ctx, meal)
	if err != nil {
		return models.Meal{}, err
	}
	s.publish(userID, "meal.logged", saved)
	return saved, nil
}

// uploadPhoto returns "" when the photo could not be stored; the meal is logged regardless.
func (s *MealService) uploadPhoto(ctx context.Context, userID, dataURL string) string {
	if s.photos == nil {
		return ""
	}
	url, err := s.photos.UploadDataURL(ctx, dataURL, "meals", userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("meal photo upload failed")
		return ""
	}
	return url
}

func (s *MealService) GetDailyMeals(ctx context.Context, userID, date string) ([]models.Meal, error) {
	if !validDate(date) {
		return nil, invalid("Invalid date, expected YYYY-MM-DD")
	}
	if s.remote != nil {
		meals, err := s.remote.ListByDate(ctx, userID, date)
		if err == nil {
			s.cacheErr("list", s.local.ReplaceDay(ctx, userID, date, meals))
			return meals, nil
		}
		s.fallback("list", err, logrus.Fields{"user_id": userID, "date": date})
	}
	return s.local.ListByDate(ctx, userID, date)
}

// GetMealsRange returns meals for from..to inclusive.
func (s *MealService) GetMealsRange(ctx context.Context, userID, from, to string) ([]models.Meal, error) {
	if _, err := dateRange(from, to); err != nil {
		return nil, err
	}
	if s.remote != nil {
		meals, err := s.remote.ListRange(ctx, userID, from, to)
		if err == nil {
			s.cacheErr("range", s.local.ReplaceRange(ctx, userID, from, to, meals))
			return meals, nil
		}
		s.fallback("range", err, logrus.Fields{"user_id": userID, "from": from, "to": to})
	}
	return s.local.ListRange(ctx, userID, from, to)
}

func (s *MealService) DeleteMeal(ctx context.Context, userID, id string) error {
	remoteOK := false
	if s.remote != nil {
		err := s.remote.Delete(ctx, userID, id)
		switch {
		case err == nil:
			remoteOK = true
		case errors.Is(err, repositories.ErrNotFound):
		default:
			s.fallback("delete", err, logrus.Fields{"user_id": userID, "meal_id": id})
		}
	}
	err := s.local.Delete(ctx, userID, id)
	if errors.Is(err, repositories.ErrNotFound) && remoteOK {
		err = nil
	}
	if err == nil {
		s.publish(userID, "meal.deleted", map[string]string{"id": id})
	}
	return err
}

// AttachPhoto uploads a data URL and stores its URL on the meal.
func (s *MealService) AttachPhoto(ctx context.Context, userID, id, dataURL string) (string, error) {
	if s.photos == nil {
		return "", ErrPhotosDisabled
	}
	if !strings.HasPrefix(dataURL, "data:") {
		return "", invalid("Photo must be a base64 data URL")
	}
	url, err := s.photos.UploadDataURL(ctx, dataURL, "meals", userID)
	if err != nil {
		return "", err
	}

	remoteOK := false
	if s.remote != nil {
		err := s.remote.SetPhoto(ctx, userID, id, url)
		switch {
		case err == nil:
			remoteOK = true
		case errors.Is(err, repositories.ErrNotFound):
			return "", err
		default:
			s.fallback("photo", err, logrus.Fields{"user_id": userID, "meal_id": id})
		}
	}
	err = s.local.SetPhoto(ctx, userID, id, url)
	if err != nil {
		if remoteOK {
			s.cacheErr("photo", err)
		} else {
			return "", err
		}
	}
	return url, nil
}

// GroupByDate buckets meals by their date, keeping input order within a day.
func GroupByDate(meals []models.Meal) map[string][]models.Meal {
	out := make(map[string][]models.Meal)
	for _, m := range meals {
		out[m.Date] = append(out[m.Date], m)
	}
	return out
}
