package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"gorm.io/gorm"
)

type MealRepo struct{ db *gorm.DB }

func NewMealRepo(db *gorm.DB) *MealRepo { return &MealRepo{db: db} }

func (r *MealRepo) Create(ctx context.Context, m models.Meal) (models.Meal, error) {
	date, err := parseDate(m.Date)
	if err != nil {
		return models.Meal{}, err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.LoggedAt.IsZero() {
		m.LoggedAt = time.Now()
	}
	row := mealRow{
		ID:           m.ID,
		UserID:       m.UserID,
		Date:         date,
		MealTimeSlot: m.MealTimeSlot,
		FoodItems:    toJSON(m.FoodItems),
		Calories:     m.Calories,
		Notes:        m.Notes,
		Photo:        m.Photo,
		Phase:        m.Phase,
		LoggedAt:     m.LoggedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Meal{}, err
	}
	return row.toModel(), nil
}

func (r *MealRepo) ListByDate(ctx context.Context, userID, date string) ([]models.Meal, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	var rows []mealRow
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, d).
		Order("logged_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return mealModels(rows), nil
}

func (r *MealRepo) ListRange(ctx context.Context, userID, from, to string) ([]models.Meal, error) {
	f, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	t, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	var rows []mealRow
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, f, t).
		Order("date DESC, logged_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return mealModels(rows), nil
}

func (r *MealRepo) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&mealRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("meal %s: %w", id, repositories.ErrNotFound)
	}
	return nil
}

// SetPhoto stores the uploaded photo URL on an existing meal.
func (r *MealRepo) SetPhoto(ctx context.Context, userID, id, url string) error {
	res := r.db.WithContext(ctx).Model(&mealRow{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("photo", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("meal %s: %w", id, repositories.ErrNotFound)
	}
	return nil
}

func mealModels(rows []mealRow) []models.Meal {
	out := make([]models.Meal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out
}

var _ repositories.MealRepository = (*MealRepo)(nil)
