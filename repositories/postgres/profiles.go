package postgres

import (
	"context"
	"time"

	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"gorm.io/gorm"
)

type ProfileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func (r *ProfileRepo) Get(ctx context.Context, userID string) (models.Profile, error) {
	var row profileRow
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error; err != nil {
		return models.Profile{}, notFound(err, "profile "+userID)
	}
	return row.toModel(), nil
}

// Upsert is keyed by user_id; last write wins.
func (r *ProfileRepo) Upsert(ctx context.Context, p models.Profile) (models.Profile, error) {
	row := profileRow{UserID: p.UserID}
	assign := map[string]any{
		"first_name":      p.FirstName,
		"last_name":       p.LastName,
		"email":           p.Email,
		"height":          p.Height,
		"gender":          p.Gender,
		"bio":             p.Bio,
		"avatar_url":      p.AvatarURL,
		"target_calories": p.TargetCalories,
		"target_sleep":    p.TargetSleep,
		"target_exercise": p.TargetExercise,
		"updated_at":      time.Now(),
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", p.UserID).
		Assign(assign).
		FirstOrCreate(&row).Error; err != nil {
		return models.Profile{}, err
	}
	return row.toModel(), nil
}

var _ repositories.ProfileRepository = (*ProfileRepo)(nil)
