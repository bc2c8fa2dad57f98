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

type WellnessRepo struct{ db *gorm.DB }

func NewWellnessRepo(db *gorm.DB) *WellnessRepo { return &WellnessRepo{db: db} }

// Upsert replaces every column of the (user, date) row.
func (r *WellnessRepo) Upsert(ctx context.Context, rec models.WellnessRecord) (models.WellnessRecord, error) {
	date, err := parseDate(rec.Date)
	if err != nil {
		return models.WellnessRecord{}, err
	}
	row := wellnessRow{UserID: rec.UserID, Date: date}
	assign := map[string]any{
		"mood_emoji":         rec.MoodEmoji,
		"energy_level":       rec.EnergyLevel,
		"sleep_hours":        rec.SleepHours,
		"exercise_minutes":   rec.ExerciseMinutes,
		"activity_level":     rec.ActivityLevel,
		"notes":              rec.Notes,
		"weight":             rec.Weight,
		"fasting_glucose":    rec.FastingGlucose,
		"after_food_glucose": rec.AfterFoodGlucose,
		"bp_systolic":        rec.BPSystolic,
		"bp_diastolic":       rec.BPDiastolic,
		"supplements":        toJSON(rec.Supplements),
		"updated_at":         time.Now(),
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", rec.UserID, date).
		Assign(assign).
		FirstOrCreate(&row).Error; err != nil {
		return models.WellnessRecord{}, err
	}
	return row.toModel(), nil
}

func (r *WellnessRepo) Get(ctx context.Context, userID, date string) (models.WellnessRecord, error) {
	d, err := parseDate(date)
	if err != nil {
		return models.WellnessRecord{}, err
	}
	var row wellnessRow
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, d).
		First(&row).Error; err != nil {
		return models.WellnessRecord{}, notFound(err, "wellness "+date)
	}
	return row.toModel(), nil
}

func (r *WellnessRepo) ListRange(ctx context.Context, userID, from, to string) ([]models.WellnessRecord, error) {
	f, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	t, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	var rows []wellnessRow
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, f, t).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.WellnessRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

type SymptomRepo struct{ db *gorm.DB }

func NewSymptomRepo(db *gorm.DB) *SymptomRepo { return &SymptomRepo{db: db} }

func (r *SymptomRepo) Create(ctx context.Context, s models.Symptom) (models.Symptom, error) {
	date, err := parseDate(s.Date)
	if err != nil {
		return models.Symptom{}, err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	row := symptomRow{
		ID:          s.ID,
		UserID:      s.UserID,
		Date:        date,
		SymptomType: s.SymptomType,
		Severity:    s.Severity,
		Description: s.Description,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Symptom{}, err
	}
	return row.toModel(), nil
}

func (r *SymptomRepo) ListRange(ctx context.Context, userID, from, to string) ([]models.Symptom, error) {
	f, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	t, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	var rows []symptomRow
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, f, t).
		Order("date DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Symptom, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *SymptomRepo) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&symptomRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("symptom %s: %w", id, repositories.ErrNotFound)
	}
	return nil
}

var (
	_ repositories.WellnessRepository = (*WellnessRepo)(nil)
	_ repositories.SymptomRepository  = (*SymptomRepo)(nil)
)
