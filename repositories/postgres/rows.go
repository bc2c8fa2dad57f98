// Package postgres is the remote store: gorm over the hosted Postgres tables
// (meals, wellness, symptoms, goals, profiles). Rows are snake_case; they are
// mapped to and from the camelCase application models here and nowhere else.
package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type mealRow struct {
	ID           string         `gorm:"type:uuid;primaryKey"`
	UserID       string         `gorm:"type:uuid;index;not null"`
	Date         time.Time      `gorm:"type:date;index;not null"`
	MealTimeSlot string         `gorm:"not null"`
	FoodItems    datatypes.JSON `gorm:"type:jsonb"`
	Calories     float64
	Notes        string
	Photo        string
	Phase        string
	LoggedAt     time.Time
	CreatedAt    time.Time
}

func (mealRow) TableName() string { return "meals" }

type wellnessRow struct {
	ID               string    `gorm:"type:uuid;primaryKey"`
	UserID           string    `gorm:"type:uuid;uniqueIndex:idx_wellness_user_date;not null"`
	Date             time.Time `gorm:"type:date;uniqueIndex:idx_wellness_user_date;not null"`
	MoodEmoji        string
	EnergyLevel      int
	SleepHours       *float64
	ExerciseMinutes  *int
	ActivityLevel    string
	Notes            string
	Weight           *float64
	FastingGlucose   *float64
	AfterFoodGlucose *float64
	BPSystolic       *int `gorm:"column:bp_systolic"`
	BPDiastolic      *int `gorm:"column:bp_diastolic"`
	Supplements      datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt        time.Time
}

func (wellnessRow) TableName() string { return "wellness" }

func (r *wellnessRow) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type symptomRow struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	UserID      string    `gorm:"type:uuid;index;not null"`
	Date        time.Time `gorm:"type:date;index;not null"`
	SymptomType string    `gorm:"not null"`
	Severity    int
	Description string
	CreatedAt   time.Time
}

func (symptomRow) TableName() string { return "symptoms" }

type goalRow struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	UserID       string `gorm:"type:uuid;index;not null"`
	Name         string `gorm:"not null"`
	GoalType     string
	TargetValue  float64
	CurrentValue float64
	Unit         string
	Category     string
	Description  string
	StartDate    *time.Time `gorm:"type:date"`
	EndDate      *time.Time `gorm:"type:date"`
	Status       string
	CreatedAt    time.Time
}

func (goalRow) TableName() string { return "goals" }

type profileRow struct {
	UserID         string `gorm:"type:uuid;primaryKey"`
	FirstName      string
	LastName       string
	Email          string
	Height         *float64
	Gender         string
	Bio            string
	AvatarURL      string
	TargetCalories float64
	TargetSleep    float64
	TargetExercise float64
	UpdatedAt      time.Time
}

func (profileRow) TableName() string { return "profiles" }

// Models lists the row types for AutoMigrate.
func Models() []any {
	return []any{&mealRow{}, &wellnessRow{}, &symptomRow{}, &goalRow{}, &profileRow{}}
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func optDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func fmtOptDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
	}
	return err
}

func toJSON(v any) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

func (r mealRow) toModel() models.Meal {
	var items []models.FoodItem
	if len(r.FoodItems) > 0 {
		_ = json.Unmarshal(r.FoodItems, &items)
	}
	if items == nil {
		items = []models.FoodItem{}
	}
	return models.Meal{
		ID:           r.ID,
		UserID:       r.UserID,
		Date:         r.Date.Format(dateLayout),
		MealTimeSlot: r.MealTimeSlot,
		FoodItems:    items,
		Calories:     r.Calories,
		Notes:        r.Notes,
		Photo:        r.Photo,
		Phase:        r.Phase,
		LoggedAt:     r.LoggedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func (r wellnessRow) toModel() models.WellnessRecord {
	var supps []string
	if len(r.Supplements) > 0 {
		_ = json.Unmarshal(r.Supplements, &supps)
	}
	if supps == nil {
		supps = []string{}
	}
	return models.WellnessRecord{
		ID:               r.ID,
		UserID:           r.UserID,
		Date:             r.Date.Format(dateLayout),
		MoodEmoji:        r.MoodEmoji,
		EnergyLevel:      r.EnergyLevel,
		SleepHours:       r.SleepHours,
		ExerciseMinutes:  r.ExerciseMinutes,
		ActivityLevel:    r.ActivityLevel,
		Notes:            r.Notes,
		Weight:           r.Weight,
		FastingGlucose:   r.FastingGlucose,
		AfterFoodGlucose: r.AfterFoodGlucose,
		BPSystolic:       r.BPSystolic,
		BPDiastolic:      r.BPDiastolic,
		Supplements:      supps,
		UpdatedAt:        r.UpdatedAt,
	}
}

func (r symptomRow) toModel() models.Symptom {
	return models.Symptom{
		ID:          r.ID,
		UserID:      r.UserID,
		Date:        r.Date.Format(dateLayout),
		SymptomType: r.SymptomType,
		Severity:    r.Severity,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

func (r goalRow) toModel() models.Goal {
	unit := r.Unit
	if unit == "" {
		unit = models.UnitForGoalType(r.GoalType)
	}
	status := r.Status
	if status == "" {
		status = models.GoalStatusActive
	}
	return models.Goal{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		GoalType:     r.GoalType,
		TargetValue:  r.TargetValue,
		CurrentValue: r.CurrentValue,
		Unit:         unit,
		Category:     r.Category,
		Description:  r.Description,
		StartDate:    fmtOptDate(r.StartDate),
		EndDate:      fmtOptDate(r.EndDate),
		Status:       status,
		CreatedAt:    r.CreatedAt,
	}
}

func (r profileRow) toModel() models.Profile {
	return models.Profile{
		UserID:         r.UserID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Height:         r.Height,
		Gender:         r.Gender,
		Bio:            r.Bio,
		AvatarURL:      r.AvatarURL,
		TargetCalories: r.TargetCalories,
		TargetSleep:    r.TargetSleep,
		TargetExercise: r.TargetExercise,
		UpdatedAt:      r.UpdatedAt,
	}
}
